// Package logging provides a tiny abstraction over log/slog so downstream
// code can depend on a minimal interface (Logger) while allowing users to
// plug any structured logger.
package logging
