// Package agent provides concrete core.Agent implementations. ModelAgent is
// the standard building block: a named, instructable unit backed by a
// model.Model kernel.
package agent
