// Package declarative loads agent, orchestration and process definitions
// from YAML documents and builds runnable values from them. Models and
// process steps are code, so definitions reference them by registered name;
// the Builder resolves those references.
package declarative
