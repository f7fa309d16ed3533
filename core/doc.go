// Package core defines the shared contracts of AgentWeave: the Agent
// interface implemented by every invokable unit, and the Thread that carries
// the ordered conversation history between agent turns.
//
// The package is intentionally small. Orchestration strategies and the
// process engine depend only on these contracts, never on concrete agent or
// model implementations.
package core
