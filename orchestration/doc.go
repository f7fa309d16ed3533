// Package orchestration provides strategies for coordinating multiple agents
// against one user request: Sequential pipelines, conversational Handoff
// between specialized agents, and Concurrent fan-out/fan-in execution.
//
// Every strategy owns a read-only list of agents (reusable across calls),
// creates one private State per run, and produces a uniform Result with an
// optional execution Trace.
package orchestration
