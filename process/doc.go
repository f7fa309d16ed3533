// Package process implements a step-sequencing workflow engine. A Process is
// an ordered, immutable list of named Steps; the Engine drives them in order
// against a shared, JSON-serializable Context, emitting an audit trail of
// events to a bounded EventLog.
//
// Steps signal success, failure or pause through StepResult. A paused run
// hands its Context back to the caller, who may persist it (the context
// round-trips through JSON) and later continue it with Engine.Resume.
package process
