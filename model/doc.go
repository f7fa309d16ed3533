// Package model defines the kernel boundary of AgentWeave: the Model
// interface that turns a conversation into a single response. The core treats
// a Model as an opaque handle; provider adapters live in the openai and
// anthropic subpackages, and MockModel serves tests and examples.
package model
