package declarative

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/agentweave/orchestration"
)

// Orchestration strategy type identifiers used in definitions.
const (
	TypeSequential = "sequential"
	TypeHandoff    = "handoff"
	TypeConcurrent = "concurrent"
)

// AgentDefinition declares a model-backed agent. Model references a model
// registered with the Builder.
type AgentDefinition struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description,omitempty"`
	Model        string `yaml:"model"`
	Instructions string `yaml:"instructions,omitempty"`
}

// OrchestrationDefinition declares one orchestration strategy over previously
// declared agents.
type OrchestrationDefinition struct {
	Name             string               `yaml:"name"`
	Type             string               `yaml:"type"` // sequential | handoff | concurrent
	Agents           []string             `yaml:"agents"`
	StartAgent       string               `yaml:"start_agent,omitempty"`
	Rules            []orchestration.Rule `yaml:"rules,omitempty"`
	MaxHandoffs      int                  `yaml:"max_handoffs,omitempty"`
	ShowInstructions bool                 `yaml:"show_instructions,omitempty"`
}

// ProcessDefinition declares a process as an ordered list of step names
// registered with the Builder.
type ProcessDefinition struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Steps       []string `yaml:"steps"`
}

// File is a parsed definition document.
type File struct {
	Agents         []AgentDefinition         `yaml:"agents,omitempty"`
	Orchestrations []OrchestrationDefinition `yaml:"orchestrations,omitempty"`
	Processes      []ProcessDefinition       `yaml:"processes,omitempty"`
}

// Parse reads a YAML definition document.
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse definitions: %w", err)
	}
	return &f, nil
}

// ParseFile reads a YAML definition document from a file.
func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open definitions: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}
