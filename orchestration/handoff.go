package orchestration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/agentweave/core"
	"github.com/hupe1980/agentweave/logging"
)

// Rule routes a conversation from one agent to another. A rule fires when the
// output of the agent named From contains Trigger (case-insensitive
// substring). Rules are evaluated in declaration order; the first match wins.
type Rule struct {
	From        string `json:"from" yaml:"from"`
	To          string `json:"to" yaml:"to"`
	Trigger     string `json:"trigger" yaml:"trigger"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// HandoffOptions configure a Handoff strategy.
type HandoffOptions struct {
	// MaxHandoffs bounds the number of agent-to-agent transfers in one run.
	MaxHandoffs int

	// ShowInstructions appends a routing preamble to the message each agent
	// receives, describing the hand-off targets available to it.
	ShowInstructions bool

	Logger logging.Logger
}

// Handoff coordinates a conversation that is passed between specialized
// agents based on trigger keywords in their outputs. One agent is the entry
// point; caller-supplied rules govern routing. The conversation terminates
// when no rule fires or the hand-off limit is reached, and the last agent's
// output becomes the final result.
type Handoff struct {
	agents           map[string]core.Agent // keyed by display name
	start            core.Agent
	rules            []Rule
	maxHandoffs      int
	showInstructions bool
	logger           logging.Logger
}

// NewHandoff creates a handoff strategy. The start agent and every rule
// target must be among the given agents; configuration problems are reported
// here, before anything runs.
func NewHandoff(start string, agents []core.Agent, rules []Rule, optFns ...func(o *HandoffOptions)) (*Handoff, error) {
	if len(agents) == 0 {
		return nil, ErrNoAgents
	}

	opts := HandoffOptions{MaxHandoffs: 5, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	byName := make(map[string]core.Agent, len(agents))
	for _, ag := range agents {
		byName[core.DisplayName(ag)] = ag
	}

	startAgent, ok := byName[start]
	if !ok {
		return nil, fmt.Errorf("start agent %q: %w", start, ErrUnknownAgent)
	}
	for _, rule := range rules {
		if _, ok := byName[rule.To]; !ok {
			return nil, fmt.Errorf("rule target %q: %w", rule.To, ErrUnknownAgent)
		}
	}

	return &Handoff{
		agents:           byName,
		start:            startAgent,
		rules:            rules,
		maxHandoffs:      opts.MaxHandoffs,
		showInstructions: opts.ShowInstructions,
		logger:           opts.Logger,
	}, nil
}

// Run implements Strategy.
func (h *Handoff) Run(ctx context.Context, octx *Context, input string) (*Result, error) {
	if octx == nil {
		octx = NewContext()
	}

	state := newState(input, octx.EnableTrace)
	start := time.Now()
	current := h.start
	message := input
	handoffs := 0
	var output string

	for {
		if octx.Timeout > 0 && time.Since(start) > octx.Timeout {
			state.finalize(false)
			return nil, fmt.Errorf("execution %s: %w after %s", octx.ExecutionID, ErrTimeout, time.Since(start).Round(time.Millisecond))
		}

		turnInput := message
		if h.showInstructions {
			if preamble := h.routingInstructions(current); preamble != "" {
				turnInput = preamble + "\n\n" + message
			}
		}

		stepStart := time.Now()
		out, err := current.Invoke(ctx, state.Thread, turnInput)
		elapsed := time.Since(stepStart)

		if err != nil {
			state.record(current, turnInput, out, elapsed, err)
			state.finalize(false)
			return nil, fmt.Errorf("agent %s failed: %w", current.ID(), err)
		}
		output = out

		rule := h.match(core.DisplayName(current), out)
		if rule == nil || handoffs >= h.maxHandoffs {
			state.record(current, turnInput, out, elapsed, nil)
			break
		}

		// Hand-off transitions are additionally marked in the step output.
		state.record(current, turnInput, fmt.Sprintf("%s [handoff -> %s]", out, rule.To), elapsed, nil)
		h.logger.Debug("orchestration.handoff.transfer",
			"execution_id", octx.ExecutionID,
			"from", core.DisplayName(current), "to", rule.To, "trigger", rule.Trigger)

		current = h.agents[rule.To]
		message = out
		handoffs++
	}

	state.finalize(true)
	return &Result{
		Output:   output,
		AgentID:  current.ID(),
		Trace:    state.Trace,
		Metadata: copyMetadata(octx.Metadata),
	}, nil
}

// match returns the first rule scoped to the active agent whose trigger
// keyword appears in the output, or nil.
func (h *Handoff) match(from, output string) *Rule {
	lower := strings.ToLower(output)
	for i := range h.rules {
		rule := &h.rules[i]
		if rule.From != from {
			continue
		}
		if strings.Contains(lower, strings.ToLower(rule.Trigger)) {
			return rule
		}
	}
	return nil
}

// routingInstructions renders the hand-off options available to the given
// agent, for conversations run with ShowInstructions enabled.
func (h *Handoff) routingInstructions(a core.Agent) string {
	name := core.DisplayName(a)
	var b strings.Builder
	for _, rule := range h.rules {
		if rule.From != name {
			continue
		}
		if b.Len() == 0 {
			b.WriteString("You may hand the conversation off to another specialist. ")
			b.WriteString("To do so, include the trigger keyword in your reply:\n")
		}
		fmt.Fprintf(&b, "- %q hands off to %s", rule.Trigger, rule.To)
		if rule.Description != "" {
			fmt.Fprintf(&b, " (%s)", rule.Description)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
