package orchestration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/google/uuid"
)

func TestTrace_FinalizeExactlyOnce(t *testing.T) {
	tr := NewTrace()
	tr.AddStep(TraceStep{AgentID: "a", Success: true})

	tr.Finalize(true)
	assert.True(t, tr.Finalized())
	assert.True(t, tr.Success())

	// A second finalization must not overwrite the recorded outcome.
	tr.Finalize(false)
	assert.True(t, tr.Success())
}

func TestTrace_AddStepAfterFinalizeIgnored(t *testing.T) {
	tr := NewTrace()
	tr.AddStep(TraceStep{AgentID: "a"})
	tr.Finalize(false)

	tr.AddStep(TraceStep{AgentID: "b"})

	assert.Equal(t, 1, tr.Len())
	assert.False(t, tr.Success())
}

func TestTrace_StepsReturnsCopy(t *testing.T) {
	tr := NewTrace()
	tr.AddStep(TraceStep{AgentID: "a", Output: "one"})

	steps := tr.Steps()
	steps[0].Output = "mutated"

	assert.Equal(t, "one", tr.Steps()[0].Output)
}

func TestNewContext_Defaults(t *testing.T) {
	c := NewContext()

	_, err := uuid.Parse(c.ExecutionID)
	assert.NoError(t, err)
	assert.NotNil(t, c.Metadata)
	assert.Zero(t, c.Timeout)
	assert.False(t, c.EnableTrace)
}

func TestNewContext_UniqueExecutionIDs(t *testing.T) {
	assert.NotEqual(t, NewContext().ExecutionID, NewContext().ExecutionID)
}

func TestResult_MetadataCopiedFromContext(t *testing.T) {
	octx := NewContext(func(c *Context) { c.Metadata["tenant"] = "acme" })
	md := copyMetadata(octx.Metadata)

	octx.Metadata["tenant"] = "other"

	assert.Equal(t, "acme", md["tenant"])
}
