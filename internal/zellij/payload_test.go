package zellij

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayloadDefaults(t *testing.T) {
	p, err := NewPayload(Draft{Message: "build done"})
	require.NoError(t, err)

	assert.Equal(t, TypeInfo, p.Type)
	assert.Equal(t, PriorityNormal, p.Priority)
	assert.Equal(t, "Notification", p.Title)
	assert.Equal(t, "zellij-notify", p.Source)
	assert.Equal(t, "build done", p.Message)
	assert.NotZero(t, p.Timestamp)
	assert.Nil(t, p.TTLMs)
	assert.Nil(t, p.TabIndex)
}

func TestNewPayloadAllValidCombinations(t *testing.T) {
	for _, typ := range AllTypes {
		for _, prio := range AllPriorities {
			p, err := NewPayload(Draft{Message: "m", Type: typ, Priority: prio})
			require.NoError(t, err, "type=%s priority=%s", typ, prio)
			assert.Equal(t, typ, p.Type)
			assert.Equal(t, prio, p.Priority)
		}
	}
}

func TestNewPayloadRejectsInvalidType(t *testing.T) {
	_, err := NewPayload(Draft{Message: "m", Type: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "success, error, warning, info, attention, progress")
}

func TestNewPayloadRejectsInvalidPriority(t *testing.T) {
	_, err := NewPayload(Draft{Message: "m", Priority: "asap"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "low, normal, high, critical")
}

func TestNewPayloadRequiresMessage(t *testing.T) {
	_, err := NewPayload(Draft{})
	assert.Error(t, err)

	_, err = NewPayload(Draft{Message: "   "})
	assert.Error(t, err)
}

func TestPayloadWireFormat(t *testing.T) {
	ttl := int64(5000)
	tab := 3
	p, err := NewPayload(Draft{
		Message:  "done",
		Type:     TypeSuccess,
		Priority: PriorityHigh,
		Title:    "Build",
		TTLMs:    &ttl,
		TabIndex: &tab,
	})
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "success", raw["type"])
	assert.Equal(t, "high", raw["priority"])
	assert.Equal(t, float64(5000), raw["ttl_ms"])
	assert.Equal(t, float64(3), raw["tab_index"])
}

func TestPayloadOmitsOptionalFields(t *testing.T) {
	p, err := NewPayload(Draft{Message: "m"})
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ttl_ms")
	assert.NotContains(t, string(data), "tab_index")
}

func TestPayloadEscapesSpecialCharacters(t *testing.T) {
	p, err := NewPayload(Draft{Message: `say "hi" with a \ and {"json":1}`})
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	// Round-trips cleanly through the text transport boundary.
	var back Payload
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p.Message, back.Message)
}

func TestParseTypeAliases(t *testing.T) {
	tests := map[string]Type{
		"success": TypeSuccess,
		"ok":      TypeSuccess,
		"done":    TypeSuccess,
		"failed":  TypeError,
		"warn":    TypeWarning,
		"running": TypeProgress,
		"waiting": TypeAttention,
		"INFO":    TypeInfo,
	}
	for input, want := range tests {
		got, err := ParseType(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseType("loud")
	assert.Error(t, err)
}

func TestParsePriority(t *testing.T) {
	got, err := ParsePriority("Critical")
	require.NoError(t, err)
	assert.Equal(t, PriorityCritical, got)

	_, err = ParsePriority("asap")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "low, normal, high, critical")
}
