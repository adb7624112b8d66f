package zellij

import (
	"fmt"
	"strings"
	"time"
)

// Type is a notification type. It determines color and icon in the plugin.
type Type string

// Notification types understood by the plugin.
const (
	TypeSuccess   Type = "success"
	TypeError     Type = "error"
	TypeWarning   Type = "warning"
	TypeInfo      Type = "info"
	TypeAttention Type = "attention"
	TypeProgress  Type = "progress"
)

// AllTypes lists the valid notification types in display order.
var AllTypes = []Type{TypeSuccess, TypeError, TypeWarning, TypeInfo, TypeAttention, TypeProgress}

// Priority is a notification priority level.
type Priority string

// Notification priorities understood by the plugin.
const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// AllPriorities lists the valid priorities in ascending order.
var AllPriorities = []Priority{PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical}

func validType(t Type) bool {
	switch t {
	case TypeSuccess, TypeError, TypeWarning, TypeInfo, TypeAttention, TypeProgress:
		return true
	}
	return false
}

func validPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// typeList renders the allowed types for error messages.
func typeList() string {
	parts := make([]string, len(AllTypes))
	for i, t := range AllTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func priorityList() string {
	parts := make([]string, len(AllPriorities))
	for i, p := range AllPriorities {
		parts[i] = string(p)
	}
	return strings.Join(parts, ", ")
}

// ParseType normalizes user input into a Type. It accepts the aliases the
// plugin itself understands (ok/done/complete, fail/failed, warn, running,
// waiting) before rejecting unknown values.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success", "ok", "done", "complete", "completed":
		return TypeSuccess, nil
	case "error", "fail", "failed", "failure":
		return TypeError, nil
	case "warning", "warn":
		return TypeWarning, nil
	case "info", "information":
		return TypeInfo, nil
	case "attention", "waiting", "input", "input_needed":
		return TypeAttention, nil
	case "progress", "running", "working":
		return TypeProgress, nil
	}
	return "", fmt.Errorf("invalid notification type %q: must be one of: %s", s, typeList())
}

// ParsePriority normalizes user input into a Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !validPriority(p) {
		return "", fmt.Errorf("invalid priority %q: must be one of: %s", s, priorityList())
	}
	return p, nil
}

// Payload is the JSON document piped to the plugin. Field names match the
// plugin's wire format.
type Payload struct {
	Type      Type     `json:"type"`
	Message   string   `json:"message"`
	Title     string   `json:"title"`
	Source    string   `json:"source"`
	Priority  Priority `json:"priority"`
	Timestamp int64    `json:"timestamp"`
	// TTLMs auto-expires the notification after this many milliseconds.
	// Nil means "dismiss only by explicit user acknowledgment".
	TTLMs *int64 `json:"ttl_ms,omitempty"`
	// TabIndex targets a specific 1-based tab. Nil means the current tab.
	TabIndex *int `json:"tab_index,omitempty"`
}

// Draft holds caller-supplied payload fields. Zero values take defaults;
// optional fields stay optional through pointers.
type Draft struct {
	Type     Type
	Message  string
	Title    string
	Source   string
	Priority Priority
	TTLMs    *int64
	TabIndex *int
}

// NewPayload builds a validated Payload by merging d over the defaults
// (type info, priority normal, title "Notification", source "zellij-notify",
// timestamp now). Enum violations fail construction; they are never
// silently coerced.
func NewPayload(d Draft) (Payload, error) {
	if strings.TrimSpace(d.Message) == "" {
		return Payload{}, fmt.Errorf("notification message is required")
	}
	p := Payload{
		Type:      TypeInfo,
		Message:   d.Message,
		Title:     "Notification",
		Source:    "zellij-notify",
		Priority:  PriorityNormal,
		Timestamp: time.Now().UnixMilli(),
		TTLMs:     d.TTLMs,
		TabIndex:  d.TabIndex,
	}
	if d.Type != "" {
		if !validType(d.Type) {
			return Payload{}, fmt.Errorf("invalid notification type %q: must be one of: %s", d.Type, typeList())
		}
		p.Type = d.Type
	}
	if d.Priority != "" {
		if !validPriority(d.Priority) {
			return Payload{}, fmt.Errorf("invalid priority %q: must be one of: %s", d.Priority, priorityList())
		}
		p.Priority = d.Priority
	}
	if d.Title != "" {
		p.Title = d.Title
	}
	if d.Source != "" {
		p.Source = d.Source
	}
	return p, nil
}
