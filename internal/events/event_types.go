package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSlaWarningRaised EventType = "sla_warning_raised"
	EventSlaBreachRaised  EventType = "sla_breach_raised"
	EventItemAssigned     EventType = "item_assigned"
)

// BreachLevel distinguishes a plain deadline miss from a critical escalation.
type BreachLevel string

const (
	BreachLevelBreached BreachLevel = "breached"
	BreachLevelCritical BreachLevel = "critical"
)

// Event represents a domain event emitted by the engine.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TenantID  string      `json:"tenant_id"`
	ItemID    string      `json:"item_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SlaWarningPayload payload.
type SlaWarningPayload struct {
	Stage       string    `json:"stage"`
	DueDate     time.Time `json:"due_date"`
	PercentUsed float64   `json:"percent_used"`
}

// SlaBreachPayload payload.
type SlaBreachPayload struct {
	Stage        string      `json:"stage"`
	Level        BreachLevel `json:"level"`
	HoursOverdue float64     `json:"hours_overdue"`
}

// ItemAssignedPayload payload.
type ItemAssignedPayload struct {
	UserID   string `json:"user_id"`
	Strategy string `json:"strategy"`
	Reason   string `json:"reason"`
}
