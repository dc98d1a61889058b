package assignment

// CategoryRef identifies the category of the entity being assigned.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// LocationRef carries the geographic attributes a location strategy can match
// against.
type LocationRef struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Country  string `json:"country,omitempty"`
	Region   string `json:"region,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Context describes one resolution request. Built by the caller per request
// and never persisted by this subsystem.
type Context struct {
	TenantID   string         `json:"tenant_id"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Category   *CategoryRef   `json:"category,omitempty"`
	Location   *LocationRef   `json:"location,omitempty"`
	Severity   *string        `json:"severity,omitempty"`
	ReporterID *string        `json:"reporter_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Result is a chosen assignee with a human-readable justification. A nil
// Result from any resolution path means "no suitable candidate", which callers
// must treat as "leave unassigned", not as an error.
type Result struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}
