package dto

// ResolveAssignmentRequest carries the assignment context for one resolution.
type ResolveAssignmentRequest struct {
	TenantID   string           `json:"tenant_id"`
	EntityType string           `json:"entity_type"`
	EntityID   string           `json:"entity_id"`
	Category   *CategoryPayload `json:"category,omitempty"`
	Location   *LocationPayload `json:"location,omitempty"`
	Severity   *string          `json:"severity,omitempty"`
	ReporterID *string          `json:"reporter_id,omitempty"`
	Metadata   map[string]any   `json:"metadata,omitempty"`
}

// CategoryPayload identifies the entity's category.
type CategoryPayload struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// LocationPayload carries geographic attributes.
type LocationPayload struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Country  string `json:"country,omitempty"`
	Region   string `json:"region,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// ResolveAssignmentResponse is the chosen assignee; Result is null when no
// suitable candidate exists.
type ResolveAssignmentResponse struct {
	Result *AssignmentResultPayload `json:"result"`
}

// AssignmentResultPayload pairs the assignee with the justification.
type AssignmentResultPayload struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}
