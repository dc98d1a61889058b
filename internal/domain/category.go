package domain

import "time"

// StrategyType identifies a registered assignment strategy.
type StrategyType string

const (
	StrategyRotation  StrategyType = "rotation"
	StrategyLoadAware StrategyType = "load_aware"
	StrategyLocation  StrategyType = "location"
)

// StrategyConfig is the decoded, per-type routing rule configuration. Category
// records store it as a JSON blob; the category repository decodes it into one
// of the concrete config types below before anything else touches it.
type StrategyConfig interface {
	isStrategyConfig()
}

// RotationConfig configures the round-robin strategy.
type RotationConfig struct {
	Roles []UserRole `json:"roles,omitempty"`
}

func (RotationConfig) isStrategyConfig() {}

// LoadAwareConfig configures the least-loaded strategy.
type LoadAwareConfig struct {
	Roles   []UserRole `json:"roles,omitempty"`
	TeamID  *string    `json:"team_id,omitempty"`
	MaxLoad *int       `json:"max_load,omitempty"`
}

func (LoadAwareConfig) isStrategyConfig() {}

// LocationConfig configures the geographic strategy. Mapping keys are matched
// against country code, region, location name, then location id.
type LocationConfig struct {
	Mapping        map[string]string `json:"mapping"`
	FallbackUserID *string           `json:"fallback_user_id,omitempty"`
}

func (LocationConfig) isStrategyConfig() {}

// RoutingRule pairs a strategy type with its decoded configuration.
type RoutingRule struct {
	Type   StrategyType
	Config StrategyConfig
}

// CategoryRouting is the routing-relevant slice of a category record. Category
// lifecycle is owned by the administration module; this subsystem only reads it.
type CategoryRouting struct {
	CategoryID        string
	DefaultAssigneeID *string
	Rule              *RoutingRule
}

// AssignmentRecord is one audit entry of an automated or manual assignment.
// The rotation strategy derives its fairness cursor from the most recent record
// for a (tenant, entity type) pair.
type AssignmentRecord struct {
	ID         string
	TenantID   string
	EntityType string
	EntityID   string
	UserID     string
	Strategy   string
	Reason     string
	CreatedAt  time.Time
}
