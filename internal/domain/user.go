package domain

import "time"

// UserRole enumerates platform operator roles.
type UserRole string

const (
	UserRoleInvestigator UserRole = "INVESTIGATOR"
	UserRoleTriageLead   UserRole = "TRIAGE_LEAD"
	UserRoleAdmin        UserRole = "ADMIN"
	UserRoleViewer       UserRole = "VIEWER"
)

// DefaultAssignmentRoles is the role pool used by the fallback rotation.
var DefaultAssignmentRoles = []UserRole{UserRoleInvestigator, UserRoleTriageLead}

// User models a platform operator eligible for case assignment.
type User struct {
	ID        string
	TenantID  string
	Name      string
	Email     string
	Role      UserRole
	TeamID    *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
