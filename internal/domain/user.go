package domain

import (
	"context"
	"time"
)

// JobRole is the closed set of roles a user can prepare for.
type JobRole string

const (
	RoleSoftwareEngineer JobRole = "Software Engineer"
	RoleProductManager   JobRole = "Product Manager"
	RoleDataAnalyst      JobRole = "Data Analyst"
	RolePHPDeveloper     JobRole = "PHP Developer"
	RoleCyberSecurity    JobRole = "Cyber Security Analyst"
	RoleUXUIDesigner     JobRole = "UX/UI Designer"
	RoleDevOpsEngineer   JobRole = "DevOps Engineer"
	RoleQAEngineer       JobRole = "QA Engineer"
	RoleProjectManager   JobRole = "Project Manager"
	RoleOther            JobRole = "Other"
)

// JobRoles lists every valid JobRole in display order.
var JobRoles = []JobRole{
	RoleSoftwareEngineer,
	RoleProductManager,
	RoleDataAnalyst,
	RolePHPDeveloper,
	RoleCyberSecurity,
	RoleUXUIDesigner,
	RoleDevOpsEngineer,
	RoleQAEngineer,
	RoleProjectManager,
	RoleOther,
}

// Valid reports whether r is one of JobRoles.
func (r JobRole) Valid() bool {
	for _, role := range JobRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents a registered user together with their interview history.
type User struct {
	ID           string      `json:"id"`
	FullName     string      `json:"fullName"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"passwordHash"`
	Role         JobRole     `json:"role,omitempty"`
	Domain       string      `json:"domain,omitempty"`
	Interviews   []Interview `json:"interviews"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Clone returns a deep copy of the user, including every interview.
func (u *User) Clone() *User {
	c := *u
	c.Interviews = make([]Interview, len(u.Interviews))
	for i := range u.Interviews {
		c.Interviews[i] = *u.Interviews[i].Clone()
	}
	return &c
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Save inserts or replaces the user by ID.
	Save(ctx context.Context, user *User) error
	// Update applies fn to the stored user and persists the result as one
	// read-modify-write step. It returns the updated user.
	Update(ctx context.Context, id string, fn func(*User) error) (*User, error)
	// AppendInterview adds a completed interview to the user's history.
	AppendInterview(ctx context.Context, userID string, interview *Interview) error
}
