package domain

import "time"

// Well-known roles and statuses. The columns are free-form TEXT so new
// roles can be added without a migration; these are just the values the
// core logic cares about.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"

	StatusActive    = "active"
	StatusSuspended = "suspended"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // argon2id PHC encoded
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public returns the externally visible view of the user. The password
// hash never crosses the service boundary.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserOverview is a listing row for the admin console: the public view
// plus card count and the time of the user's last access attempt.
type UserOverview struct {
	PublicUser

	CardCount  int        `json:"card_count"`
	LastAccess *time.Time `json:"last_access,omitempty"`
}
