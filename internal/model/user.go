package model

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// Role is a user's role.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// UserStatus is whether an account may be used.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is an account of the shop.
type User struct {
	ID           int64      `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         Role       `json:"role" db:"role"`
	Status       UserStatus `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserFilter narrows user listings.
type UserFilter struct {
	Role   Role
	Status UserStatus
	Search string
	Limit  int
	Offset int
}

// CreateUserRequest is the admin payload for creating a user.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// Validate checks the request fields.
func (r *CreateUserRequest) Validate() error {
	v := &ValidationError{}
	validateAccount(v, r.Name, r.Email, r.Role, r.Status)
	if len(r.Password) < 8 {
		v.Add("password", "The password must be at least 8 characters.")
	}
	return v.OrNil()
}

// UpdateUserRequest is the admin payload for replacing a user's details. An
// empty password keeps the current one.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// Validate checks the request fields.
func (r *UpdateUserRequest) Validate() error {
	v := &ValidationError{}
	validateAccount(v, r.Name, r.Email, r.Role, r.Status)
	if r.Password != "" && len(r.Password) < 8 {
		v.Add("password", "The password must be at least 8 characters.")
	}
	return v.OrNil()
}

func validateAccount(v *ValidationError, name, email, role, status string) {
	if strings.TrimSpace(name) == "" {
		v.Add("name", "The name field is required.")
	} else if utf8.RuneCountInString(name) > 255 {
		v.Add("name", "The name may not be longer than 255 characters.")
	}

	if strings.TrimSpace(email) == "" {
		v.Add("email", "The email field is required.")
	} else if _, err := mail.ParseAddress(email); err != nil {
		v.Add("email", "The email must be a valid email address.")
	}

	if Role(role) != RoleAdmin && Role(role) != RoleCustomer {
		v.Add("role", "The role must be admin or customer.")
	}

	if !UserStatus(status).Valid() {
		v.Add("status", "The status must be active or inactive.")
	}
}

// Valid reports whether s is a known status.
func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// UserStatusRequest is the admin payload for activating or deactivating a user.
type UserStatusRequest struct {
	Status string `json:"status"`
}

// UserStatistics summarises the user base for the admin dashboard.
type UserStatistics struct {
	TotalUsers    int `json:"total_users"`
	ActiveUsers   int `json:"active_users"`
	InactiveUsers int `json:"inactive_users"`
	AdminUsers    int `json:"admin_users"`
	CustomerUsers int `json:"customer_users"`
	RecentUsers   int `json:"recent_users"` // created within the last 30 days
}
