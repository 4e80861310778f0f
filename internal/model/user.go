package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents an identity record created on first sign-in.
// Email is unique and immutable after creation.
type User struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Summary is the user representation returned to callers.
// Provider tokens never appear here.
type Summary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// Summary returns the caller-facing view of the user.
func (u User) Summary() Summary {
	return Summary{ID: u.ID, Email: u.Email, Name: u.DisplayName}
}
