package model

import (
	"strings"
	"time"
)

// User is a candidate tracked by the board.
type User struct {
	ID        string    `json:"id"                  db:"id"`
	Name      string    `json:"name"                db:"name"`
	Email     string    `json:"email"               db:"email"`
	Notes     *string   `json:"notes,omitempty"     db:"notes"`
	ResumeID  *string   `json:"resume_id,omitempty" db:"resume_id"`
	Role      Role      `json:"role"                db:"role"`
	CreatedAt time.Time `json:"created_at"          db:"created_at"`
	UpdatedAt time.Time `json:"updated_at"          db:"updated_at"`
}

// HasResume reports whether the user references a resume blob.
func (u *User) HasResume() bool {
	return u != nil && u.ResumeID != nil && *u.ResumeID != ""
}

// UserInput carries the full set of writable user fields. It is used for both
// create and update; updates replace every field.
type UserInput struct {
	Name     string  `json:"name"                validate:"required,max=255"`
	Email    string  `json:"email"               validate:"required,email,max=255"`
	Notes    *string `json:"notes,omitempty"`
	ResumeID *string `json:"resume_id,omitempty" validate:"omitempty,resume_id"`
	Role     Role    `json:"role"                validate:"required,user_role"`
}

// Normalize trims whitespace, lowercases the email and role, and turns empty
// optional strings into absent values.
func (in *UserInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = Role(normalizeEnum(string(in.Role)))
	in.ResumeID = trimToNil(in.ResumeID)
	if in.Notes != nil && strings.TrimSpace(*in.Notes) == "" {
		in.Notes = nil
	}
}

// Validate normalizes and validates the input.
func (in *UserInput) Validate() error {
	in.Normalize()
	return validateStruct(in)
}

func trimToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// SameResume reports whether two optional resume references point at the same blob.
func SameResume(a, b *string) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return false
	default:
		return *a == *b
	}
}
