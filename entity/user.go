package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultRole is assigned to users created without an explicit role.
const DefaultRole = "user"

// User is a persisted account. SecretHash never leaves the process through
// JSON and is therefore also absent from cached pages.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u" json:"-"`

	ID         uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Username   string    `bun:"username,notnull,unique" json:"username"`
	Role       string    `bun:"role,notnull" json:"role"`
	SecretHash string    `bun:"secret_hash,notnull" json:"-"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"created_at"`
}

// UserInput carries the attributes of one prospective user.
type UserInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role,omitempty"`
}

// UserKind implements Kind for users.
type UserKind struct {
	hasher Hasher
}

// NewUserKind returns the user descriptor. Passwords are hashed with hasher
// when a candidate is built.
func NewUserKind(hasher Hasher) *UserKind {
	return &UserKind{hasher: hasher}
}

func (UserKind) Name() string { return "User" }

func (UserKind) UniqueKey(input UserInput) string {
	return strings.TrimSpace(input.Username)
}

func (k UserKind) Build(input UserInput, now time.Time) (*User, error) {
	hash, err := k.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = DefaultRole
	}

	return &User{
		Username:   strings.TrimSpace(input.Username),
		Role:       role,
		SecretHash: hash,
		CreatedAt:  now,
	}, nil
}

func (UserKind) ID(record *User) string {
	return record.ID.String()
}

func (UserKind) FilterFields() FieldSet {
	return userFields
}

var userFields = FieldSet{
	Sets: []string{"role", "username"},
	Text: []string{"username"},
}
