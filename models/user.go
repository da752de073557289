package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin   = "admin"
	RoleCitizen = "citizen"
)

// User is an identity record owned by the identity provider. The
// report API itself never stores users; it only receives them back
// from token resolution. The password hash is excluded from every
// API response.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

// StoredUser is the shape the identity provider persists to the
// key-value substrate. The bcrypt hash needs an explicit field since
// User deliberately drops it during JSON marshaling.
type StoredUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToUser converts a persisted record back into the API-facing shape,
// keeping the hash in the unexported-by-tag Password field for
// credential comparison.
func (s *StoredUser) ToUser() *User {
	return &User{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Role:      s.Role,
		Password:  s.PasswordHash,
		CreatedAt: s.CreatedAt,
	}
}
