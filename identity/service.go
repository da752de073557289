package identity

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cityreport-be/errs"
	"cityreport-be/kv"
	"cityreport-be/models"
	authUtils "cityreport-be/utils"
)

const (
	userKeyPrefix = "user:"

	accessTokenTTL  = 72 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// Service is the concrete provider: users live in the key-value
// substrate under "user:<email>" and tokens are HS256 JWTs.
type Service struct {
	store      kv.Store
	secret     []byte
	adminEmail string
}

func NewService(store kv.Store, secret []byte, adminEmail string) *Service {
	return &Service{store: store, secret: secret, adminEmail: adminEmail}
}

func userKey(email string) string {
	return userKeyPrefix + email
}

func (s *Service) loadUser(ctx context.Context, email string) (*models.User, error) {
	raw, err := s.store.Get(ctx, userKey(email))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, errs.Authf("invalid credentials")
	}
	if err != nil {
		return nil, errs.Storagef(err, "failed to load user")
	}
	var stored models.StoredUser
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, errs.Storagef(err, "corrupt user record")
	}
	return stored.ToUser(), nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.loadUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.ComparePassword(password) {
		return nil, errs.Authf("invalid credentials")
	}

	access, err := authUtils.GenerateToken(s.secret, user.Email, user.Name, user.Role, accessTokenTTL)
	if err != nil {
		return nil, errs.Storagef(err, "failed to sign token")
	}
	refresh, err := authUtils.GenerateToken(s.secret, user.Email, user.Name, user.Role, refreshTokenTTL)
	if err != nil {
		return nil, errs.Storagef(err, "failed to sign token")
	}

	return &Session{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := authUtils.ParseToken(s.secret, token)
	if err != nil {
		return nil, errs.Authf("invalid authorization token")
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return nil, errs.Authf("invalid token claims")
	}

	// Re-read the user so tokens for since-removed identities fail.
	user, err := s.loadUser(ctx, email)
	if err != nil {
		var authErr *errs.AuthError
		if errors.As(err, &authErr) {
			return nil, errs.Authf("unknown identity")
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) SignOut(ctx context.Context, token string) error {
	// Stateless tokens: nothing to revoke. Logout always succeeds.
	return nil
}

func (s *Service) Ready(ctx context.Context) error {
	_, err := s.store.Get(ctx, userKey(s.adminEmail))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return errors.New("admin identity not provisioned")
	}
	return err
}

// EnsureUser provisions an identity if it does not already exist.
// Used by bootstrap; idempotent.
func (s *Service) EnsureUser(ctx context.Context, email, password, name, role string) error {
	_, err := s.store.Get(ctx, userKey(email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, kv.ErrKeyNotFound) {
		return errs.Storagef(err, "failed to check user")
	}

	user := models.User{
		ID:        email,
		Name:      name,
		Email:     email,
		Role:      role,
		Password:  password,
		CreatedAt: time.Now(),
	}
	if err := user.HashPassword(); err != nil {
		return errs.Storagef(err, "failed to hash password")
	}

	stored := models.StoredUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		PasswordHash: user.Password,
		CreatedAt:    user.CreatedAt,
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return errs.Storagef(err, "failed to encode user")
	}
	if err := s.store.Set(ctx, userKey(email), data); err != nil {
		return errs.Storagef(err, "failed to persist user")
	}
	return nil
}
