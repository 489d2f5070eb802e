package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/jewelmandi/jewelmandi-backend/pkg/auth"
	"github.com/jewelmandi/jewelmandi-backend/pkg/auth/session"
	"github.com/jewelmandi/jewelmandi-backend/pkg/config"
	"github.com/jewelmandi/jewelmandi-backend/pkg/db"
	"github.com/jewelmandi/jewelmandi-backend/pkg/db/models"
	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
	pkgerrors "github.com/jewelmandi/jewelmandi-backend/pkg/errors"
	"github.com/jewelmandi/jewelmandi-backend/pkg/security"
)

// SessionManager is the refresh-session surface the auth flow needs.
type SessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// Service implements registration and the token lifecycle.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, *TokenPair, error)
	Login(ctx context.Context, input LoginInput) (*models.User, *TokenPair, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, accessID string) error
}

type service struct {
	repo     Repository
	sessions SessionManager
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
}

// RegisterInput creates a new tenant with its first admin user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput authenticates an existing user.
type LoginInput struct {
	Email    string
	Password string
}

// TokenPair is what clients hold after authentication.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// NewService wires the auth service.
func NewService(repo Repository, sessions SessionManager, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("auth repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &service{repo: repo, sessions: sessions, jwtCfg: jwtCfg, pwCfg: pwCfg}, nil
}

// Register mints a fresh tenant id: the first registered user owns and
// administers the new tenant.
func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, *TokenPair, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if email == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "email required")
	}
	if len(input.Password) < 8 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		TenantID: uuid.New(),
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     enums.UserRoleAdmin,
		IsActive: true,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, nil, pkgerrors.New(pkgerrors.CodeDuplicateKey, "email already registered").
				WithDetails(map[string]string{"field": "email"})
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating user")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*models.User, *TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password required")
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading user")
	}
	if !user.IsActive {
		return nil, nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account disabled")
	}

	ok, err := security.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		return nil, nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates the session: the expired access token identifies the
// session via jti, the refresh token proves possession.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	if strings.TrimSpace(accessToken) == "" || strings.TrimSpace(refreshToken) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "access and refresh tokens required")
	}

	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotating session")
	}

	user, err := s.repo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account disabled")
	}

	signed, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Role:     user.Role,
		JTI:      newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &TokenPair{
		AccessToken:  signed,
		RefreshToken: newRefresh,
		ExpiresIn:    s.jwtCfg.ExpirationMinutes * 60,
	}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	return nil
}

func (s *service) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessID := session.NewAccessID()
	signed, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Role:     user.Role,
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating refresh session")
	}

	return &TokenPair{
		AccessToken:  signed,
		RefreshToken: refresh,
		ExpiresIn:    s.jwtCfg.ExpirationMinutes * 60,
	}, nil
}
