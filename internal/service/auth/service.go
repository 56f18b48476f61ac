package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/peopledesk/peopledesk-api/internal/domain/auth"
	"github.com/peopledesk/peopledesk-api/internal/domain/identity"
	"github.com/peopledesk/peopledesk-api/internal/domain/profile"
	"github.com/peopledesk/peopledesk-api/internal/domain/role"
	"github.com/peopledesk/peopledesk-api/internal/pkg/database"
	"github.com/peopledesk/peopledesk-api/internal/pkg/jwt"
	"github.com/peopledesk/peopledesk-api/internal/pkg/oauth"
	"github.com/peopledesk/peopledesk-api/internal/repository/postgresql"
)

type Service interface {
	Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error)
	Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error)
	LoginWithGoogle(ctx context.Context, code string) (auth.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error)
	Logout(refreshToken string)
}

type serviceImpl struct {
	db         *database.DB
	identities identity.Repository
	roles      role.Repository
	profiles   profile.Repository
	jwt        jwt.Service
	google     oauth.GoogleService
}

func NewAuthService(
	db *database.DB,
	identities identity.Repository,
	roles role.Repository,
	profiles profile.Repository,
	jwtService jwt.Service,
	google oauth.GoogleService,
) Service {
	return &serviceImpl{
		db:         db,
		identities: identities,
		roles:      roles,
		profiles:   profiles,
		jwt:        jwtService,
		google:     google,
	}
}

// Register creates the identity, its default role and its profile in one
// transaction. The profile insert runs on the elevated path (no policy
// check): at that instant the acting identity has no role yet, which is
// exactly why signup bootstrap cannot go through the authorization engine.
// Any failure rolls the whole signup back.
func (s *serviceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("hash password: %w", err)
	}
	hashed := string(hash)

	var created identity.Identity
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.identities.Create(txCtx, identity.Identity{
			Email:        req.Email,
			PasswordHash: &hashed,
		})
		if err != nil {
			return err
		}

		if _, err := s.roles.Assign(txCtx, created.ID, role.RoleEmployee); err != nil {
			return fmt.Errorf("assign default role: %w", err)
		}

		fullName := req.FullName
		if fullName == "" {
			fullName = req.Email
		}
		if _, err := s.profiles.Create(txCtx, profile.Profile{
			ID:       created.ID,
			Email:    req.Email,
			FullName: fullName,
		}); err != nil {
			return fmt.Errorf("provision profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return s.issueTokens(created)
}

func (s *serviceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	id, err := s.identities.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("get identity by email: %w", err)
	}

	if id.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*id.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(id)
}

// LoginWithGoogle provisions an identity and profile on first sign-in,
// through the same bootstrap transaction as Register.
func (s *serviceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	token, err := s.google.Exchange(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	account, err := s.google.UserInfo(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	id, err := s.identities.GetByEmail(ctx, account.Email)
	if err == nil {
		return s.issueTokens(id)
	}
	if !errors.Is(err, identity.ErrNotFound) {
		return auth.TokenResponse{}, fmt.Errorf("get identity by email: %w", err)
	}

	provider := "google"
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		id, err = s.identities.Create(txCtx, identity.Identity{
			Email:           account.Email,
			OAuthProvider:   &provider,
			OAuthProviderID: &account.GoogleID,
		})
		if err != nil {
			return err
		}

		if _, err := s.roles.Assign(txCtx, id.ID, role.RoleEmployee); err != nil {
			return fmt.Errorf("assign default role: %w", err)
		}

		fullName := account.Name
		if fullName == "" {
			fullName = account.Email
		}
		if _, err := s.profiles.Create(txCtx, profile.Profile{
			ID:       id.ID,
			Email:    account.Email,
			FullName: fullName,
		}); err != nil {
			return fmt.Errorf("provision profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return s.issueTokens(id)
}

func (s *serviceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if s.jwt.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	id, err := s.identities.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("get identity by id: %w", err)
	}

	accessToken, accessExpiresAt, err := s.jwt.GenerateAccessToken(id.ID, id.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: accessExpiresAt,
		RefreshToken:         refreshToken,
	}, nil
}

func (s *serviceImpl) Logout(refreshToken string) {
	s.jwt.RevokeToken(refreshToken)
}

func (s *serviceImpl) issueTokens(id identity.Identity) (auth.TokenResponse, error) {
	var resp auth.TokenResponse
	var err error

	resp.AccessToken, resp.AccessTokenExpiresIn, err = s.jwt.GenerateAccessToken(id.ID, id.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("create access token: %w", err)
	}
	resp.RefreshToken, resp.RefreshTokenExpiresIn, err = s.jwt.GenerateRefreshToken(id.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("create refresh token: %w", err)
	}
	return resp, nil
}
