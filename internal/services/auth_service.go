package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/project-dashboard-api/internal/identity"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	store    *repository.Store
	verifier identity.Verifier
	log      *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(store *repository.Store, verifier identity.Verifier, log *zap.Logger) *AuthService {
	return &AuthService{
		store:    store,
		verifier: verifier,
		log:      log,
	}
}

// Login verifies an identity token and returns the matching user, creating a
// MEMBER on first login. The display name and photo are refreshed from the
// identity provider every time.
func (s *AuthService) Login(ctx context.Context, token string) (*models.User, error) {
	id, err := s.verify(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Users.FindByExternalID(id.ExternalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{
			ExternalID:  id.ExternalID,
			Email:       id.Email,
			DisplayName: displayNameFor(id),
			PhotoURL:    id.PictureURL,
			Role:        models.RoleMember,
		}
		if err := s.store.Users.Create(user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrEmailAlreadyRegistered
			}
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if id.Name != "" {
		user.DisplayName = id.Name
	}
	user.PhotoURL = id.PictureURL
	if err := s.store.Users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to refresh user profile: %w", err)
	}

	return user, nil
}

// Authenticate resolves a bearer token to an existing user without creating one.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	id, err := s.verify(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Users.FindByExternalID(id.ExternalID)
	if err != nil {
		return nil, lookupError(err, ErrInvalidCredential, "user")
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uuid.UUID) (*models.User, error) {
	return findUser(s.store, id)
}

func (s *AuthService) verify(ctx context.Context, token string) (*identity.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidCredential
	}

	// Any verifier failure rejects the credential. Outages are logged, not surfaced.
	id, err := s.verifier.Verify(ctx, token)
	if err != nil {
		if !errors.Is(err, identity.ErrInvalidToken) {
			s.log.Warn("Identity verification failed", zap.Error(err))
		}
		return nil, ErrInvalidCredential
	}
	return id, nil
}

func displayNameFor(id *identity.Identity) string {
	if id.Name != "" {
		return id.Name
	}
	if local, _, ok := strings.Cut(id.Email, "@"); ok {
		return local
	}
	return id.Email
}
