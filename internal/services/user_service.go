package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/policy"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
)

// UserService manages user profiles and roles.
type UserService struct {
	store *repository.Store
}

// NewUserService creates a new UserService.
func NewUserService(store *repository.Store) *UserService {
	return &UserService{store: store}
}

func (s *UserService) List() ([]models.User, error) {
	users, err := s.store.Users.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	return findUser(s.store, id)
}

// UpdateRole changes a user's role. Only admins may change roles.
func (s *UserService) UpdateRole(subject *models.User, id uuid.UUID, rawRole string) (*models.User, error) {
	if !policy.CanChangeUserRole(subject) {
		return nil, ErrAdminOnly
	}

	role, ok := models.ParseRole(rawRole)
	if !ok {
		return nil, ErrInvalidRole
	}

	user, err := findUser(s.store, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.store.Users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return user, nil
}

// UpdateDisplayName renames the subject.
func (s *UserService) UpdateDisplayName(subject *models.User, name string) (*models.User, error) {
	if subject == nil {
		return nil, ErrUnauthenticated
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	user, err := findUser(s.store, subject.ID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = name
	if err := s.store.Users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update display name: %w", err)
	}
	return user, nil
}
