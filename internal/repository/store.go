package repository

import "gorm.io/gorm"

// Store bundles the repositories that share one database handle.
type Store struct {
	db *gorm.DB

	Projects    ProjectRepository
	Tasks       TaskRepository
	Memberships MembershipRepository
	Users       UserRepository
}

// NewStore creates a Store backed by db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:          db,
		Projects:    NewProjectRepository(db),
		Tasks:       NewTaskRepository(db),
		Memberships: NewMembershipRepository(db),
		Users:       NewUserRepository(db),
	}
}

// Transaction runs fn against a Store bound to a single transaction.
// Returning an error from fn rolls back everything fn wrote.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
