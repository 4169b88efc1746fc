package repositories

import (
	"errors"

	"github.com/gobook-app/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository is the read-only user directory. User records are owned by the
// identity service; this core only looks them up.
type UserRepository interface {
	GetUserByID(id string) (*models.User, error)
	GetUsersByIDs(ids []string) ([]models.User, error)
	ListUsers() ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs retrieves all users whose ID is in ids. Missing ids are skipped.
func (r *PostgresUserRepository) GetUsersByIDs(ids []string) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListUsers retrieves every user in the directory.
func (r *PostgresUserRepository) ListUsers() ([]models.User, error) {
	users := []models.User{}
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
