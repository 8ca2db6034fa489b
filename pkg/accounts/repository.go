package accounts

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/userhub/userhub/pkg/errors"
)

// Repository provides data access for accounts
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new account repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new account. A duplicate email surfaces as a conflict,
// regardless of whether a pre-check missed a concurrent insert; the unique
// constraint is the authority.
func (r *Repository) Create(account *Account) error {
	if err := r.db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewConflictError("email already registered")
		}
		return apperrors.NewStoreError("failed to create account", err)
	}
	return nil
}

// GetByEmail retrieves an account by email
func (r *Repository) GetByEmail(email string) (*Account, error) {
	var account Account
	if err := r.db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("account")
		}
		return nil, apperrors.NewStoreError(fmt.Sprintf("failed to get account by email %s", email), err)
	}
	return &account, nil
}

// GetByID retrieves an account by its identifier
func (r *Repository) GetByID(id uint) (*Account, error) {
	var account Account
	if err := r.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("account")
		}
		return nil, apperrors.NewStoreError("failed to get account", err)
	}
	return &account, nil
}
