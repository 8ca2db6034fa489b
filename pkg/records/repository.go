package records

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/userhub/userhub/pkg/errors"
)

// Repository provides data access for owner-scoped records. Every read,
// update and delete is constrained by the caller's account id unless
// ownership enforcement has been disabled by deployment policy.
type Repository struct {
	db               *gorm.DB
	enforceOwnership bool
}

// NewRepository creates a new record repository
func NewRepository(db *gorm.DB, enforceOwnership bool) *Repository {
	return &Repository{db: db, enforceOwnership: enforceOwnership}
}

// scoped applies the owner filter when ownership enforcement is on
func (r *Repository) scoped(ownerID uint) *gorm.DB {
	if r.enforceOwnership {
		return r.db.Where("owner_id = ?", ownerID)
	}
	return r.db
}

// ListByOwner returns all records visible to the owner
func (r *Repository) ListByOwner(ownerID uint) ([]User, error) {
	var users []User
	if err := r.scoped(ownerID).Order("id").Find(&users).Error; err != nil {
		return nil, apperrors.NewStoreError("failed to list records", err)
	}
	return users, nil
}

// GetByOwner retrieves a record by id for the given owner. A record owned by
// someone else is indistinguishable from a missing one.
func (r *Repository) GetByOwner(id, ownerID uint) (*User, error) {
	var user User
	if err := r.scoped(ownerID).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user")
		}
		return nil, apperrors.NewStoreError("failed to get record", err)
	}
	return &user, nil
}

// Create persists a new record. The caller stamps OwnerID before calling.
func (r *Repository) Create(user *User) error {
	if err := r.db.Create(user).Error; err != nil {
		return apperrors.NewStoreError("failed to create record", err)
	}
	return nil
}

// Update persists changes to a previously fetched record. Save runs the
// BeforeSave hook, so the adult flag tracks any age change.
func (r *Repository) Update(user *User) error {
	if err := r.db.Save(user).Error; err != nil {
		return apperrors.NewStoreError("failed to update record", err)
	}
	return nil
}

// DeleteByOwner removes a single record owned by the caller
func (r *Repository) DeleteByOwner(id, ownerID uint) error {
	result := r.scoped(ownerID).Where("id = ?", id).Delete(&User{})
	if result.Error != nil {
		return apperrors.NewStoreError("failed to delete record", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user")
	}
	return nil
}

// DeleteAllByOwner removes every record owned by the caller and reports the
// number deleted
func (r *Repository) DeleteAllByOwner(ownerID uint) (int64, error) {
	result := r.scoped(ownerID).Where("1 = 1").Delete(&User{})
	if result.Error != nil {
		return 0, apperrors.NewStoreError("failed to delete records", result.Error)
	}
	return result.RowsAffected, nil
}
