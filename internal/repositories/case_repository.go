package repositories

import (
	"context"
	"errors"
	"time"

	"findthem_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCaseNotFound = errors.New("case not found")

type CaseRepository interface {
	Create(ctx context.Context, c *models.Case) error
	FindByID(ctx context.Context, id string) (*models.Case, error)
	// FindPublished returns non-pending cases, optionally filtered by a
	// case-insensitive substring match on the subject name.
	FindPublished(ctx context.Context, search string) ([]models.Case, error)
	FindPending(ctx context.Context) ([]models.Case, error)
	UpdateStatus(ctx context.Context, id string, status models.CaseStatus) error
	SetPending(ctx context.Context, id string, pending bool) error
	// AppendComment inserts a single comment row. Concurrent appends to the
	// same case are concurrent inserts; the whole comment list is never
	// read back and rewritten.
	AppendComment(ctx context.Context, comment *models.Comment) error
}

type CaseRepositoryImpl struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &CaseRepositoryImpl{db: db}
}

func (r *CaseRepositoryImpl) Create(ctx context.Context, c *models.Case) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CaseRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Case, error) {
	var c models.Case
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.id ASC")
		}).
		Preload("Comments.User").
		First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CaseRepositoryImpl) FindPublished(ctx context.Context, search string) ([]models.Case, error) {
	var cases []models.Case
	query := r.db.WithContext(ctx).Where("pending = ?", false)
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	err := query.
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.id ASC")
		}).
		Preload("Comments.User").
		Order("created_at DESC").
		Find(&cases).Error
	return cases, err
}

func (r *CaseRepositoryImpl) FindPending(ctx context.Context) ([]models.Case, error) {
	var cases []models.Case
	err := r.db.WithContext(ctx).
		Where("pending = ?", true).
		Order("created_at ASC").
		Find(&cases).Error
	return cases, err
}

func (r *CaseRepositoryImpl) UpdateStatus(ctx context.Context, id string, status models.CaseStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Case{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCaseNotFound
	}
	return nil
}

func (r *CaseRepositoryImpl) SetPending(ctx context.Context, id string, pending bool) error {
	result := r.db.WithContext(ctx).Model(&models.Case{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"pending":    pending,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCaseNotFound
	}
	return nil
}

func (r *CaseRepositoryImpl) AppendComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		// Commenting on a case that does not exist trips the FK.
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrCaseNotFound
		}
		return err
	}
	return nil
}
