package repositories

import (
	"context"

	"transit-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// fileRepository implements FileRepository interface
type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a new stored-file repository
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

// Create creates a stored-file metadata row
func (r *fileRepository) Create(ctx context.Context, f *models.StoredFile) error {
	return r.db.WithContext(ctx).Create(f).Error
}

// GetByID gets a stored file by ID
func (r *fileRepository) GetByID(ctx context.Context, id uint) (*models.StoredFile, error) {
	var file models.StoredFile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// Delete soft deletes a stored-file row
func (r *fileRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.StoredFile{}, id).Error
}
