package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"transit-backoffice/internal/adapters/persistence/models"
	"transit-backoffice/internal/adapters/persistence/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File errors
var (
	ErrFileNotFound = errors.New("file not found")
)

// ObjectStorage is the boundary to the external object store. Production
// deployments plug in the vendor client; development uses local disk.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// LocalObjectStorage stores objects on the local filesystem
type LocalObjectStorage struct {
	baseDir string
}

// NewLocalObjectStorage creates a disk-backed object store rooted at baseDir
func NewLocalObjectStorage(baseDir string) (*LocalObjectStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &LocalObjectStorage{baseDir: baseDir}, nil
}

// Put writes an object to disk
func (s *LocalObjectStorage) Put(ctx context.Context, key string, data []byte) error {
	return os.WriteFile(filepath.Join(s.baseDir, filepath.Base(key)), data, 0o644)
}

// Delete removes an object from disk. A missing object is not an error:
// the metadata row is authoritative and the store may already be clean.
func (s *LocalObjectStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// FileService handles stored file metadata and object-store calls
type FileService struct {
	fileRepo repositories.FileRepository
	storage  ObjectStorage
}

// NewFileService creates a new file service
func NewFileService(fileRepo repositories.FileRepository, storage ObjectStorage) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		storage:  storage,
	}
}

// Upload stores an object and records its metadata
func (s *FileService) Upload(ctx context.Context, userID uint, fileName string, data []byte) (*models.StoredFile, error) {
	key := uuid.New().String() + filepath.Ext(fileName)
	if err := s.storage.Put(ctx, key, data); err != nil {
		return nil, err
	}

	file := &models.StoredFile{
		StorageKey: key,
		FileName:   fileName,
		SizeBytes:  int64(len(data)),
		UploadedBy: userID,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

// Delete looks up the stored file, deletes the object behind its storage
// key and removes the metadata row.
func (s *FileService) Delete(ctx context.Context, id uint) error {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFileNotFound
		}
		return err
	}

	if err := s.storage.Delete(ctx, file.StorageKey); err != nil {
		return err
	}

	if err := s.fileRepo.Delete(ctx, file.ID); err != nil {
		return err
	}

	log.Printf("🗑️ Deleted stored file %d (key: %s)", file.ID, file.StorageKey)
	return nil
}
