package media

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/config"
	"github.com/plaindes/cms-backend/pkg/db/models"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
)

func TestUploadStoresFileAndMetadata(t *testing.T) {
	repo := newStubMediaRepo()
	storage := &stubStorage{}
	svc, err := NewService(repo, storage, config.MediaConfig{MaxUploadBytes: 1024})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	dto, err := svc.Upload(context.Background(), UploadInput{
		OriginalName: "logo.png",
		MimeType:     "image/png",
		Data:         []byte("fake-png-bytes"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasSuffix(dto.Filename, ".png") {
		t.Fatalf("expected generated .png filename, got %q", dto.Filename)
	}
	if dto.OriginalName != "logo.png" {
		t.Fatalf("expected original name preserved, got %q", dto.OriginalName)
	}
	if dto.SizeBytes != int64(len("fake-png-bytes")) {
		t.Fatalf("unexpected size %d", dto.SizeBytes)
	}
	if len(storage.saved) != 1 {
		t.Fatalf("expected one stored file, got %d", len(storage.saved))
	}
}

func TestUploadRejectsUnsupportedMime(t *testing.T) {
	svc, _ := NewService(newStubMediaRepo(), &stubStorage{}, config.MediaConfig{})

	_, err := svc.Upload(context.Background(), UploadInput{
		OriginalName: "script.sh",
		MimeType:     "application/x-sh",
		Data:         []byte("#!/bin/sh"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadRejectsMismatchedContent(t *testing.T) {
	svc, _ := NewService(newStubMediaRepo(), &stubStorage{}, config.MediaConfig{})
	pngMagic := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

	_, err := svc.Upload(context.Background(), UploadInput{
		OriginalName: "report.pdf",
		MimeType:     "application/pdf",
		Data:         pngMagic,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for mismatched content, got %v", err)
	}

	dto, err := svc.Upload(context.Background(), UploadInput{
		OriginalName: "logo.png",
		MimeType:     "image/png",
		Data:         pngMagic,
	})
	if err != nil {
		t.Fatalf("upload with matching content: %v", err)
	}
	if dto.MimeType != "image/png" {
		t.Fatalf("unexpected stored mime type %q", dto.MimeType)
	}
}

func TestUploadEnforcesSizeLimit(t *testing.T) {
	svc, _ := NewService(newStubMediaRepo(), &stubStorage{}, config.MediaConfig{MaxUploadBytes: 4})

	_, err := svc.Upload(context.Background(), UploadInput{
		OriginalName: "big.png",
		MimeType:     "image/png",
		Data:         []byte("too large"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadRemovesFileWhenRowInsertFails(t *testing.T) {
	repo := newStubMediaRepo()
	repo.createErr = gorm.ErrInvalidData
	storage := &stubStorage{}
	svc, _ := NewService(repo, storage, config.MediaConfig{})

	_, err := svc.Upload(context.Background(), UploadInput{
		OriginalName: "logo.png",
		MimeType:     "image/png",
		Data:         []byte("bytes"),
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(storage.removed) != 1 {
		t.Fatalf("expected orphaned file to be removed")
	}
}

type stubStorage struct {
	saved   []string
	removed []string
}

func (s *stubStorage) Save(filename string, data []byte) (string, string, error) {
	s.saved = append(s.saved, filename)
	return "/tmp/" + filename, "/uploads/" + filename, nil
}

func (s *stubStorage) Remove(storagePath string) error {
	s.removed = append(s.removed, storagePath)
	return nil
}

type stubMediaRepo struct {
	byID      map[uuid.UUID]*models.Media
	createErr error
}

func newStubMediaRepo() *stubMediaRepo {
	return &stubMediaRepo{byID: map[uuid.UUID]*models.Media{}}
}

func (s *stubMediaRepo) Create(ctx context.Context, m *models.Media) (*models.Media, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	m.ID = uuid.New()
	s.byID[m.ID] = m
	return m, nil
}

func (s *stubMediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	m, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (s *stubMediaRepo) List(ctx context.Context, filter ListFilter) ([]models.Media, int64, error) {
	items := make([]models.Media, 0, len(s.byID))
	for _, m := range s.byID {
		items = append(items, *m)
	}
	return items, int64(len(items)), nil
}

func (s *stubMediaRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Media, error) {
	m, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (s *stubMediaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.byID, id)
	return nil
}
