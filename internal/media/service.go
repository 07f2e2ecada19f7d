package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/config"
	"github.com/plaindes/cms-backend/pkg/db/models"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
)

// Service exposes media library operations.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*MediaDTO, error)
	GetMedia(ctx context.Context, id uuid.UUID) (*MediaDTO, error)
	ListMedia(ctx context.Context, filter ListFilter) (*MediaListResult, error)
	UpdateMedia(ctx context.Context, id uuid.UUID, input UpdateMediaInput) (*MediaDTO, error)
	DeleteMedia(ctx context.Context, id uuid.UUID) error
}

type mediaRepository interface {
	Create(ctx context.Context, m *models.Media) (*models.Media, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error)
	List(ctx context.Context, filter ListFilter) ([]models.Media, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Media, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    mediaRepository
	storage Storage
	cfg     config.MediaConfig
}

// NewService constructs a media service instance.
func NewService(repo mediaRepository, storage Storage, cfg config.MediaConfig) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "media repository required")
	}
	if storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "storage backend required")
	}
	return &service{repo: repo, storage: storage, cfg: cfg}, nil
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*MediaDTO, error) {
	if len(input.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is empty")
	}
	if s.cfg.MaxUploadBytes > 0 && int64(len(input.Data)) > s.cfg.MaxUploadBytes {
		return nil, pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %d byte limit", s.cfg.MaxUploadBytes),
		)
	}

	mimeType, err := sniffMimeType(input.MimeType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	ext, ok := extensionFor(mimeType)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported file type "+mimeType)
	}
	if err := verifyContentMatches(mimeType, input.Data); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	filename := uuid.NewString() + ext
	storagePath, url, err := s.storage.Save(filename, input.Data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store upload")
	}

	folder := "/"
	if input.Folder != nil && strings.TrimSpace(*input.Folder) != "" {
		folder = strings.TrimSpace(*input.Folder)
	}

	m := &models.Media{
		Filename:     filename,
		OriginalName: strings.TrimSpace(input.OriginalName),
		MimeType:     mimeType,
		SizeBytes:    int64(len(input.Data)),
		URL:          url,
		StoragePath:  storagePath,
		AltText:      input.AltText,
		Caption:      input.Caption,
		Folder:       folder,
		UploadedBy:   input.UploadedBy,
	}
	created, err := s.repo.Create(ctx, m)
	if err != nil {
		// The metadata row failed, so the stored file is unreachable.
		_ = s.storage.Remove(storagePath)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create media row")
	}
	return FromModel(created), nil
}

func (s *service) GetMedia(ctx context.Context, id uuid.UUID) (*MediaDTO, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mediaNotFoundOrInternal(err)
	}
	return FromModel(m), nil
}

func (s *service) ListMedia(ctx context.Context, filter ListFilter) (*MediaListResult, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list media")
	}
	return &MediaListResult{Items: fromModels(items), Total: total}, nil
}

func (s *service) UpdateMedia(ctx context.Context, id uuid.UUID, input UpdateMediaInput) (*MediaDTO, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, mediaNotFoundOrInternal(err)
	}

	updates := map[string]any{}
	if input.AltText != nil {
		updates["alt_text"] = *input.AltText
	}
	if input.Caption != nil {
		updates["caption"] = *input.Caption
	}
	if input.Folder != nil {
		folder := strings.TrimSpace(*input.Folder)
		if folder == "" {
			folder = "/"
		}
		updates["folder"] = folder
	}
	if input.Meta != nil {
		updates["meta"] = input.Meta
	}

	m, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update media")
	}
	return FromModel(m), nil
}

// DeleteMedia soft-deletes the metadata row. The stored file is kept so
// existing published references keep resolving until a cleanup job runs.
func (s *service) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mediaNotFoundOrInternal(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete media")
	}
	return nil
}

func mediaNotFoundOrInternal(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup media")
}
