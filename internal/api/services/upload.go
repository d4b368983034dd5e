package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rohits-web03/meshvault/internal/apperrors"
	"github.com/rohits-web03/meshvault/internal/repositories"
	"github.com/rohits-web03/meshvault/internal/storage"
	"github.com/rohits-web03/meshvault/internal/utils"
)

// DownloadURLExpiry is the lifetime of presigned model download links.
const DownloadURLExpiry = 15 * time.Minute

// UploadResult describes a stored blob. It does not imply a model record exists.
type UploadResult struct {
	Key          string `json:"key"`
	URL          string `json:"url"`
	Size         int64  `json:"size"`
	Format       string `json:"format"`
	OriginalName string `json:"originalName"`
}

// Uploader validates assets and moves them in and out of the object store.
type Uploader struct {
	store  storage.ObjectStore
	models repositories.ModelRepository
	clock  Clock
	log    *zap.Logger
}

func NewUploader(store storage.ObjectStore, models repositories.ModelRepository, clock Clock, log *zap.Logger) *Uploader {
	return &Uploader{store: store, models: models, clock: clock, log: log}
}

// UploadModelFile stores a model asset under models/{ownerID}/.
func (u *Uploader) UploadModelFile(ctx context.Context, r io.Reader, filename string, size int64, ownerID uuid.UUID) (*UploadResult, error) {
	if err := checkSize(size, storage.MaxModelSize, "File size exceeds 100MB limit"); err != nil {
		return nil, err
	}
	if !storage.IsValidModelFormat(filename) {
		return nil, apperrors.New(apperrors.CodeInvalidFormat,
			"Invalid model format. Supported: "+strings.Join(storage.ModelFormats, ", "))
	}

	ext := storage.FileExtension(filename)
	key := fmt.Sprintf("models/%s/%s.%s", ownerID, uuid.NewString(), ext)
	metadata := map[string]string{
		"userId":       ownerID.String(),
		"originalName": url.QueryEscape(filename),
		"uploadedAt":   u.clock.Now().Format(time.RFC3339),
	}
	return u.put(ctx, r, key, filename, size, metadata)
}

// UploadThumbnail stores a preview image under thumbnails/{modelID}, replacing any previous one
// with the same extension. modelID may be a temporary client id; a real model must belong to callerID.
func (u *Uploader) UploadThumbnail(ctx context.Context, r io.Reader, filename string, size int64, modelID string, callerID uuid.UUID) (*UploadResult, error) {
	if err := checkSize(size, storage.MaxThumbnailSize, "Thumbnail size exceeds 5MB limit"); err != nil {
		return nil, err
	}
	if !storage.IsValidImageFormat(filename) {
		return nil, apperrors.New(apperrors.CodeInvalidFormat,
			"Invalid image format. Supported: "+strings.Join(storage.ImageFormats, ", "))
	}
	if !utils.IsSafeIdentifier(modelID) {
		return nil, apperrors.InvalidArgument("Model ID required for thumbnail upload")
	}

	key := fmt.Sprintf("thumbnails/%s.%s", modelID, storage.FileExtension(filename))
	if err := u.CheckThumbnailKey(ctx, key, callerID); err != nil {
		return nil, err
	}
	metadata := map[string]string{
		"modelId":    modelID,
		"uploadedAt": u.clock.Now().Format(time.RFC3339),
	}
	return u.put(ctx, r, key, filename, size, metadata)
}

// CheckThumbnailKey rejects thumbnail keys callerID may not write or reference: keys named
// after another user's model and keys another user's model already points at.
func (u *Uploader) CheckThumbnailKey(ctx context.Context, key string, callerID uuid.UUID) error {
	name, ok := strings.CutPrefix(key, "thumbnails/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return apperrors.InvalidArgument("Invalid thumbnail key")
	}

	if modelID, err := uuid.Parse(strings.TrimSuffix(name, path.Ext(name))); err == nil {
		model, err := u.models.FindByID(ctx, modelID)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, "Failed to check thumbnail", err)
		}
		if model != nil && model.UserID != callerID {
			return apperrors.Forbidden("You do not own this thumbnail")
		}
	}

	owners, err := u.models.ThumbnailOwners(ctx, key)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, "Failed to check thumbnail", err)
	}
	for _, owner := range owners {
		if owner != callerID {
			return apperrors.Forbidden("You do not own this thumbnail")
		}
	}
	return nil
}

func checkSize(size, limit int64, message string) error {
	if size < 0 {
		return apperrors.InvalidArgument("Invalid file size")
	}
	if size > limit {
		return apperrors.New(apperrors.CodeFileTooLarge, message)
	}
	return nil
}

func (u *Uploader) put(ctx context.Context, r io.Reader, key, filename string, size int64, metadata map[string]string) (*UploadResult, error) {
	publicURL, err := u.store.Put(ctx, key, r, size, storage.ContentType(filename), metadata)
	if err != nil {
		return nil, asStorageError("Failed to upload file", err)
	}

	u.log.Info("stored upload", zap.String("key", key), zap.Int64("size", size))
	return &UploadResult{
		Key:          key,
		URL:          publicURL,
		Size:         size,
		Format:       storage.FileExtension(filename),
		OriginalName: filename,
	}, nil
}

// DeleteModelFiles removes a model asset and then its thumbnail. Only the primary
// asset's failure is returned; a thumbnail failure is logged.
func (u *Uploader) DeleteModelFiles(ctx context.Context, modelKey, thumbnailKey string) error {
	if err := u.store.Delete(ctx, modelKey); err != nil {
		return asStorageError("Failed to delete model file", err)
	}
	if thumbnailKey == "" {
		return nil
	}
	if err := u.store.Delete(ctx, thumbnailKey); err != nil {
		u.log.Warn("failed to delete thumbnail", zap.String("key", thumbnailKey), zap.Error(err))
	}
	return nil
}

// DownloadURL presigns a short-lived link that downloads key as filename.
func (u *Uploader) DownloadURL(ctx context.Context, key, filename string) (string, error) {
	link, err := u.store.PresignGet(ctx, key, filename, DownloadURLExpiry)
	if err != nil {
		return "", asStorageError("Failed to generate download link", err)
	}
	return link, nil
}

func asStorageError(message string, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, storage.ErrObjectNotFound) {
		return apperrors.Wrap(apperrors.CodeNotFound, "File not found", err)
	}
	return apperrors.Wrap(apperrors.CodeStorageUnavailable, message, err)
}
