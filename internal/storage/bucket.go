package storage

import (
	"context"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/quillworks/quill/internal/model"
)

// FileAPI is the slice of the backend gateway the bucket store needs.
type FileAPI interface {
	UploadFile(ctx context.Context, fileID, name string, data []byte, mimeType string) error
	DeleteFile(ctx context.Context, fileID string) error
	FilePreviewURL(fileID string) string
}

type BucketStore struct { // implements Store
	files FileAPI
}

func NewBucketStore(files FileAPI) *BucketStore {
	return &BucketStore{files: files}
}

func (s *BucketStore) Upload(ctx context.Context, name string, data []byte) (*model.Asset, error) {
	asset := &model.Asset{
		ID:       model.AssetID(uuid.New().String()),
		Name:     name,
		MimeType: mimetype.Detect(data).String(),
		Size:     int64(len(data)),
	}

	if err := s.files.UploadFile(ctx, string(asset.ID), name, data, asset.MimeType); err != nil {
		return nil, err
	}

	storageLogger.Debug().
		Str("file_id", string(asset.ID)).
		Str("mime_type", asset.MimeType).
		Int64("size", asset.Size).
		Msg("Asset uploaded")

	return asset, nil
}

func (s *BucketStore) Delete(ctx context.Context, id model.AssetID) error {
	err := s.files.DeleteFile(ctx, string(id))
	if err != nil && model.IsKind(err, model.KindNotFound) {
		// Already gone; cleanup retries must not fail the outer operation.
		return nil
	}
	return err
}

func (s *BucketStore) PreviewURL(id model.AssetID) string {
	return s.files.FilePreviewURL(string(id))
}
