// Package storage adapts binary asset storage behind one interface with two
// backends: the hosted backend's file bucket and a plain S3-compatible
// bucket. Storage never calls back into the content layer.
package storage

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quillworks/quill/internal/model"
)

var storageLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	storageLogger = l
}

type Store interface {
	// Upload stores the binary under a fresh identifier and returns the
	// resulting asset.
	Upload(ctx context.Context, name string, data []byte) (*model.Asset, error)

	// Delete removes an asset. Deleting an identifier that no longer exists
	// is a success: cleanup after a partial failure may retry a delete whose
	// target is already gone.
	Delete(ctx context.Context, id model.AssetID) error

	// PreviewURL formats a URL for the asset. Pure function of the
	// identifier; it does not confirm existence.
	PreviewURL(id model.AssetID) string
}
