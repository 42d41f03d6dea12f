// Package content owns CRUD of post documents and the coupling between
// document writes and file-store side effects. Multi-step operations are not
// transactional; the upload-before-write and delete-after-write ordering
// below is the compensating-action strategy that bounds what a mid-sequence
// failure can leave behind.
package content

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/quillworks/quill/internal/gateway"
	"github.com/quillworks/quill/internal/model"
	"github.com/quillworks/quill/internal/storage"
)

var contentLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	contentLogger = l
}

// DocumentAPI is the slice of the backend gateway the repository needs.
type DocumentAPI interface {
	CreateDocument(ctx context.Context, docID string, data map[string]any) (*gateway.Document, error)
	UpdateDocument(ctx context.Context, docID string, data map[string]any) (*gateway.Document, error)
	DeleteDocument(ctx context.Context, docID string) error
	ListDocuments(ctx context.Context, queries []string) ([]gateway.Document, error)
	GetDocument(ctx context.Context, docID string) (*gateway.Document, error)
}

type Repository struct {
	docs  DocumentAPI
	files storage.Store
}

func NewRepository(docs DocumentAPI, files storage.Store) *Repository {
	return &Repository{
		docs:  docs,
		files: files,
	}
}

// PostFields carries the data for a new post. Image is the raw featured-image
// binary and is required on create.
type PostFields struct {
	Title     string
	Content   string
	Status    model.PostStatus
	Image     []byte
	ImageName string
}

// PostPatch is a partial update. Nil pointer fields are left untouched; a
// non-empty Image replaces the featured image.
type PostPatch struct {
	Title     *string
	Content   *string
	Status    *model.PostStatus
	Image     []byte
	ImageName string
}

// List returns posts in backend order, with the filter queries passed through
// opaquely. The slice is empty, never nil, when nothing matches.
func (r *Repository) List(ctx context.Context, queries []string) ([]model.Post, error) {
	docs, err := r.docs.ListDocuments(ctx, queries)
	if err != nil {
		return nil, err
	}

	return lo.Map(docs, func(doc gateway.Document, _ int) model.Post {
		return *postFromDocument(&doc)
	}), nil
}

func (r *Repository) Get(ctx context.Context, id model.PostID) (*model.Post, error) {
	doc, err := r.docs.GetDocument(ctx, string(id))
	if err != nil {
		return nil, err
	}
	return postFromDocument(doc), nil
}

// Create uploads the featured image first, then writes the document with the
// asset reference and a slug-derived identifier. If the write fails after the
// upload succeeded, the fresh asset is deleted best-effort before the error
// propagates, so callers never observe a live orphaned file on this path.
func (r *Repository) Create(ctx context.Context, fields PostFields, userID model.UserID) (*model.Post, error) {
	if strings.TrimSpace(fields.Title) == "" {
		return nil, model.NewError(model.KindValidation, "title is required")
	}
	if len(fields.Image) == 0 {
		return nil, model.NewError(model.KindValidation, "featured image is required")
	}

	asset, err := r.files.Upload(ctx, fields.ImageName, fields.Image)
	if err != nil {
		return nil, err
	}

	status := fields.Status
	if status == "" {
		status = model.StatusActive
	}

	id := Slugify(fields.Title)
	doc, err := r.docs.CreateDocument(ctx, id, map[string]any{
		"title":         fields.Title,
		"content":       fields.Content,
		"status":        string(status),
		"featuredImage": string(asset.ID),
		"userId":        string(userID),
	})
	if err != nil {
		r.cleanupAsset(ctx, asset.ID)
		return nil, model.WrapError(model.KindPartialWrite, "document write failed after asset upload", err)
	}

	contentLogger.Info().
		Str("post_id", doc.ID).
		Str("file_id", string(asset.ID)).
		Msg("Post created")

	return postFromDocument(doc), nil
}

// Update applies a partial update. When the patch carries a new image the
// ordering is mandatory: upload the new asset, write the document, and only
// after the write is confirmed delete the old asset. Deleting the old asset
// first would leave the document pointing at a missing file if the write
// failed. A failed write after the new upload orphans the new asset, which is
// cleaned up best-effort; the old asset is left untouched on that path.
func (r *Repository) Update(ctx context.Context, id model.PostID, patch PostPatch) (*model.Post, error) {
	data := map[string]any{}
	if patch.Title != nil {
		// Title edits never re-derive the identifier; the slug is fixed at
		// creation time.
		data["title"] = *patch.Title
	}
	if patch.Content != nil {
		data["content"] = *patch.Content
	}
	if patch.Status != nil {
		data["status"] = string(*patch.Status)
	}

	var newAsset *model.Asset
	var oldAssetID model.AssetID

	if len(patch.Image) > 0 {
		current, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		oldAssetID = current.FeaturedImage

		newAsset, err = r.files.Upload(ctx, patch.ImageName, patch.Image)
		if err != nil {
			return nil, err
		}
		data["featuredImage"] = string(newAsset.ID)
	}

	doc, err := r.docs.UpdateDocument(ctx, string(id), data)
	if err != nil {
		if newAsset != nil {
			r.cleanupAsset(ctx, newAsset.ID)
			return nil, model.WrapError(model.KindPartialWrite, "document update failed after asset upload", err)
		}
		return nil, err
	}

	if newAsset != nil && oldAssetID != "" && oldAssetID != newAsset.ID {
		r.cleanupAsset(ctx, oldAssetID)
	}

	return postFromDocument(doc), nil
}

// Delete removes the document first and cascades to its asset after the
// removal succeeded, mirroring the update ordering: never delete an asset
// whose owning document still references it.
func (r *Repository) Delete(ctx context.Context, id model.PostID) error {
	post, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := r.docs.DeleteDocument(ctx, string(id)); err != nil {
		return err
	}

	if post.FeaturedImage != "" {
		r.cleanupAsset(ctx, post.FeaturedImage)
	}

	contentLogger.Info().Str("post_id", string(id)).Msg("Post deleted")
	return nil
}

// PreviewURL formats the featured-image URL for an asset. Pure pass-through
// to the file store; never fails.
func (r *Repository) PreviewURL(id model.AssetID) string {
	return r.files.PreviewURL(id)
}

// cleanupAsset deletes an asset best-effort. A failure here is logged and
// never replaces the primary error being propagated.
func (r *Repository) cleanupAsset(ctx context.Context, id model.AssetID) {
	if err := r.files.Delete(ctx, id); err != nil {
		contentLogger.Warn().
			Err(err).
			Str("file_id", string(id)).
			Msg("Orphaned asset cleanup failed")
	}
}

func postFromDocument(doc *gateway.Document) *model.Post {
	return &model.Post{
		ID:            model.PostID(doc.ID),
		Title:         stringField(doc, "title"),
		Content:       stringField(doc, "content"),
		Status:        model.PostStatus(stringField(doc, "status")),
		FeaturedImage: model.AssetID(stringField(doc, "featuredImage")),
		Owner:         model.UserID(stringField(doc, "userId")),
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

func stringField(doc *gateway.Document, key string) string {
	if v, ok := doc.Data[key].(string); ok {
		return v
	}
	return ""
}
