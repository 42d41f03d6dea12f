// Package model defines the core data structures shared by the session and
// content layers.
package model

import "time"

type UserID string

type SessionID string

type PostID string

type AssetID string

// User is the identity record kept by the hosted backend. This layer only
// reads it; there is no profile-edit operation in scope.
type User struct {
	ID    UserID
	Email string
	Name  string
}

// Session represents one authenticated client context. Sessions are created
// by login and destroyed by logout, never mutated.
type Session struct {
	ID        SessionID
	UserID    UserID
	CreatedAt time.Time
}

type PostStatus string

const (
	StatusActive   PostStatus = "active"
	StatusInactive PostStatus = "inactive"
)

// Post is a content document. The ID is derived from the title at creation
// time and is immutable afterwards; later title edits do not move the post.
type Post struct {
	ID PostID

	Title   string
	Content string
	Status  PostStatus

	// FeaturedImage references the asset owned by this post, if any.
	FeaturedImage AssetID

	Owner UserID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Asset is a stored binary, owned by at most one post at a time.
type Asset struct {
	ID       AssetID
	Name     string
	MimeType string
	Size     int64
}
