// Package store defines the dual-backend persistence contract. Two
// implementations exist: localstore (JSON namespaces under the data
// directory) and client (the hosted HiveCast API). Which one is active is
// decided exactly once per session by the backend selector.
package store

import (
	"context"
	"io"

	"github.com/hivecastapp/hivecast/pkg/domain"
)

// Mode identifies the active backend for a session.
type Mode int

const (
	// ModeLocal persists everything in the local data directory.
	ModeLocal Mode = iota
	// ModeRemote talks to the hosted document API.
	ModeRemote
)

func (m Mode) String() string {
	if m == ModeRemote {
		return "remote"
	}
	return "local"
}

// Store is the CRUD contract both backends implement.
//
// Create operations assign the id, the creation timestamp, and any
// kind-specific defaults; callers never supply them. Update operations are
// merge-patches and are no-ops for absent ids. Delete is terminal and
// idempotent. List operations return independent copies ordered by creation
// time descending, optionally filtered by an owner-id equality predicate.
type Store interface {
	CreateProject(ctx context.Context, draft domain.ProjectDraft) (domain.Project, error)
	Projects(ctx context.Context, creatorID string) ([]domain.Project, error)
	UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) error
	DeleteProject(ctx context.Context, id string) error

	Profile(ctx context.Context, uid string) (*domain.UserProfile, error)
	SaveProfile(ctx context.Context, profile domain.UserProfile) error
	UpdateProfile(ctx context.Context, uid string, patch domain.ProfilePatch) error

	CreateJob(ctx context.Context, draft domain.JobDraft) (domain.Job, error)
	Jobs(ctx context.Context) ([]domain.Job, error)

	AddFavorite(ctx context.Context, userID, itemID string, itemType domain.FavoriteType) error
	RemoveFavorite(ctx context.Context, userID, itemID string) error
	Favorites(ctx context.Context, userID string) ([]domain.Favorite, error)

	RequestConnection(ctx context.Context, senderID, receiverID string) error
	SetConnectionStatus(ctx context.Context, id string, status domain.ConnectionStatus) error
	Connections(ctx context.Context, userID string) ([]domain.Connection, error)

	// UploadFile stores binary content and returns a retrieval URL.
	UploadFile(ctx context.Context, r io.Reader, path string) (string, error)
}
