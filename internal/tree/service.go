// Package tree manages each owner's forest of folders and files. Metadata
// lives in PostgreSQL, file content in a BlobStore.
package tree

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sejf-plikow/internal/database"
	"sejf-plikow/internal/models"
	"sejf-plikow/internal/storage"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jaevor/go-nanoid"
	"go.uber.org/zap"
)

const (
	maxNameLength = 255
	// Upper bound on the parent walk done for cycle checks.
	maxTreeDepth = 4096
)

type Store interface {
	ExecTx(ctx context.Context, fn func(*database.Queries) error) error
	GetFolder(ctx context.Context, ownerID int64, id string) (*models.Folder, error)
	GetFile(ctx context.Context, ownerID int64, id string) (*models.File, error)
	ListChildFolders(ctx context.Context, ownerID int64, parentID *string) ([]models.Folder, error)
	ListFolderFiles(ctx context.Context, ownerID int64, folderID *string) ([]models.File, error)
	ListUnreleasedBlobs(ctx context.Context, after *database.UnreleasedBlob, limit int) ([]database.UnreleasedBlob, error)
	MarkBlobReleased(ctx context.Context, blobRef string) error
}

// Publisher pushes a committed change event to the owner's live connections.
type Publisher interface {
	PublishEvent(userID int64, eventData []byte)
}

type Service struct {
	store  Store
	blobs  storage.BlobStore
	events Publisher
	logger *zap.Logger
	newID  func() string

	releaseBatch int
}

func NewService(store Store, blobs storage.BlobStore, events Publisher, logger *zap.Logger) (*Service, error) {
	generateID, err := nanoid.Standard(21)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}

	return &Service{
		store:  store,
		blobs:  blobs,
		events: events,
		logger: logger,
		newID:  generateID,

		releaseBatch: releaseBatchSize,
	}, nil
}

// FolderUpdate describes a rename and/or move. With MoveParent unset the
// parent is kept; with MoveParent set a nil ParentID moves to the root.
type FolderUpdate struct {
	Name       *string
	MoveParent bool
	ParentID   *string
}

// FileUpdate is FolderUpdate for files.
type FileUpdate struct {
	Name       *string
	MoveFolder bool
	FolderID   *string
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	err := validation.Validate(name,
		validation.Required,
		validation.RuneLength(1, maxNameLength),
		validation.By(func(value interface{}) error {
			s, _ := value.(string)
			if s == "." || s == ".." {
				return errors.New("is reserved")
			}
			if strings.ContainsAny(s, "/\\\x00") {
				return errors.New("must not contain slashes or NUL")
			}
			return nil
		}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: name %v", ErrValidation, err)
	}
	return name, nil
}

// requireParent checks that id names an Active folder of the owner.
func requireParent(ctx context.Context, q *database.Queries, ownerID int64, id string) error {
	if _, err := q.GetFolder(ctx, ownerID, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrParentNotFound, id)
		}
		return err
	}
	return nil
}

// ensureNotDescendant walks parent links from newParentID up to the root and
// fails with ErrInvalidMove if folderID is met on the way.
func ensureNotDescendant(ctx context.Context, q *database.Queries, ownerID int64, folderID, newParentID string) error {
	if folderID == newParentID {
		return ErrInvalidMove
	}

	current := newParentID
	for range maxTreeDepth {
		folder, err := q.GetFolder(ctx, ownerID, current)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrParentNotFound, current)
			}
			return err
		}
		if folder.ParentID == nil {
			return nil
		}
		if *folder.ParentID == folderID {
			return ErrInvalidMove
		}
		current = *folder.ParentID
	}

	return fmt.Errorf("folder %s: ancestry deeper than %d levels", newParentID, maxTreeDepth)
}

func (s *Service) publish(ownerID int64, event *models.Event) {
	if event == nil || s.events == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("failed to encode change event", zap.Int64("event_id", event.ID), zap.Error(err))
		return
	}
	s.events.PublishEvent(ownerID, data)
}
