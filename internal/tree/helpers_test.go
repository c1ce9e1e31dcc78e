package tree

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sejf-plikow/internal/database"
	"sejf-plikow/internal/models"
	"sejf-plikow/internal/storage"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flakyBlobs wraps a real local store and can be told to fail.
type flakyBlobs struct {
	*storage.LocalStorage
	mu         sync.Mutex
	failSave   bool
	failDelete bool
	failRefs   map[string]bool
	saves      int
}

func (f *flakyBlobs) Save(ref string, data io.Reader) error {
	f.mu.Lock()
	f.saves++
	fail := f.failSave
	f.mu.Unlock()
	if fail {
		return fmt.Errorf("%w: disk full", storage.ErrStorageFailure)
	}
	return f.LocalStorage.Save(ref, data)
}

func (f *flakyBlobs) Delete(ref string) error {
	f.mu.Lock()
	fail := f.failDelete || f.failRefs[ref]
	f.mu.Unlock()
	if fail {
		return fmt.Errorf("%w: device busy", storage.ErrStorageFailure)
	}
	return f.LocalStorage.Delete(ref)
}

func (f *flakyBlobs) setFailures(save, del bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSave = save
	f.failDelete = del
}

func (f *flakyBlobs) failOn(refs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failRefs = make(map[string]bool, len(refs))
	for _, ref := range refs {
		f.failRefs[ref] = true
	}
}

func (f *flakyBlobs) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

type recordingPublisher struct {
	mu     sync.Mutex
	events map[int64][]models.Event
}

func (p *recordingPublisher) PublishEvent(userID int64, eventData []byte) {
	var event models.Event
	if err := json.Unmarshal(eventData, &event); err != nil {
		panic(err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.events == nil {
		p.events = make(map[int64][]models.Event)
	}
	p.events[userID] = append(p.events[userID], event)
}

func (p *recordingPublisher) types(userID int64) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events[userID] {
		out = append(out, e.EventType)
	}
	return out
}

type fixture struct {
	svc    *Service
	blobs  *flakyBlobs
	events *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	blobs := &flakyBlobs{LocalStorage: local}
	events := &recordingPublisher{}

	svc, err := NewService(testStore, blobs, events, zap.NewNop())
	require.NoError(t, err)

	return &fixture{svc: svc, blobs: blobs, events: events}
}

// Funkcja pomocnicza do tworzenia właściciela drzewa
func createOwner(t *testing.T) int64 {
	suffix := uuid.NewString()[:12]
	user, err := testStore.CreateUser(context.Background(), database.CreateUserParams{
		Username:     "tree_" + suffix,
		Email:        suffix + "@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return user.ID
}

// Funkcja pomocnicza zbierająca wszystkie niezwolnione bloby
func unreleasedRefs(t *testing.T) []string {
	var refs []string
	var cursor *database.UnreleasedBlob
	for {
		batch, err := testStore.ListUnreleasedBlobs(context.Background(), cursor, 500)
		require.NoError(t, err)
		for _, blob := range batch {
			refs = append(refs, blob.BlobRef)
		}
		if len(batch) < 500 {
			return refs
		}
		cursor = &batch[len(batch)-1]
	}
}

func strPtr(s string) *string {
	return &s
}
