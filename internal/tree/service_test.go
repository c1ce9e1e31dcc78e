package tree

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sejf-plikow/internal/models"
	"sejf-plikow/internal/storage"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScenario_DocsReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := createOwner(t)

	docs, err := f.svc.CreateFolder(ctx, owner, "Docs", nil)
	require.NoError(t, err)
	year, err := f.svc.CreateFolder(ctx, owner, "2024", &docs.ID)
	require.NoError(t, err)

	content := "%PDF-1.4 report"
	report, err := f.svc.CreateFile(ctx, owner, "report.pdf", &year.ID, "application/pdf", strings.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, int64(len(content)), report.SizeBytes)
	require.Equal(t, "application/pdf", report.ContentType)
	sum := sha256.Sum256([]byte(content))
	require.Equal(t, hex.EncodeToString(sum[:]), *report.SHA256)

	root, err := f.svc.ListChildren(ctx, owner, nil)
	require.NoError(t, err)
	require.Len(t, root.Folders, 1)
	require.Equal(t, "Docs", root.Folders[0].Name)
	require.Empty(t, root.Files)

	inDocs, err := f.svc.ListChildren(ctx, owner, &docs.ID)
	require.NoError(t, err)
	require.Len(t, inDocs.Folders, 1)
	require.Equal(t, year.ID, inDocs.Folders[0].ID)

	inYear, err := f.svc.ListChildren(ctx, owner, &year.ID)
	require.NoError(t, err)
	require.Empty(t, inYear.Folders)
	require.Len(t, inYear.Files, 1)
	require.Equal(t, report.ID, inYear.Files[0].ID)

	meta, stream, err := f.svc.OpenFile(ctx, owner, report.ID)
	require.NoError(t, err)
	body, err := io.ReadAll(stream)
	require.NoError(t, err)
	require.NoError(t, stream.Close())
	require.Equal(t, content, string(body))
	require.Equal(t, report.ID, meta.ID)

	deleted, err := f.svc.DeleteFolder(ctx, owner, docs.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), deleted)

	_, err = f.svc.GetFile(ctx, owner, report.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.GetFolder(ctx, owner, year.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.blobs.Get(report.BlobRef.String())
	require.ErrorIs(t, err, storage.ErrBlobNotFound)

	root, err = f.svc.ListChildren(ctx, owner, nil)
	require.NoError(t, err)
	require.Empty(t, root.Folders)

	_, err = f.svc.DeleteFolder(ctx, owner, docs.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.Equal(t, []string{
		models.EventFolderCreated,
		models.EventFolderCreated,
		models.EventFileCreated,
		models.EventFolderDeleted,
	}, f.events.types(owner))
}

func TestUpdateFolder_RejectsCycles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := createOwner(t)

	a, err := f.svc.CreateFolder(ctx, owner, "a", nil)
	require.NoError(t, err)
	b, err := f.svc.CreateFolder(ctx, owner, "b", &a.ID)
	require.NoError(t, err)
	c, err := f.svc.CreateFolder(ctx, owner, "c", &b.ID)
	require.NoError(t, err)
	d, err := f.svc.CreateFolder(ctx, owner, "d", nil)
	require.NoError(t, err)

	_, err = f.svc.UpdateFolder(ctx, owner, a.ID, FolderUpdate{MoveParent: true, ParentID: &a.ID})
	require.ErrorIs(t, err, ErrInvalidMove)

	_, err = f.svc.UpdateFolder(ctx, owner, a.ID, FolderUpdate{MoveParent: true, ParentID: &c.ID})
	require.ErrorIs(t, err, ErrInvalidMove)

	_, err = f.svc.UpdateFolder(ctx, owner, a.ID, FolderUpdate{MoveParent: true, ParentID: &b.ID})
	require.ErrorIs(t, err, ErrInvalidMove)

	// Nieudane przeniesienie niczego nie zmienia
	unchanged, err := f.svc.GetFolder(ctx, owner, a.ID)
	require.NoError(t, err)
	require.Nil(t, unchanged.ParentID)

	moved, err := f.svc.UpdateFolder(ctx, owner, b.ID, FolderUpdate{MoveParent: true, ParentID: &d.ID})
	require.NoError(t, err)
	require.Equal(t, d.ID, *moved.ParentID)

	inD, err := f.svc.ListChildren(ctx, owner, &d.ID)
	require.NoError(t, err)
	require.Len(t, inD.Folders, 1)
	require.Equal(t, b.ID, inD.Folders[0].ID)

	inA, err := f.svc.ListChildren(ctx, owner, &a.ID)
	require.NoError(t, err)
	require.Empty(t, inA.Folders)

	// a nie jest już przodkiem c, więc ten ruch jest poprawny
	moved, err = f.svc.UpdateFolder(ctx, owner, a.ID, FolderUpdate{MoveParent: true, ParentID: &c.ID})
	require.NoError(t, err)
	require.Equal(t, c.ID, *moved.ParentID)
}

func TestUpdateFolder_ParentSemantics(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := createOwner(t)
	stranger := createOwner(t)

	parent, err := f.svc.CreateFolder(ctx, owner, "parent", nil)
	require.NoError(t, err)
	child, err := f.svc.CreateFolder(ctx, owner, "child", &parent.ID)
	require.NoError(t, err)
	foreign, err := f.svc.CreateFolder(ctx, stranger, "foreign", nil)
	require.NoError(t, err)

	renamed, err := f.svc.UpdateFolder(ctx, owner, child.ID, FolderUpdate{Name: strPtr("renamed")})
	require.NoError(t, err)
	require.Equal(t, "renamed", renamed.Name)
	require.Equal(t, parent.ID, *renamed.ParentID, "omitted parent keeps the folder in place")

	_, err = f.svc.UpdateFolder(ctx, owner, child.ID, FolderUpdate{MoveParent: true, ParentID: &foreign.ID})
	require.ErrorIs(t, err, ErrParentNotFound)

	_, err = f.svc.UpdateFolder(ctx, owner, child.ID, FolderUpdate{MoveParent: true, ParentID: strPtr("missing")})
	require.ErrorIs(t, err, ErrParentNotFound)

	atRoot, err := f.svc.UpdateFolder(ctx, owner, child.ID, FolderUpdate{MoveParent: true, ParentID: nil})
	require.NoError(t, err)
	require.Nil(t, atRoot.ParentID)
}

func TestCrossOwnerAccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := createOwner(t)
	stranger := createOwner(t)

	folder, err := f.svc.CreateFolder(ctx, owner, "private", nil)
	require.NoError(t, err)
	file, err := f.svc.CreateFile(ctx, owner, "secret.txt", &folder.ID, "text/plain", strings.NewReader("tajne"))
	require.NoError(t, err)

	_, err = f.svc.GetFolder(ctx, stranger, folder.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.ListChildren(ctx, stranger, &folder.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.UpdateFolder(ctx, stranger, folder.ID, FolderUpdate{Name: strPtr("mine")})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.DeleteFolder(ctx, stranger, folder.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.GetFile(ctx, stranger, file.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, _, err = f.svc.OpenFile(ctx, stranger, file.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.UpdateFile(ctx, stranger, file.ID, FileUpdate{Name: strPtr("x.txt")})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.DeleteFile(ctx, stranger, file.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.CreateFolder(ctx, stranger, "intruder", &folder.ID)
	require.ErrorIs(t, err, ErrParentNotFound)
	_, err = f.svc.CreateFile(ctx, stranger, "intruder.txt", &folder.ID, "", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrParentNotFound)

	// Właściciel nadal widzi wszystko bez zmian
	children, err := f.svc.ListChildren(ctx, owner, &folder.ID)
	require.NoError(t, err)
	require.Len(t, children.Files, 1)
	require.Equal(t, "secret.txt", children.Files[0].Name)
	require.Empty(t, f.events.types(stranger))
}

func TestSiblingNameConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := createOwner(t)

	_, err := f.svc.CreateFolder(ctx, owner, "same", nil)
	require.NoError(t, err)
	_, err = f.svc.CreateFolder(ctx, owner, "same", nil)
	require.ErrorIs(t, err, ErrConflict)

	_, err = f.svc.CreateFile(ctx, owner, "a.txt", nil, "text/plain", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := f.svc.CreateFile(ctx, owner, "b.txt", nil, "text/plain", strings.NewReader("b"))
	require.NoError(t, err)

	savesBefore := f.blobs.saveCount()
	_, err = f.svc.CreateFile(ctx, owner, "a.txt", nil, "text/plain", strings.NewReader("again"))
	require.ErrorIs(t, err, ErrConflict)
	require.Equal(t, savesBefore+1, f.blobs.saveCount())

	_, err = f.svc.UpdateFile(ctx, owner, b.ID, FileUpdate{Name: strPtr("a.txt")})
	require.ErrorIs(t, err, ErrConflict)

	root, err := f.svc.ListChildren(ctx, owner, nil)
	require.NoError(t, err)
	require.Len(t, root.Files, 2)
}

func TestNameValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := createOwner(t)

	for _, name := range []string{"", "   ", ".", "..", "a/b", `a\b`, strings.Repeat("x", maxNameLength+1)} {
		_, err := f.svc.CreateFolder(ctx, owner, name, nil)
		require.ErrorIs(t, err, ErrValidation, "name %q", name)
	}

	folder, err := f.svc.CreateFolder(ctx, owner, "  padded  ", nil)
	require.NoError(t, err)
	require.Equal(t, "padded", folder.Name)

	_, err = f.svc.UpdateFolder(ctx, owner, folder.ID, FolderUpdate{Name: strPtr("")})
	require.ErrorIs(t, err, ErrValidation)

	require.Zero(t, f.blobs.saveCount())
	_, err = f.svc.CreateFile(ctx, owner, "", nil, "", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrValidation)
	require.Zero(t, f.blobs.saveCount(), "invalid uploads never reach the blob store")
}

func TestFileLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := createOwner(t)

	folder, err := f.svc.CreateFolder(ctx, owner, "inbox", nil)
	require.NoError(t, err)

	file, err := f.svc.CreateFile(ctx, owner, "notes.bin", nil, "", strings.NewReader("hello"))
	require.NoError(t, err)
	require.Equal(t, defaultContentType, file.ContentType)
	require.Nil(t, file.FolderID)

	moved, err := f.svc.UpdateFile(ctx, owner, file.ID, FileUpdate{MoveFolder: true, FolderID: &folder.ID})
	require.NoError(t, err)
	require.Equal(t, folder.ID, *moved.FolderID)
	require.Equal(t, "notes.bin", moved.Name)

	_, err = f.svc.UpdateFile(ctx, owner, file.ID, FileUpdate{MoveFolder: true, FolderID: strPtr("missing")})
	require.ErrorIs(t, err, ErrParentNotFound)

	back, err := f.svc.UpdateFile(ctx, owner, file.ID, FileUpdate{Name: strPtr("notes.txt"), MoveFolder: true})
	require.NoError(t, err)
	require.Nil(t, back.FolderID)
	require.Equal(t, "notes.txt", back.Name)

	deleted, err := f.svc.DeleteFile(ctx, owner, file.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)

	_, err = f.blobs.Get(file.BlobRef.String())
	require.ErrorIs(t, err, storage.ErrBlobNotFound)

	_, err = f.svc.DeleteFile(ctx, owner, file.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateFile_BlobFailureLeavesNoMetadata(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := createOwner(t)

	f.blobs.setFailures(true, false)

	_, err := f.svc.CreateFile(ctx, owner, "broken.txt", nil, "text/plain", strings.NewReader("data"))
	require.ErrorIs(t, err, storage.ErrStorageFailure)

	root, err := f.svc.ListChildren(ctx, owner, nil)
	require.NoError(t, err)
	require.Empty(t, root.Files)
	require.Empty(t, f.events.types(owner))
}

func TestOpenFile_MissingBlob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := createOwner(t)

	file, err := f.svc.CreateFile(ctx, owner, "vanishing.txt", nil, "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	require.NoError(t, f.blobs.LocalStorage.Delete(file.BlobRef.String()))

	_, _, err = f.svc.OpenFile(ctx, owner, file.ID)
	require.ErrorIs(t, err, storage.ErrStorageFailure)
	require.ErrorIs(t, err, storage.ErrBlobNotFound)
}

func TestDeleteFolder_OrphanedBlobIsRetried(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := createOwner(t)

	folder, err := f.svc.CreateFolder(ctx, owner, "to-delete", nil)
	require.NoError(t, err)
	file, err := f.svc.CreateFile(ctx, owner, "kept-blob.txt", &folder.ID, "text/plain", strings.NewReader("orphan"))
	require.NoError(t, err)

	f.blobs.setFailures(false, true)

	deleted, err := f.svc.DeleteFolder(ctx, owner, folder.ID)
	require.NoError(t, err, "blob removal failure does not fail the delete")
	require.Equal(t, int64(2), deleted)

	_, err = f.svc.GetFile(ctx, owner, file.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// Metadane zniknęły, ale zawartość nadal leży na dysku
	stream, err := f.blobs.Get(file.BlobRef.String())
	require.NoError(t, err)
	stream.Close()

	require.Contains(t, unreleasedRefs(t), file.BlobRef.String())

	f.blobs.setFailures(false, false)

	released, err := f.svc.ReleaseOrphanedBlobs(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, released, 1)

	_, err = f.blobs.Get(file.BlobRef.String())
	require.ErrorIs(t, err, storage.ErrBlobNotFound)

	require.NotContains(t, unreleasedRefs(t), file.BlobRef.String())
}

func TestReleaseOrphanedBlobs_FailuresStayPending(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := createOwner(t)

	file, err := f.svc.CreateFile(ctx, owner, "stuck.txt", nil, "text/plain", strings.NewReader("x"))
	require.NoError(t, err)

	f.blobs.setFailures(false, true)
	_, err = f.svc.DeleteFile(ctx, owner, file.ID)
	require.NoError(t, err)

	released, err := f.svc.ReleaseOrphanedBlobs(ctx)
	require.NoError(t, err)
	require.Zero(t, released)
	require.Contains(t, unreleasedRefs(t), file.BlobRef.String())
}

func TestConcurrentOppositeMoves(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := createOwner(t)

	for i := range 10 {
		a, err := f.svc.CreateFolder(ctx, owner, "a-"+strings.Repeat("x", i+1), nil)
		require.NoError(t, err)
		b, err := f.svc.CreateFolder(ctx, owner, "b-"+strings.Repeat("x", i+1), nil)
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		start := make(chan struct{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			_, errs[0] = f.svc.UpdateFolder(ctx, owner, a.ID, FolderUpdate{MoveParent: true, ParentID: &b.ID})
		}()
		go func() {
			defer wg.Done()
			<-start
			_, errs[1] = f.svc.UpdateFolder(ctx, owner, b.ID, FolderUpdate{MoveParent: true, ParentID: &a.ID})
		}()
		close(start)
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			} else {
				require.ErrorIs(t, err, ErrInvalidMove)
			}
		}
		require.Equal(t, 1, succeeded, "exactly one of two opposite moves may win")

		// Dokładnie jeden z folderów pozostaje w korzeniu
		gotA, err := f.svc.GetFolder(ctx, owner, a.ID)
		require.NoError(t, err)
		gotB, err := f.svc.GetFolder(ctx, owner, b.ID)
		require.NoError(t, err)
		require.True(t, (gotA.ParentID == nil) != (gotB.ParentID == nil))
	}
}

func TestCreateFolder_UnderDeletedParent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := createOwner(t)

	parent, err := f.svc.CreateFolder(ctx, owner, "doomed", nil)
	require.NoError(t, err)
	_, err = f.svc.DeleteFolder(ctx, owner, parent.ID)
	require.NoError(t, err)

	_, err = f.svc.CreateFolder(ctx, owner, "late", &parent.ID)
	require.ErrorIs(t, err, ErrParentNotFound)
}

func TestReleaseOrphanedBlobs_FailingHeadDoesNotBlockTail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.svc.releaseBatch = 2
	owner := createOwner(t)

	// Wcześniejsze testy mogły zostawić niezwolnione bloby
	_, err := f.svc.ReleaseOrphanedBlobs(ctx)
	require.NoError(t, err)

	var refs []string
	f.blobs.setFailures(false, true)
	for i := 0; i < 3; i++ {
		file, err := f.svc.CreateFile(ctx, owner, fmt.Sprintf("orphan-%d.txt", i), nil, "text/plain", strings.NewReader("x"))
		require.NoError(t, err)
		_, err = f.svc.DeleteFile(ctx, owner, file.ID)
		require.NoError(t, err)
		refs = append(refs, file.BlobRef.String())
	}
	f.blobs.setFailures(false, false)

	// Dwa najstarsze bloby zapełniają całą pierwszą porcję i wciąż zawodzą
	f.blobs.failOn(refs[0], refs[1])

	released, err := f.svc.ReleaseOrphanedBlobs(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, released)

	pending := unreleasedRefs(t)
	require.Contains(t, pending, refs[0])
	require.Contains(t, pending, refs[1])
	require.NotContains(t, pending, refs[2])

	_, err = f.blobs.Get(refs[2])
	require.ErrorIs(t, err, storage.ErrBlobNotFound)

	f.blobs.failOn()
	released, err = f.svc.ReleaseOrphanedBlobs(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, released)
	require.Empty(t, unreleasedRefs(t))
}
