package tree

import (
	"context"
	"sejf-plikow/internal/database"

	"go.uber.org/zap"
)

const releaseBatchSize = 100

// releaseBlobs removes the content of files whose metadata is already
// Deleted. Failures are logged and left for ReleaseOrphanedBlobs.
func (s *Service) releaseBlobs(ctx context.Context, blobRefs []string) int {
	ctx = context.WithoutCancel(ctx)

	released := 0
	for _, ref := range blobRefs {
		if err := s.blobs.Delete(ref); err != nil {
			orphanedBlobsTotal.Inc()
			s.logger.Warn("failed to remove blob of deleted file", zap.String("blob_ref", ref), zap.Error(err))
			continue
		}
		if err := s.store.MarkBlobReleased(ctx, ref); err != nil {
			s.logger.Warn("failed to mark blob released", zap.String("blob_ref", ref), zap.Error(err))
			continue
		}
		releasedBlobsTotal.Inc()
		released++
	}
	return released
}

// ReleaseOrphanedBlobs retries blob removal for every Deleted file whose blob
// is still present. Blobs that fail again stay pending for the next run and do
// not block the ones behind them. It returns the number of blobs released.
func (s *Service) ReleaseOrphanedBlobs(ctx context.Context) (int, error) {
	total := 0
	var cursor *database.UnreleasedBlob
	for {
		batch, err := s.store.ListUnreleasedBlobs(ctx, cursor, s.releaseBatch)
		if err != nil {
			return total, err
		}
		if len(batch) == 0 {
			break
		}

		refs := make([]string, 0, len(batch))
		for _, blob := range batch {
			refs = append(refs, blob.BlobRef)
		}
		total += s.releaseBlobs(ctx, refs)

		if len(batch) < s.releaseBatch {
			break
		}
		last := batch[len(batch)-1]
		cursor = &last

		if err := ctx.Err(); err != nil {
			return total, err
		}
	}

	if total > 0 {
		s.logger.Info("released orphaned blobs", zap.Int("count", total))
	}
	return total, nil
}
