package pg

import (
	"context"
	"database/sql"

	"github.com/itchan-dev/community/shared/domain"
	sharedpg "github.com/itchan-dev/community/shared/storage/pg"
)

// Operations addressed by post id only. The index row names the author, and
// so the tenant table holding the authoritative row.

func (s *Storage) GetPost(ctx context.Context, id domain.PostId) (domain.Post, error) {
	summary, err := s.GetIndexEntry(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	return getTenantPost(ctx, s.db, summary.Author, id)
}

// UpdatePost rewrites the post in its tenant table and refreshes the summary
// fields of the index row in the same transaction.
func (s *Storage) UpdatePost(ctx context.Context, data domain.PostUpdateData) (domain.Post, error) {
	var updated domain.Post
	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		summary, err := getIndexEntry(ctx, tx, data.Id, true)
		if err != nil {
			return err
		}
		updated, err = updateTenantPost(ctx, tx, summary.Author, data)
		if err != nil {
			return err
		}
		return updateIndexEntry(ctx, tx, updated)
	})
	if err != nil {
		return domain.Post{}, txError("failed to update post", err)
	}
	return updated, nil
}

// DeletePost removes the tenant row and its index row together.
// The likes table of the post is kept.
func (s *Storage) DeletePost(ctx context.Context, id domain.PostId) error {
	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		summary, err := getIndexEntry(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if err := deleteTenantPost(ctx, tx, summary.Author, id); err != nil {
			return err
		}
		return removeIndexEntry(ctx, tx, id)
	})
	if err != nil {
		return txError("failed to delete post", err)
	}
	return nil
}

func (s *Storage) IncreaseViewCount(ctx context.Context, id domain.PostId) error {
	summary, err := s.GetIndexEntry(ctx, id)
	if err != nil {
		return err
	}
	return incrementTenantPostViews(ctx, s.db, summary.Author, id)
}
