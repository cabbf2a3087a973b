package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/itchan-dev/community/shared/domain"
	sharedpg "github.com/itchan-dev/community/shared/storage/pg"
)

// EnsureLiked records that actor likes the post. A repeated like is a silent
// no-op; inserted reports whether a new row was written.
// The likes table must already exist, see EnsurePostLikeTable.
func (s *Storage) EnsureLiked(ctx context.Context, id domain.PostId, actor domain.ActorId) (bool, error) {
	table, err := sharedpg.PostLikesTable(id)
	if err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (post_id, actor_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, actor_id) DO NOTHING`, table),
		id, actor, time.Now().UTC(),
	)
	if err != nil {
		return false, storageError("failed to insert like", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, storageError("failed to check affected rows for like", err)
	}
	if affected == 0 {
		likesSuppressed.Inc()
		return false, nil
	}
	return true, nil
}

// CountLikes returns the number of distinct actors who liked the post.
func (s *Storage) CountLikes(ctx context.Context, id domain.PostId) (int64, error) {
	table, err := sharedpg.PostLikesTable(id)
	if err != nil {
		return 0, err
	}

	var count int64
	err = s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&count)
	if err != nil {
		if isUndefinedTable(err) {
			return 0, nil
		}
		return 0, storageError("failed to count likes", err)
	}
	return count, nil
}

// ListLikes returns the likes of a post in the order they were given.
func (s *Storage) ListLikes(ctx context.Context, id domain.PostId) ([]domain.Like, error) {
	table, err := sharedpg.PostLikesTable(id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT post_id, actor_id, created_at FROM %s
		ORDER BY created_at, actor_id`, table))
	if err != nil {
		if isUndefinedTable(err) {
			return []domain.Like{}, nil
		}
		return nil, storageError("failed to query likes", err)
	}
	defer rows.Close()

	likes := []domain.Like{}
	for rows.Next() {
		var like domain.Like
		if err := rows.Scan(&like.PostId, &like.Actor, &like.CreatedAt); err != nil {
			return nil, storageError("failed to scan like", err)
		}
		likes = append(likes, like)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("rows iteration error", err)
	}
	return likes, nil
}
