package service

import (
	"context"

	"github.com/itchan-dev/community/shared/domain"
)

type LikeService interface {
	Like(ctx context.Context, id domain.PostId, actor domain.ActorId) (bool, error)
	Count(ctx context.Context, id domain.PostId) (int64, error)
	List(ctx context.Context, id domain.PostId) ([]domain.Like, error)
}

type Like struct {
	storage LikeStorage
}

type LikeStorage interface {
	GetIndexEntry(ctx context.Context, id domain.PostId) (domain.PostSummary, error)
	EnsurePostLikeTable(ctx context.Context, id domain.PostId) error
	EnsureLiked(ctx context.Context, id domain.PostId, actor domain.ActorId) (bool, error)
	CountLikes(ctx context.Context, id domain.PostId) (int64, error)
	ListLikes(ctx context.Context, id domain.PostId) ([]domain.Like, error)
}

func NewLike(storage LikeStorage) LikeService {
	return &Like{storage}
}

// Like records a like. Liking twice is not an error, the second call just
// reports false. The post must be in the index, unknown ids never get a table.
func (l *Like) Like(ctx context.Context, id domain.PostId, actor domain.ActorId) (bool, error) {
	if _, err := l.storage.GetIndexEntry(ctx, id); err != nil {
		return false, err
	}
	if err := l.storage.EnsurePostLikeTable(ctx, id); err != nil {
		return false, err
	}
	return l.storage.EnsureLiked(ctx, id, actor)
}

func (l *Like) Count(ctx context.Context, id domain.PostId) (int64, error) {
	return l.storage.CountLikes(ctx, id)
}

func (l *Like) List(ctx context.Context, id domain.PostId) ([]domain.Like, error) {
	return l.storage.ListLikes(ctx, id)
}
