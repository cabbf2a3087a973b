package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/itchan-dev/community/backend/internal/service/utils"
	"github.com/itchan-dev/community/shared/domain"
	"github.com/itchan-dev/community/shared/errors"
	"github.com/itchan-dev/community/shared/logger"
)

// to mock service in tests
type PostService interface {
	Save(ctx context.Context, data domain.PostCreationData) (domain.Post, error)
	Get(ctx context.Context, id domain.PostId) (domain.Post, error)
	Update(ctx context.Context, user domain.User, data domain.PostUpdateData) (domain.Post, error)
	Delete(ctx context.Context, user domain.User, id domain.PostId) error
	IncreaseViewCount(ctx context.Context, id domain.PostId) error
	ListByCategory(ctx context.Context, category domain.CategoryId, page int) (domain.PostPage, error)
	Recent(ctx context.Context) ([]domain.PostPreview, error)
	ListByTenant(ctx context.Context, handle domain.TenantHandle) ([]domain.PostSummary, error)
}

type Post struct {
	storage   PostStorage
	validator PostValidator
	log       *slog.Logger
}

type PostStorage interface {
	EnsureTenantTable(ctx context.Context, handle domain.TenantHandle) error
	EnsurePostLikeTable(ctx context.Context, id domain.PostId) error
	AppendPost(ctx context.Context, data domain.PostCreationData) (domain.Post, error)
	InsertIndex(ctx context.Context, summary domain.PostSummary) error
	GetIndexEntry(ctx context.Context, id domain.PostId) (domain.PostSummary, error)
	QueryByCategory(ctx context.Context, category domain.CategoryId, page, pageSize int) ([]domain.PostSummary, int, error)
	QueryRecent(ctx context.Context, limit int) ([]domain.PostSummary, error)
	QueryByTenant(ctx context.Context, handle domain.TenantHandle) ([]domain.PostSummary, error)
	GetPost(ctx context.Context, id domain.PostId) (domain.Post, error)
	UpdatePost(ctx context.Context, data domain.PostUpdateData) (domain.Post, error)
	DeletePost(ctx context.Context, id domain.PostId) error
	IncreaseViewCount(ctx context.Context, id domain.PostId) error
}

type PostValidator interface {
	Title(title domain.PostTitle) error
	Body(body domain.PostBody) error
}

func NewPost(storage PostStorage, validator PostValidator) PostService {
	return &Post{storage: storage, validator: validator, log: logger.Component("post_service")}
}

// Save provisions the author's table, writes the post there, copies its
// summary into the shared index and provisions the post's likes table, in
// that order. The first failure is returned as is. A failed index write
// leaves the post visible to its author only until an external repair.
func (p *Post) Save(ctx context.Context, data domain.PostCreationData) (domain.Post, error) {
	data.Title = utils.SanitizeTitle(data.Title)
	data.Body = utils.SanitizeBody(data.Body)
	if err := p.validate(data.Title, data.Body); err != nil {
		return domain.Post{}, err
	}

	if err := p.storage.EnsureTenantTable(ctx, data.Author); err != nil {
		return domain.Post{}, err
	}
	post, err := p.storage.AppendPost(ctx, data)
	if err != nil {
		return domain.Post{}, err
	}
	if err := p.storage.InsertIndex(ctx, post.Summary()); err != nil {
		p.log.Error("post index insert failed after tenant write", "post_id", post.Id, "author", post.Author, "error", err)
		return domain.Post{}, err
	}
	if err := p.storage.EnsurePostLikeTable(ctx, post.Id); err != nil {
		return domain.Post{}, err
	}

	p.log.Debug("post saved", "post_id", post.Id, "author", post.Author, "category", post.Category)
	return post, nil
}

func (p *Post) Get(ctx context.Context, id domain.PostId) (domain.Post, error) {
	return p.storage.GetPost(ctx, id)
}

func (p *Post) Update(ctx context.Context, user domain.User, data domain.PostUpdateData) (domain.Post, error) {
	data.Title = utils.SanitizeTitle(data.Title)
	data.Body = utils.SanitizeBody(data.Body)
	if err := p.validate(data.Title, data.Body); err != nil {
		return domain.Post{}, err
	}
	if err := p.authorize(ctx, user, data.Id); err != nil {
		return domain.Post{}, err
	}
	return p.storage.UpdatePost(ctx, data)
}

func (p *Post) Delete(ctx context.Context, user domain.User, id domain.PostId) error {
	if err := p.authorize(ctx, user, id); err != nil {
		return err
	}
	return p.storage.DeletePost(ctx, id)
}

func (p *Post) IncreaseViewCount(ctx context.Context, id domain.PostId) error {
	return p.storage.IncreaseViewCount(ctx, id)
}

// ListByCategory returns a page of a category. A page past the end is served
// as the last page instead of an empty one.
func (p *Post) ListByCategory(ctx context.Context, category domain.CategoryId, page int) (domain.PostPage, error) {
	page = max(1, page)

	posts, totalPages, err := p.storage.QueryByCategory(ctx, category, page, PageSize)
	if err != nil {
		return domain.PostPage{}, err
	}
	if totalPages < page {
		clamped := ClampPage(page, totalPages)
		if clamped != page {
			page = clamped
			posts, totalPages, err = p.storage.QueryByCategory(ctx, category, page, PageSize)
			if err != nil {
				return domain.PostPage{}, err
			}
		}
	}
	return domain.PostPage{Posts: posts, Page: page, TotalPages: totalPages}, nil
}

func (p *Post) Recent(ctx context.Context) ([]domain.PostPreview, error) {
	summaries, err := p.storage.QueryRecent(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}

	previews := make([]domain.PostPreview, len(summaries))
	for i, s := range summaries {
		previews[i] = domain.PostPreview{Id: s.Id, Title: s.Title, ImageUrl: s.FirstImage}
	}
	return previews, nil
}

func (p *Post) ListByTenant(ctx context.Context, handle domain.TenantHandle) ([]domain.PostSummary, error) {
	return p.storage.QueryByTenant(ctx, handle)
}

func (p *Post) validate(title domain.PostTitle, body domain.PostBody) error {
	if err := p.validator.Title(title); err != nil {
		return err
	}
	return p.validator.Body(body)
}

// authorize allows the author and admins to change a post.
func (p *Post) authorize(ctx context.Context, user domain.User, id domain.PostId) error {
	summary, err := p.storage.GetIndexEntry(ctx, id)
	if err != nil {
		return err
	}
	if user.Admin || summary.Author == user.Nickname {
		return nil
	}
	return &errors.ErrorWithStatusCode{Message: "Only the author can change this post", StatusCode: http.StatusForbidden}
}
