package api

import (
	"github.com/itchan-dev/community/shared/domain"
)

// Request DTOs

type CreatePostRequest struct {
	Title    string        `json:"title" validate:"required"`
	Body     string        `json:"body" validate:"required"`
	Category int64         `json:"category" validate:"required,gt=0"`
	Images   domain.Images `json:"images"`
}

type UpdatePostRequest struct {
	Title  string        `json:"title" validate:"required"`
	Body   string        `json:"body" validate:"required"`
	Images domain.Images `json:"images"`
}

// Response DTOs

type CreatePostResponse struct {
	Id domain.PostId `json:"id"`
}

type PostResponse struct {
	domain.Post
}

type PostListResponse struct {
	Posts []domain.PostSummary `json:"posts"`
}

type CategoryPageResponse struct {
	domain.PostPage
}

type RecentPostsResponse struct {
	Posts []domain.PostPreview `json:"posts"`
}
