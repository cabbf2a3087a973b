package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type PostCreationData struct {
	Author   TenantHandle
	Title    PostTitle
	Body     PostBody
	Category CategoryId
	Images   Images
}

type PostUpdateData struct {
	Id     PostId
	Title  PostTitle
	Body   PostBody
	Images Images
}

// Images holds up to three optional image references of a post.
type Images struct {
	First  *ImageRef `json:"image_url1,omitempty"`
	Second *ImageRef `json:"image_url2,omitempty"`
	Third  *ImageRef `json:"image_url3,omitempty"`
}

// Post is the authoritative row stored in the author's tenant table.
type Post struct {
	Id        PostId       `json:"id"`
	Author    TenantHandle `json:"author"`
	Title     PostTitle    `json:"title"`
	Body      PostBody     `json:"body"`
	Category  CategoryId   `json:"category"`
	Images    Images       `json:"images"`
	ViewCount int64        `json:"view_count"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// PostSummary is the denormalized copy kept in the shared post index.
type PostSummary struct {
	Id         PostId       `json:"id"`
	Title      PostTitle    `json:"title"`
	Author     TenantHandle `json:"author"`
	Category   CategoryId   `json:"category"`
	CreatedAt  time.Time    `json:"created_at"`
	FirstImage *ImageRef    `json:"image_url,omitempty"`
}

func (p *Post) Summary() PostSummary {
	return PostSummary{
		Id:         p.Id,
		Title:      p.Title,
		Author:     p.Author,
		Category:   p.Category,
		CreatedAt:  p.CreatedAt,
		FirstImage: p.Images.First,
	}
}

// PostPreview is the projection used by the recent posts widget.
type PostPreview struct {
	Id       PostId    `json:"id"`
	Title    PostTitle `json:"title"`
	ImageUrl *ImageRef `json:"image_url,omitempty"`
}

type PostPage struct {
	Posts      []PostSummary `json:"posts"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
}
