package api

import "github.com/itchan-dev/community/shared/domain"

type LikeResponse struct {
	Inserted bool  `json:"inserted"`
	Count    int64 `json:"count"`
}

type LikeListResponse struct {
	Likes []domain.Like `json:"likes"`
	Count int           `json:"count"`
}
