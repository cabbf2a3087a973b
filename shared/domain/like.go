package domain

import "time"

type Like struct {
	PostId    PostId    `json:"post_id"`
	Actor     ActorId   `json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}
