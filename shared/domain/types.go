package domain

type (
	TenantHandle = string
	ActorId      = string
	PostId       = int64
	CategoryId   = int64

	PostTitle = string
	PostBody  = string
	ImageRef  = string
)
