package domain

// User is the identity resolved from an access token.
type User struct {
	Id       int64
	Nickname TenantHandle
	Admin    bool
}
