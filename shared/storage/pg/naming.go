package pg

import (
	"encoding/hex"
	"strconv"

	"github.com/itchan-dev/community/shared/domain"
	internal_errors "github.com/itchan-dev/community/shared/errors"
	"github.com/lib/pq"
)

// MaxIdentifierLength is PostgreSQL's NAMEDATALEN-1.
const MaxIdentifierLength = 63

const (
	// plain handles keep their spelling, everything else is hex encoded.
	// The prefixes differ so the two forms never collide.
	plainTenantPrefix   = "posts_u_"
	encodedTenantPrefix = "posts_x_"
	likesPrefix         = "likes_p_"
)

// TenantPostsTableUnquoted maps a tenant handle to the raw name of its posts table.
// Example: "alice" -> "posts_u_alice", "Alice" -> "posts_x_416c696365"
func TenantPostsTableUnquoted(handle domain.TenantHandle) (string, error) {
	if handle == "" {
		return "", &internal_errors.InvalidIdentifierError{Identifier: handle, Reason: "tenant handle is empty"}
	}

	var name string
	if isPlainIdentifier(handle) {
		name = plainTenantPrefix + handle
	} else {
		name = encodedTenantPrefix + hex.EncodeToString([]byte(handle))
	}
	if len(name) > MaxIdentifierLength {
		return "", &internal_errors.InvalidIdentifierError{Identifier: handle, Reason: "tenant handle is too long"}
	}
	return name, nil
}

// TenantPostsTable returns the quoted tenant table name, safe to embed in SQL.
//
// Usage:
//
//	table, err := pg.TenantPostsTable(handle)
//	query := fmt.Sprintf("SELECT id, title FROM %s ORDER BY id DESC", table)
func TenantPostsTable(handle domain.TenantHandle) (string, error) {
	name, err := TenantPostsTableUnquoted(handle)
	if err != nil {
		return "", err
	}
	return pq.QuoteIdentifier(name), nil
}

// PostLikesTableUnquoted maps a post id to the raw name of its likes table.
// Example: 42 -> "likes_p_42"
func PostLikesTableUnquoted(id domain.PostId) (string, error) {
	if id <= 0 {
		return "", &internal_errors.InvalidIdentifierError{Identifier: strconv.FormatInt(id, 10), Reason: "post id must be positive"}
	}
	return likesPrefix + strconv.FormatInt(id, 10), nil
}

// PostLikesTable returns the quoted likes table name, safe to embed in SQL.
func PostLikesTable(id domain.PostId) (string, error) {
	name, err := PostLikesTableUnquoted(id)
	if err != nil {
		return "", err
	}
	return pq.QuoteIdentifier(name), nil
}

func isPlainIdentifier(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_') {
			return false
		}
	}
	return true
}
