package pg

import (
	"context"
	"fmt"

	"github.com/itchan-dev/community/shared/domain"
	internal_errors "github.com/itchan-dev/community/shared/errors"
	sharedpg "github.com/itchan-dev/community/shared/storage/pg"
	"github.com/lib/pq"
)

const tenantPostsDDL = `
CREATE TABLE IF NOT EXISTS %s (
	id          BIGINT PRIMARY KEY DEFAULT nextval('post_id_seq'),
	title       TEXT NOT NULL,
	body        TEXT NOT NULL,
	category_id BIGINT NOT NULL,
	image_url1  TEXT,
	image_url2  TEXT,
	image_url3  TEXT,
	view_count  BIGINT NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
)`

// one row per distinct actor, the primary key serializes concurrent likes
const postLikesDDL = `
CREATE TABLE IF NOT EXISTS %s (
	post_id    BIGINT NOT NULL,
	actor_id   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (post_id, actor_id)
)`

// EnsureTenantTable creates the tenant's posts table on first use.
func (s *Storage) EnsureTenantTable(ctx context.Context, handle domain.TenantHandle) error {
	name, err := sharedpg.TenantPostsTableUnquoted(handle)
	if err != nil {
		return err
	}
	return s.ensureTable(ctx, name, tenantPostsDDL, tableKindTenant)
}

// EnsurePostLikeTable creates the post's likes table on first use.
func (s *Storage) EnsurePostLikeTable(ctx context.Context, id domain.PostId) error {
	name, err := sharedpg.PostLikesTableUnquoted(id)
	if err != nil {
		return err
	}
	return s.ensureTable(ctx, name, postLikesDDL, tableKindLikes)
}

func (s *Storage) ensureTable(ctx context.Context, name, ddl, kind string) error {
	quoted := pq.QuoteIdentifier(name)

	exists, err := s.tableExists(ctx, quoted)
	if err != nil {
		return provisioningError(ctx, name, err)
	}
	if exists {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(ddl, quoted)); err != nil {
		if isAlreadyExists(err) {
			tableCreateRaces.WithLabelValues(kind).Inc()
			s.log.Debug("table created concurrently", "table", name)
			return nil
		}
		return provisioningError(ctx, name, err)
	}

	tablesProvisioned.WithLabelValues(kind).Inc()
	s.log.Info("table provisioned", "table", name, "kind", kind)
	return nil
}

func (s *Storage) tableExists(ctx context.Context, quotedName string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", quotedName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return exists, nil
}

// provisioningError keeps caller cancellation and timeouts out of the
// provisioning kind, they surface as storage errors like on every other path.
func provisioningError(ctx context.Context, table string, err error) error {
	if isContextError(ctx, err) {
		return storageError("failed to provision table "+table, err)
	}
	return &internal_errors.ProvisioningError{Table: table, Err: err}
}
