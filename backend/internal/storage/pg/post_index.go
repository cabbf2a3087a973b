package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/community/shared/domain"
	sharedpg "github.com/itchan-dev/community/shared/storage/pg"
)

const indexColumns = `post_id, title, author, category_id, created_at, image_url1`

// InsertIndex copies a post summary into the shared index.
// Id and timestamp must match the row in the tenant table.
func (s *Storage) InsertIndex(ctx context.Context, summary domain.PostSummary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO post_index (post_id, title, author, category_id, created_at, image_url1)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		summary.Id, summary.Title, summary.Author, summary.Category, summary.CreatedAt, summary.FirstImage,
	)
	if err != nil {
		return storageError("failed to insert post index", err)
	}
	return nil
}

// GetIndexEntry returns the summary for a post, which also names its author's table.
func (s *Storage) GetIndexEntry(ctx context.Context, id domain.PostId) (domain.PostSummary, error) {
	return getIndexEntry(ctx, s.db, id, false)
}

// QueryByCategory returns one page of a category, highest id first, and the
// number of pages the category spans.
func (s *Storage) QueryByCategory(ctx context.Context, category domain.CategoryId, page, pageSize int) ([]domain.PostSummary, int, error) {
	if pageSize <= 0 {
		return nil, 0, storageError("failed to query category posts", fmt.Errorf("page size must be positive, got %d", pageSize))
	}

	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM post_index WHERE category_id = $1`, category).Scan(&total)
	if err != nil {
		return nil, 0, storageError("failed to count category posts", err)
	}
	totalPages := (total + pageSize - 1) / pageSize

	// past the last page there is nothing to read
	page = max(page, 1)
	if page > totalPages {
		return []domain.PostSummary{}, totalPages, nil
	}

	offset := (page - 1) * pageSize
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM post_index
		WHERE category_id = $1
		ORDER BY post_id DESC
		LIMIT $2 OFFSET $3`, indexColumns),
		category, pageSize, offset,
	)
	if err != nil {
		return nil, 0, storageError("failed to query category posts", err)
	}
	summaries, err := collectSummaries(rows)
	if err != nil {
		return nil, 0, err
	}
	return summaries, totalPages, nil
}

// QueryRecent returns the newest posts across all tenants.
func (s *Storage) QueryRecent(ctx context.Context, limit int) ([]domain.PostSummary, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM post_index
		ORDER BY created_at DESC, post_id DESC
		LIMIT $1`, indexColumns),
		limit,
	)
	if err != nil {
		return nil, storageError("failed to query recent posts", err)
	}
	return collectSummaries(rows)
}

// QueryByTenant returns the index rows written by one tenant, highest id first.
func (s *Storage) QueryByTenant(ctx context.Context, handle domain.TenantHandle) ([]domain.PostSummary, error) {
	// same identifier rules as the tenant table, so both read paths reject the same handles
	if _, err := sharedpg.TenantPostsTableUnquoted(handle); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM post_index
		WHERE author = $1
		ORDER BY post_id DESC`, indexColumns),
		handle,
	)
	if err != nil {
		return nil, storageError("failed to query tenant index", err)
	}
	return collectSummaries(rows)
}

// RemoveIndex deletes a post's index row.
func (s *Storage) RemoveIndex(ctx context.Context, id domain.PostId) error {
	return removeIndexEntry(ctx, s.db, id)
}

func getIndexEntry(ctx context.Context, q Querier, id domain.PostId, forUpdate bool) (domain.PostSummary, error) {
	query := fmt.Sprintf(`SELECT %s FROM post_index WHERE post_id = $1`, indexColumns)
	if forUpdate {
		query += " FOR UPDATE"
	}
	summary, err := scanSummary(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PostSummary{}, postNotFound(id)
		}
		return domain.PostSummary{}, storageError("failed to fetch post index", err)
	}
	return summary, nil
}

func updateIndexEntry(ctx context.Context, q Querier, post domain.Post) error {
	_, err := q.ExecContext(ctx, `
		UPDATE post_index SET title = $1, image_url1 = $2
		WHERE post_id = $3`,
		post.Title, post.Images.First, post.Id,
	)
	if err != nil {
		return storageError("failed to update post index", err)
	}
	return nil
}

func removeIndexEntry(ctx context.Context, q Querier, id domain.PostId) error {
	result, err := q.ExecContext(ctx, `DELETE FROM post_index WHERE post_id = $1`, id)
	if err != nil {
		return storageError("failed to delete post index", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storageError("failed to delete post index", err)
	}
	if affected == 0 {
		return postNotFound(id)
	}
	return nil
}

func collectSummaries(rows *sql.Rows) ([]domain.PostSummary, error) {
	defer rows.Close()

	summaries := []domain.PostSummary{}
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, storageError("failed to scan post index", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("rows iteration error", err)
	}
	return summaries, nil
}

func scanSummary(row rowScanner) (domain.PostSummary, error) {
	var summary domain.PostSummary
	var image sql.NullString
	if err := row.Scan(&summary.Id, &summary.Title, &summary.Author, &summary.Category, &summary.CreatedAt, &image); err != nil {
		return domain.PostSummary{}, err
	}
	summary.FirstImage = nullableRef(image)
	return summary, nil
}
