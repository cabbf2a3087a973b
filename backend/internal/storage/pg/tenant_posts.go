package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/itchan-dev/community/shared/domain"
	internal_errors "github.com/itchan-dev/community/shared/errors"
	sharedpg "github.com/itchan-dev/community/shared/storage/pg"
)

const tenantPostColumns = `id, title, body, category_id, image_url1, image_url2, image_url3, view_count, created_at, updated_at`

// AppendPost inserts a post into its author's table. The table must already
// exist, see EnsureTenantTable.
func (s *Storage) AppendPost(ctx context.Context, data domain.PostCreationData) (domain.Post, error) {
	table, err := sharedpg.TenantPostsTable(data.Author)
	if err != nil {
		return domain.Post{}, err
	}

	createdTs := time.Now().UTC().Round(time.Microsecond) // database anyway round to microsecond
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (title, body, category_id, image_url1, image_url2, image_url3, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING %s`, table, tenantPostColumns),
		data.Title, data.Body, data.Category,
		data.Images.First, data.Images.Second, data.Images.Third,
		createdTs,
	)
	post, err := scanTenantPost(row, data.Author)
	if err != nil {
		return domain.Post{}, storageError("failed to insert post", err)
	}
	return post, nil
}

// ListTenantPosts returns every post of a tenant, newest first.
// A tenant who never posted has no table and an empty list.
func (s *Storage) ListTenantPosts(ctx context.Context, handle domain.TenantHandle) ([]domain.Post, error) {
	table, err := sharedpg.TenantPostsTable(handle)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT %s FROM %s ORDER BY id DESC`, tenantPostColumns, table))
	if err != nil {
		if isUndefinedTable(err) {
			return []domain.Post{}, nil
		}
		return nil, storageError("failed to query tenant posts", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanTenantPost(rows, handle)
		if err != nil {
			return nil, storageError("failed to scan tenant post", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("rows iteration error", err)
	}
	return posts, nil
}

func getTenantPost(ctx context.Context, q Querier, handle domain.TenantHandle, id domain.PostId) (domain.Post, error) {
	table, err := sharedpg.TenantPostsTable(handle)
	if err != nil {
		return domain.Post{}, err
	}

	row := q.QueryRowContext(ctx, fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, tenantPostColumns, table), id)
	post, err := scanTenantPost(row, handle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUndefinedTable(err) {
			return domain.Post{}, postNotFound(id)
		}
		return domain.Post{}, storageError("failed to fetch post", err)
	}
	return post, nil
}

func updateTenantPost(ctx context.Context, q Querier, handle domain.TenantHandle, data domain.PostUpdateData) (domain.Post, error) {
	table, err := sharedpg.TenantPostsTable(handle)
	if err != nil {
		return domain.Post{}, err
	}

	row := q.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE %s SET
			title = $1,
			body = $2,
			image_url1 = $3,
			image_url2 = $4,
			image_url3 = $5,
			updated_at = $6
		WHERE id = $7
		RETURNING %s`, table, tenantPostColumns),
		data.Title, data.Body,
		data.Images.First, data.Images.Second, data.Images.Third,
		time.Now().UTC().Round(time.Microsecond), data.Id,
	)
	post, err := scanTenantPost(row, handle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUndefinedTable(err) {
			return domain.Post{}, postNotFound(data.Id)
		}
		return domain.Post{}, storageError("failed to update post", err)
	}
	return post, nil
}

func deleteTenantPost(ctx context.Context, q Querier, handle domain.TenantHandle, id domain.PostId) error {
	table, err := sharedpg.TenantPostsTable(handle)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		if isUndefinedTable(err) {
			return postNotFound(id)
		}
		return storageError("failed to delete post", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storageError("failed to delete post", err)
	}
	if affected == 0 {
		return postNotFound(id)
	}
	return nil
}

func incrementTenantPostViews(ctx context.Context, q Querier, handle domain.TenantHandle, id domain.PostId) error {
	table, err := sharedpg.TenantPostsTable(handle)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, fmt.Sprintf(`UPDATE %s SET view_count = view_count + 1 WHERE id = $1`, table), id)
	if err != nil {
		if isUndefinedTable(err) {
			return postNotFound(id)
		}
		return storageError("failed to increase view count", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storageError("failed to increase view count", err)
	}
	if affected == 0 {
		return postNotFound(id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenantPost(row rowScanner, handle domain.TenantHandle) (domain.Post, error) {
	var post domain.Post
	var images [3]sql.NullString
	err := row.Scan(
		&post.Id, &post.Title, &post.Body, &post.Category,
		&images[0], &images[1], &images[2],
		&post.ViewCount, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return domain.Post{}, err
	}
	post.Author = handle
	post.Images = domain.Images{
		First:  nullableRef(images[0]),
		Second: nullableRef(images[1]),
		Third:  nullableRef(images[2]),
	}
	return post, nil
}

func nullableRef(s sql.NullString) *domain.ImageRef {
	if !s.Valid {
		return nil
	}
	ref := s.String
	return &ref
}

func postNotFound(id domain.PostId) error {
	return &internal_errors.NotFoundError{Entity: "post", Key: strconv.FormatInt(id, 10)}
}
