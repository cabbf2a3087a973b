package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/itchan-dev/community/shared/api"
	"github.com/itchan-dev/community/shared/domain"
	internal_errors "github.com/itchan-dev/community/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePostHandler(t *testing.T) {
	liked := map[domain.ActorId]bool{}
	likes := &MockLikeService{
		MockLike: func(id domain.PostId, actor domain.ActorId) (bool, error) {
			if liked[actor] {
				return false, nil
			}
			liked[actor] = true
			return true, nil
		},
		MockCount: func(id domain.PostId) (int64, error) {
			return int64(len(liked)), nil
		},
	}
	router := setupTestRouter(&MockPostService{}, likes, alice)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/posts/7/likes", nil))
	require.Equal(t, http.StatusCreated, rr.Code)
	var resp api.LikeResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Inserted)
	assert.Equal(t, int64(1), resp.Count)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/posts/7/likes", nil))
	require.Equal(t, http.StatusOK, rr.Code, "repeat like is not an error")
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.Inserted)
	assert.Equal(t, int64(1), resp.Count)
	assert.True(t, liked["alice"])
}

func TestLikePostHandlerErrors(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		router := setupTestRouter(&MockPostService{}, &MockLikeService{}, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/posts/7/likes", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		router := setupTestRouter(&MockPostService{}, &MockLikeService{}, alice)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/posts/0/likes", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown post", func(t *testing.T) {
		likes := &MockLikeService{
			MockLike: func(id domain.PostId, _ domain.ActorId) (bool, error) {
				return false, &internal_errors.NotFoundError{Entity: "post", Key: "987654"}
			},
		}
		router := setupTestRouter(&MockPostService{}, likes, alice)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/posts/987654/likes", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("provisioning failure", func(t *testing.T) {
		likes := &MockLikeService{
			MockLike: func(domain.PostId, domain.ActorId) (bool, error) {
				return false, &internal_errors.ProvisioningError{Table: "likes_p_7", Err: assert.AnError}
			},
		}
		router := setupTestRouter(&MockPostService{}, likes, alice)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/posts/7/likes", nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestGetLikesHandler(t *testing.T) {
	likes := &MockLikeService{
		MockList: func(id domain.PostId) ([]domain.Like, error) {
			assert.Equal(t, domain.PostId(7), id)
			return []domain.Like{{PostId: 7, Actor: "alice"}, {PostId: 7, Actor: "bob"}}, nil
		},
	}
	router := setupTestRouter(&MockPostService{}, likes, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/posts/7/likes", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp api.LikeListResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "bob", resp.Likes[1].Actor)
}
