package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/community/shared/domain"
	mw "github.com/itchan-dev/community/shared/middleware"
)

// --- Mocks ---

type MockPostService struct {
	MockSave              func(data domain.PostCreationData) (domain.Post, error)
	MockGet               func(id domain.PostId) (domain.Post, error)
	MockUpdate            func(user domain.User, data domain.PostUpdateData) (domain.Post, error)
	MockDelete            func(user domain.User, id domain.PostId) error
	MockIncreaseViewCount func(id domain.PostId) error
	MockListByCategory    func(category domain.CategoryId, page int) (domain.PostPage, error)
	MockRecent            func() ([]domain.PostPreview, error)
	MockListByTenant      func(handle domain.TenantHandle) ([]domain.PostSummary, error)
}

func (m *MockPostService) Save(ctx context.Context, data domain.PostCreationData) (domain.Post, error) {
	if m.MockSave != nil {
		return m.MockSave(data)
	}
	return domain.Post{}, nil
}

func (m *MockPostService) Get(ctx context.Context, id domain.PostId) (domain.Post, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.Post{Id: id}, nil
}

func (m *MockPostService) Update(ctx context.Context, user domain.User, data domain.PostUpdateData) (domain.Post, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(user, data)
	}
	return domain.Post{Id: data.Id}, nil
}

func (m *MockPostService) Delete(ctx context.Context, user domain.User, id domain.PostId) error {
	if m.MockDelete != nil {
		return m.MockDelete(user, id)
	}
	return nil
}

func (m *MockPostService) IncreaseViewCount(ctx context.Context, id domain.PostId) error {
	if m.MockIncreaseViewCount != nil {
		return m.MockIncreaseViewCount(id)
	}
	return nil
}

func (m *MockPostService) ListByCategory(ctx context.Context, category domain.CategoryId, page int) (domain.PostPage, error) {
	if m.MockListByCategory != nil {
		return m.MockListByCategory(category, page)
	}
	return domain.PostPage{Page: 1}, nil
}

func (m *MockPostService) Recent(ctx context.Context) ([]domain.PostPreview, error) {
	if m.MockRecent != nil {
		return m.MockRecent()
	}
	return []domain.PostPreview{}, nil
}

func (m *MockPostService) ListByTenant(ctx context.Context, handle domain.TenantHandle) ([]domain.PostSummary, error) {
	if m.MockListByTenant != nil {
		return m.MockListByTenant(handle)
	}
	return []domain.PostSummary{}, nil
}

type MockLikeService struct {
	MockLike  func(id domain.PostId, actor domain.ActorId) (bool, error)
	MockCount func(id domain.PostId) (int64, error)
	MockList  func(id domain.PostId) ([]domain.Like, error)
}

func (m *MockLikeService) Like(ctx context.Context, id domain.PostId, actor domain.ActorId) (bool, error) {
	if m.MockLike != nil {
		return m.MockLike(id, actor)
	}
	return true, nil
}

func (m *MockLikeService) Count(ctx context.Context, id domain.PostId) (int64, error) {
	if m.MockCount != nil {
		return m.MockCount(id)
	}
	return 0, nil
}

func (m *MockLikeService) List(ctx context.Context, id domain.PostId) ([]domain.Like, error) {
	if m.MockList != nil {
		return m.MockList(id)
	}
	return []domain.Like{}, nil
}

// --- Helpers ---

func createRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, url, bytes.NewBuffer(body))
}

// withUser puts user into the request context the way the auth middleware does.
func withUser(user *domain.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user != nil {
				r = r.WithContext(context.WithValue(r.Context(), mw.UserClaimsKey, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// setupTestRouter mounts every endpoint the way the real router does, with
// user standing in for a signed-in caller. A nil user means anonymous.
func setupTestRouter(posts *MockPostService, likes *MockLikeService, user *domain.User) *chi.Mux {
	h := &Handler{post: posts, like: likes}
	r := chi.NewRouter()
	r.Use(withUser(user))

	r.Post("/v1/posts", h.CreatePost)
	r.Get("/v1/posts/recent", h.GetRecentPosts)
	r.Get("/v1/posts/{id}", h.GetPost)
	r.Put("/v1/posts/{id}", h.UpdatePost)
	r.Delete("/v1/posts/{id}", h.DeletePost)
	r.Post("/v1/posts/{id}/view", h.ViewPost)
	r.Post("/v1/posts/{id}/likes", h.LikePost)
	r.Get("/v1/posts/{id}/likes", h.GetLikes)
	r.Get("/v1/categories/{category}/posts", h.GetCategory)
	r.Get("/v1/users/{handle}/posts", h.GetUserPosts)
	return r
}
