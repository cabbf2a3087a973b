package handler

import (
	"net/http"

	"github.com/itchan-dev/community/shared/api"
	"github.com/itchan-dev/community/shared/domain"
	"github.com/itchan-dev/community/shared/utils"
)

const defaultPage int = 1

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, err := requireUser(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.CreatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Save(r.Context(), domain.PostCreationData{
		Author:   user.Nickname,
		Title:    body.Title,
		Body:     body.Body,
		Category: body.Category,
		Images:   body.Images,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.CreatePostResponse{Id: post.Id})
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.PostResponse{Post: post})
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user, err := requireUser(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	id, err := parsePostId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.UpdatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Update(r.Context(), *user, domain.PostUpdateData{
		Id:     id,
		Title:  body.Title,
		Body:   body.Body,
		Images: body.Images,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.PostResponse{Post: post})
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, err := requireUser(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	id, err := parsePostId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.post.Delete(r.Context(), *user, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ViewPost(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.post.IncreaseViewCount(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := parsePositiveParam(r, "category")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	result, err := h.post.ListByCategory(r.Context(), category, page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.CategoryPageResponse{PostPage: result})
}

func (h *Handler) GetRecentPosts(w http.ResponseWriter, r *http.Request) {
	previews, err := h.post.Recent(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.RecentPostsResponse{Posts: previews})
}

func (h *Handler) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	handle, err := handleParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	posts, err := h.post.ListByTenant(r.Context(), handle)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.PostListResponse{Posts: posts})
}
