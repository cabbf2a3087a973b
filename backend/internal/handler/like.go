package handler

import (
	"net/http"

	"github.com/itchan-dev/community/shared/api"
	"github.com/itchan-dev/community/shared/utils"
)

// LikePost answers 201 for a new like and 200 when the caller had already
// liked the post.
func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
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

	inserted, err := h.like.Like(r.Context(), id, user.Nickname)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	count, err := h.like.Count(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	utils.WriteJSON(w, status, api.LikeResponse{Inserted: inserted, Count: count})
}

func (h *Handler) GetLikes(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	likes, err := h.like.List(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.LikeListResponse{Likes: likes, Count: len(likes)})
}
