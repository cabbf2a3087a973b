package handler

import (
	"context"
	"net/http"

	"github.com/itchan-dev/community/backend/internal/service"
	"github.com/itchan-dev/community/shared/config"
	"github.com/itchan-dev/community/shared/utils"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	post   service.PostService
	like   service.LikeService
	health HealthChecker
	cfg    *config.Config
}

func New(post service.PostService, like service.LikeService, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{post: post, like: like, health: health, cfg: cfg}
}

func writeJSON(w http.ResponseWriter, v any) {
	utils.WriteJSON(w, http.StatusOK, v)
}
