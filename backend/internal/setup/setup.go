package setup

import (
	"context"
	"time"

	"github.com/itchan-dev/community/backend/internal/handler"
	"github.com/itchan-dev/community/backend/internal/service"
	"github.com/itchan-dev/community/backend/internal/storage/pg"
	"github.com/itchan-dev/community/backend/internal/utils"
	"github.com/itchan-dev/community/shared/config"
	"github.com/itchan-dev/community/shared/jwt"
	mw "github.com/itchan-dev/community/shared/middleware"
	rl "github.com/itchan-dev/community/shared/middleware/ratelimiter"
)

type Limiters struct {
	Reads  *rl.UserRateLimiter
	Views  *rl.UserRateLimiter
	Writes *rl.UserRateLimiter
	Posts  *rl.UserRateLimiter
}

func (l *Limiters) Stop() {
	for _, limiter := range []*rl.UserRateLimiter{l.Reads, l.Views, l.Writes, l.Posts} {
		limiter.Stop()
	}
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *mw.Auth
	Limiters       *Limiters
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	post := service.NewPost(storage, utils.New())
	like := service.NewLike(storage)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        handler.New(post, like, storage, cfg),
		Jwt:            jwtService,
		AuthMiddleware: mw.NewAuth(jwtService),
		Limiters: &Limiters{
			Reads:  rl.Rps100(),
			Views:  rl.OnceInSecond(),
			Writes: rl.Rps10(),
			Posts:  rl.New(1.0/60, 1, time.Hour),
		},
	}, nil
}

func (d *Dependencies) Cleanup() error {
	d.Limiters.Stop()
	return d.Storage.Cleanup()
}
