package api

import (
	"github.com/mangetsu-dev/mangetsu/internal/ads"
	"github.com/mangetsu-dev/mangetsu/internal/catalog"
	"github.com/mangetsu-dev/mangetsu/internal/comments"
	"github.com/mangetsu-dev/mangetsu/internal/config"
	"github.com/mangetsu-dev/mangetsu/internal/favorites"
	"github.com/mangetsu-dev/mangetsu/internal/posts"
	"github.com/mangetsu-dev/mangetsu/internal/progress"
	"github.com/mangetsu-dev/mangetsu/internal/settings"
	"github.com/mangetsu-dev/mangetsu/internal/users"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Catalog   catalog.System
	Users     users.System
	Favorites favorites.System
	Progress  progress.System
	Comments  comments.System
	Posts     posts.System
	Settings  settings.System
	Ads       ads.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	return &Domain{
		Catalog: catalog.New(&cfg.Catalog, runtime.Logger),
		Users: users.New(
			db,
			runtime.Tokens,
			runtime.Passwords,
			runtime.Logger,
			runtime.Pagination,
		),
		Favorites: favorites.New(db, runtime.Logger, runtime.Pagination),
		Progress:  progress.New(db, runtime.Logger, runtime.Pagination),
		Comments:  comments.New(db, runtime.Logger, runtime.Pagination),
		Posts:     posts.New(db, runtime.Logger, runtime.Pagination),
		Settings:  settings.New(db, runtime.Logger),
		Ads: ads.New(
			db,
			runtime.Storage,
			runtime.Logger,
			runtime.Pagination,
			cfg.API.MaxUploadSizeBytes(),
		),
	}
}
