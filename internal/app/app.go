package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpapp "yougallery/internal/app/http"
	"yougallery/internal/config"
	"yougallery/internal/lib/logger/sl"
	"yougallery/internal/repository"
	"yougallery/internal/services/access"
	"yougallery/internal/services/auth"
	contactservice "yougallery/internal/services/contact_service"
	favoriteservice "yougallery/internal/services/favorite_service"
	galleryservice "yougallery/internal/services/gallery_service"
	photoservice "yougallery/internal/services/photo_service"
	"yougallery/internal/services/purge"
	"yougallery/internal/services/readmodel"
	sceneservice "yougallery/internal/services/scene_service"
	userservice "yougallery/internal/services/user_service"
	"yougallery/internal/storage/objectstore"
	"yougallery/internal/storage/postgresql"
	redisapp "yougallery/internal/storage/redis"
	httprouters "yougallery/internal/transport/http"
)

const (
	bootstrapTimeout = 30 * time.Second
	driverLocal      = "local"
)

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	Purger     *purge.Purger
	storage    *postgresql.Storage
	redis      *redisapp.Client
}

func New(log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancel()

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := storage.Migrate(ctx); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Без Redis журнал удалений не ведётся, остальное работает.
	rdb, err := redisapp.Connect(ctx, cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	if err != nil {
		log.Warn("redis unavailable, object deletion ledger disabled", sl.Err(err))
		rdb = nil
	}

	store, err := newObjectStore(log, cfg)
	if err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := store.EnsureBucket(ctx); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repo := repository.New(storage.Pool(), rdb)

	engine := access.New(log, repo.Gallery, repo.Scene, repo.Photo, cfg.PasswordGate.Enforce)
	builder := readmodel.New(repo.Favorite, store)
	purger := purge.New(log, repo.Orphan, store)

	authService := auth.New(log, repo.User, repo.User, cfg.TokenSecret, cfg.TokenTTL)

	routers := httprouters.NewRouter(log, httprouters.Services{
		Auth:     authService,
		Gallery:  galleryservice.NewGalleryService(log, repo.Gallery, repo.Scene, repo.Photo, repo.Favorite, engine, builder, purger),
		Scene:    sceneservice.NewSceneService(log, repo.Scene, repo.Photo, engine, builder, purger),
		Photo:    photoservice.NewPhotoService(log, repo.Photo, repo.Gallery, store, engine, builder, purger),
		Favorite: favoriteservice.NewFavoriteService(log, repo.Favorite, repo.Photo, builder),
		User:     userservice.NewUserService(log, repo.User, repo.Gallery, purger),
		Contact:  contactservice.NewContactService(log, repo.Contact),
		Health:   storage,
	})

	opts := httpapp.Options{
		Host:           cfg.HTTP.Host,
		Port:           cfg.HTTP.Port,
		BodyLimit:      cfg.HTTP.BodyLimit,
		AllowedOrigins: cfg.AllowedOrigins(),
		SessionKey:     cfg.SessionKey(),
	}
	if cfg.ObjectStorage.Driver == driverLocal {
		opts.StaticDir = cfg.ObjectStorage.BaseDir
	}

	return &App{
		log:        log,
		HTTPServer: httpapp.New(log, opts, routers, authService),
		Purger:     purger,
		storage:    storage,
		redis:      rdb,
	}, nil
}

// Reconcile дочищает объекты, оставшиеся в журнале после прошлых сбоев.
func (a *App) Reconcile(ctx context.Context) {
	n := a.Purger.Sweep(ctx)
	a.log.Info("startup sweep finished", slog.Int("removed", n))
}

func (a *App) Stop() {
	const op = "app.Stop"

	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("failed to stop http server", slog.String("op", op), sl.Err(err))
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("failed to close redis", slog.String("op", op), sl.Err(err))
		}
	}

	a.storage.Stop()
}

func newObjectStore(log *slog.Logger, cfg *config.Config) (objectstore.Store, error) {
	switch cfg.ObjectStorage.Driver {
	case driverLocal:
		return objectstore.NewLocal(log, cfg.ObjectStorage.BaseDir, cfg.PublicBaseURL), nil
	case "minio", "":
		return objectstore.NewMinio(log, objectstore.MinioConfig{
			Endpoint:  cfg.ObjectStorage.Endpoint,
			AccessKey: cfg.ObjectStorage.AccessKey,
			SecretKey: cfg.ObjectStorage.SecretKey,
			Bucket:    cfg.ObjectStorage.Bucket,
			Secure:    cfg.ObjectStorage.Secure,
		}, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.ObjectStorage.Driver)
	}
}
