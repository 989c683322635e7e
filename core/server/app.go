package server

import (
	"context"
	"errors"
	"time"

	"game-scheduler/core/cache"
	"game-scheduler/core/config"
	"game-scheduler/core/database"
	"game-scheduler/core/logger"
	"game-scheduler/core/queue"
	"game-scheduler/core/storage"
	"game-scheduler/modules/export"
	exportservice "game-scheduler/modules/export/service"
)

// App holds the shared connections every command needs.
type App struct {
	Config *config.Config
	DB     *database.Database
	Cache  cache.Cache
	Queue  *queue.Client

	uploader storage.Uploader
	export   *exportservice.ExportService
}

// Bootstrap opens the database and, when configured, Redis, the task queue
// client and object storage.
func Bootstrap(cfg *config.Config) (*App, error) {
	logger.Init(cfg.Server.LogLevel, cfg.IsDevelopment())

	db, err := database.InitDB(database.DatabaseConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: db}

	if cfg.Redis.Enabled {
		c, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Cache = c
		app.Queue = queue.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	} else {
		logger.Warn("Redis disabled: expansion locking and exports are off")
	}

	if cfg.Storage.Bucket != "" {
		s3, err := storage.NewS3Storage(storage.S3Config{
			Bucket:          cfg.Storage.Bucket,
			Region:          cfg.Storage.Region,
			Endpoint:        cfg.Storage.Endpoint,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			UsePathStyle:    cfg.Storage.UsePathStyle,
		})
		if err != nil {
			app.Close()
			return nil, err
		}
		app.uploader = s3
	}

	var enqueuer queue.Enqueuer
	if app.Queue != nil {
		enqueuer = app.Queue
	}
	app.export = export.NewService(db, app.uploader, enqueuer)

	return app, nil
}

// NewWorker returns an export worker, or nil when Redis is disabled.
func (a *App) NewWorker() *queue.Worker {
	if !a.Config.Redis.Enabled {
		return nil
	}
	w := queue.NewWorker(a.Config.Redis.Addr, a.Config.Redis.Password, a.Config.Redis.DB, a.Config.Queue.Concurrency)
	export.RegisterTasks(w, a.export)
	return w
}

// Ping checks the database and, if present, Redis.
func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var errs []error
	if err := a.DB.SQLx().PingContext(ctx); err != nil {
		errs = append(errs, err)
	}
	if a.Cache != nil {
		if err := a.Cache.Ping(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) Close() {
	if a.Queue != nil {
		if err := a.Queue.Close(); err != nil {
			logger.Warn("App:Close queue", "error", err)
		}
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			logger.Warn("App:Close cache", "error", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			logger.Warn("App:Close database", "error", err)
		}
	}
}
