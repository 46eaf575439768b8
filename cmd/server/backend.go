package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shippingerp/config"
	"shippingerp/db"
	"shippingerp/db/mongo"
	"shippingerp/db/postgres"
	"shippingerp/repository"
	"shippingerp/storage"
)

// backend is the set of repositories for the configured DB_TYPE.
type backend struct {
	conn       db.DB
	users      repository.UserRepository
	categories repository.CategoryRepository
	posts      repository.PostRepository
	replies    repository.ReplyRepository
	progress   repository.ProgressRepository
	roro       repository.ProgressRoRoRepository
}

func openBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (*backend, error) {
	dbType, err := db.ParseType(cfg.DBType)
	if err != nil {
		return nil, err
	}

	switch dbType {
	case db.Postgres:
		if cfg.MigrationsEnabled {
			if err := db.RunMigrations(cfg.PostgresURL, db.Up, log); err != nil {
				return nil, err
			}
		}
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(ctx); err != nil {
			return nil, err
		}
		log.Info("connected to postgres")
		return &backend{
			conn:       pg,
			users:      repository.NewPostgresUserRepo(pg.Conn),
			categories: repository.NewPostgresCategoryRepo(pg.Conn),
			posts:      repository.NewPostgresPostRepo(pg.Conn),
			replies:    repository.NewPostgresReplyRepo(pg.Conn),
			progress:   repository.NewPostgresProgressRepo(pg.Conn),
			roro:       repository.NewPostgresRoRoRepo(pg.Conn),
		}, nil

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDB)
		if err := mg.Connect(ctx); err != nil {
			return nil, err
		}
		database := mg.Database()
		if err := repository.EnsureIndexes(ctx, database); err != nil {
			_ = mg.Disconnect(ctx)
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		log.Info("connected to mongo", zap.String("database", cfg.MongoDB))
		return &backend{
			conn:       mg,
			users:      repository.NewMongoUserRepo(database),
			categories: repository.NewMongoCategoryRepo(database),
			posts:      repository.NewMongoPostRepo(database),
			replies:    repository.NewMongoReplyRepo(database),
			progress:   repository.NewMongoProgressRepo(database),
			roro:       repository.NewMongoRoRoRepo(database),
		}, nil
	}
	return nil, fmt.Errorf("DB_TYPE %q not supported", cfg.DBType)
}

func openFileStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.FileStore, error) {
	switch cfg.StorageType {
	case "local":
		return storage.NewLocalStore(cfg.UploadDir), nil
	case "r2":
		store, err := storage.NewR2Store(ctx, cfg.R2, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("STORAGE_TYPE %q not supported", cfg.StorageType)
}
