package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shippingerp/handlers"
	"shippingerp/models"
	"shippingerp/routes"
	"shippingerp/services"
	"shippingerp/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET not set in environment")
	}

	be, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer be.conn.Disconnect(context.Background())

	files, err := openFileStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	userSvc := &services.UserService{Repo: be.users, Tokens: tokens, Log: logger}
	postSvc := &services.PostService{Repo: be.posts, Categories: be.categories, Files: files, Log: logger}
	chromePath := cfg.ChromePath

	router := routes.NewRouter(routes.Handlers{
		Auth: &handlers.Auth{Users: userSvc, Log: logger},
		User: &handlers.UserHandler{Service: userSvc, Log: logger},
		Category: &handlers.CategoryHandler{
			Service: &services.CategoryService{Repo: be.categories, Log: logger},
			Log:     logger,
		},
		Post: &handlers.PostHandler{Service: postSvc, Log: logger},
		Reply: &handlers.ReplyHandler{
			Service: &services.ReplyService{Repo: be.replies, Posts: be.posts, Log: logger},
			Log:     logger,
		},
		Progress: &handlers.ProgressHandler{
			Service: &services.ProgressService{Repo: be.progress, RoRo: be.roro, Posts: be.posts, Log: logger},
			Log:     logger,
		},
		RoRo: &handlers.RoRoHandler{
			Service: &services.ProgressRoRoService{Repo: be.roro, Log: logger},
			PDF: func(ctx context.Context, ro *models.ProgressRoRo) ([]byte, error) {
				return utils.GenerateRoRoPDF(ctx, ro, chromePath)
			},
			Log: logger,
		},
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("port", cfg.Port), zap.String("db", cfg.DBType), zap.String("storage", cfg.StorageType))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
