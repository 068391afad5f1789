package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/madhava-poojari/mentorship-api/internal/api/v1"
	"github.com/madhava-poojari/mentorship-api/internal/auth"
	"github.com/madhava-poojari/mentorship-api/internal/config"
	"github.com/madhava-poojari/mentorship-api/internal/events"
	"github.com/madhava-poojari/mentorship-api/internal/jobs"
	"github.com/madhava-poojari/mentorship-api/internal/server"
	"github.com/madhava-poojari/mentorship-api/internal/service"
	"github.com/madhava-poojari/mentorship-api/internal/utils"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(build BuildInfo) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), build, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Apply schema migrations before serving")
	return cmd
}

func runServe(ctx context.Context, build BuildInfo, migrate bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()
	cfg, log, st := rt.cfg, rt.log, rt.store

	if migrate {
		if err := st.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	files := newFileStore(cfg)
	var pub events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		pub = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.Info("publishing enrollment events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	defer func() {
		if err := pub.Close(); err != nil {
			log.Error("close event publisher", "error", err)
		}
	}()

	enrollments := service.NewEnrollmentService(st, pub, log)
	api := v1.NewAPI(v1.Deps{
		Config:      cfg,
		Log:         log,
		Programs:    service.NewProgramService(st, log),
		Forms:       service.NewFormService(st, log),
		Uploads:     service.NewUploadService(files, cfg.UploadMaxBytes, cfg.UploadBaseURL, log),
		Enrollments: enrollments,
		Users:       service.NewUserService(st, log),
		Superadmin:  service.NewSuperadminService(st, log),
		Tokens:      st,
		Google:      auth.NewGoogleVerifier(cfg),
		DB:          st,
	})
	srv := server.NewServer(cfg, log, api, files).NewHTTPServer()

	sched, err := jobs.NewScheduler(cfg.TokenPurgeSchedule, st, log)
	if err != nil {
		return err
	}
	sched.Start()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", cfg.BindAddr, "version", build.Version, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down server")
	case err := <-errCh:
		if err != nil {
			sched.Stop(context.Background())
			return fmt.Errorf("listen: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	sched.Stop(shutdownCtx)
	log.Info("server exited")
	return nil
}

func newFileStore(cfg *config.Config) utils.FileStore {
	if cfg.StorageBackend == config.StorageR2 {
		return utils.NewR2Storage(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, cfg.R2Endpoint, cfg.R2BucketName)
	}
	return utils.NewFileStorage(cfg.UploadDir)
}
