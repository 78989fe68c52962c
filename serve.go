package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eog-rate/internal/handlers"
	"eog-rate/internal/logging"
	"eog-rate/internal/middleware"
	"eog-rate/internal/startup"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
)

func newServeCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the attributes below a directory over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, o.configPath)
		},
	}
	cmd.Flags().String("listen", "", "address to listen on (default 127.0.0.1:8080)")
	cmd.Flags().String("root", "", "directory to serve (default .)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string) error {
	startTime := time.Now()

	cfg, err := startup.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if err := setupRuntime(cfg); err != nil {
		return err
	}
	defer logging.Close()

	startup.LogBanner()
	startup.LogConfig(cfg)

	root, err := startup.ResolveRoot(cfg.Server.Root)
	if err != nil {
		return err
	}

	storeStart := time.Now()
	backend, err := startup.OpenBackend(cmd.Context(), &cfg.Store)
	if err != nil {
		return err
	}
	defer backend.Close()
	startup.LogStoreInit(backend.Name(), time.Since(storeStart))

	h := handlers.New(backend, root)
	router := setupRouter(h)
	startup.LogHTTPRoutes(router, cfg.Server.LogHealthChecks)

	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           wrapHandler(router, backend.Name(), cfg.Server.LogHealthChecks),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		handleShutdown(srv, cfg.Server.ShutdownTimeout)
	}()

	startup.LogServerStarted(startup.ServerStartInfo{
		Listen:          cfg.Server.Listen,
		Root:            root,
		Backend:         backend.Name(),
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done
	return nil
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthCheck).Methods("GET", "HEAD")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")
	r.Handle("/metrics", h.MetricsHandler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/files", h.ListFiles).Methods("GET")
	api.HandleFunc("/files/modify", h.ModifyFiles).Methods("POST")
	api.HandleFunc("/file", h.GetFile).Methods("GET")

	r.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))

	return r
}

// wrapHandler applies the request logging and compression middleware
// around the router.
func wrapHandler(router http.Handler, backend string, logHealthChecks bool) http.Handler {
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = logHealthChecks
	loggingConfig.Backend = backend
	logged := middleware.Logger(loggingConfig)(router)

	return middleware.Compression(middleware.DefaultCompressionConfig())(logged)
}

func handleShutdown(srv *http.Server, timeout time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
