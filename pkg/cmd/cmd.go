package cmd

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"go.uber.org/zap"

	chartcsv "github.com/app-sre/chartcsv/pkg"
	"github.com/app-sre/chartcsv/pkg/audit"
	"github.com/app-sre/chartcsv/pkg/env/chart"
	"github.com/app-sre/chartcsv/pkg/fetch"
	"github.com/app-sre/chartcsv/pkg/handlers"
	"github.com/app-sre/chartcsv/pkg/middleware"
	"github.com/app-sre/chartcsv/pkg/table"
	"github.com/app-sre/chartcsv/pkg/version"
)

const (
	port              = 8080
	readTimeout       = 1 * time.Minute
	readHeaderTimeout = 20 * time.Second
)

func Run(logger *zap.SugaredLogger) error {
	production := chartcsv.Production()
	timeout := chartcsv.RequestTimeout()
	logger.Infof("Starting chartcsv version: %s", version.Version())
	logger.Infof("Production: %t, request timeout: %s", production, timeout)

	ce := chart.NewChartEnv()
	if err := ce.Populate(); err != nil {
		return fmt.Errorf("unable to configure chart endpoint: %w", err)
	}
	logger.Infof("Using chart endpoint: %s (default format: %s, index: %t)", ce.Endpoint, ce.Format, ce.Index)

	cfg := &chartcsv.Config{
		ChartEnv:    ce,
		Fetcher:     fetch.NewFetcher(),
		Builder:     table.NewBuilder(logger),
		LoggerAudit: audit.NewLoggerAudit(logger),
		Logger:      logger,
	}

	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           newRouter(cfg, production, timeout),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      timeout + readTimeout,
	}

	logger.Infof("HTTP server starting on port: %d", port)
	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("unable to start HTTP server: %w", err)
	}

	return nil
}

func newRouter(cfg *chartcsv.Config, production bool, timeout time.Duration) http.Handler {
	// Temp workaround for easy to access io.Writer.
	defaultLogOutput := log.Default().Writer()

	healthLogOutput := io.Discard
	if !production {
		healthLogOutput = defaultLogOutput
	}
	logHandler := gorillaHandlers.LoggingHandler

	exportChain := alice.New(
		alice.Constructor(middleware.Recovery(cfg)),
		alice.Constructor(middleware.Audit(cfg)),
		alice.Constructor(middleware.Timeout(timeout)),
	).Then(handlers.Export(cfg))

	r := mux.NewRouter()
	r.Handle("/healthcheck", logHandler(healthLogOutput, handlers.Healthcheck(cfg))).Methods("GET")
	r.Handle("/chart/{id:[0-9]+}/export", logHandler(defaultLogOutput, exportChain)).Methods("GET")

	return r
}
