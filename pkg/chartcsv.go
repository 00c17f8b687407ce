package chartcsv

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/app-sre/chartcsv/pkg/audit"
	"github.com/app-sre/chartcsv/pkg/env/chart"
	"github.com/app-sre/chartcsv/pkg/fetch"
	"github.com/app-sre/chartcsv/pkg/table"
)

const defaultRequestTimeout = 2 * time.Minute

type Config struct {
	ChartEnv    *chart.Env
	Fetcher     *fetch.Fetcher
	Builder     *table.Builder
	LoggerAudit *audit.LoggerAudit
	Logger      *zap.SugaredLogger
}

func Production() bool {
	return os.Getenv("ENVIRONMENT") == "production"
}

// RequestTimeout returns the per-request timeout, falling back to the
// default when REQUEST_TIMEOUT is unset or invalid.
func RequestTimeout() time.Duration {
	s := os.Getenv("REQUEST_TIMEOUT")
	if s == "" {
		return defaultRequestTimeout
	}

	d, err := parseDuration(s)
	if err != nil || d == 0 {
		return defaultRequestTimeout
	}
	return d
}

// A value without a unit is taken as seconds.
func parseDuration(s string) (time.Duration, error) {
	var (
		d   time.Duration
		err error
	)

	if n, convErr := strconv.Atoi(s); convErr == nil {
		d = time.Duration(n) * time.Second
	} else {
		d, err = time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("unable to parse duration: %w", err)
		}
	}

	if d < 0 {
		d = -d
	}
	return d, nil
}
