package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etherlabsio/healthcheck/v2"

	chartcsv "github.com/app-sre/chartcsv/pkg"
)

func Healthcheck(cfg *chartcsv.Config) http.Handler {
	return healthcheck.Handler(
		healthcheck.WithTimeout(5*time.Second),
		healthcheck.WithChecker(
			"chart", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if _, err := cfg.Fetcher.Fetch(ctx, cfg.ChartEnv.HealthURL(), nil); err != nil {
						cfg.Logger.Errorf("Unable to connect to the chart endpoint: %s", err)
						return errors.New("Unable to connect to the chart endpoint")
					}
					return nil
				},
			),
		),
	)
}
