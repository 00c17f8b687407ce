package cmd

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/app-sre/chartcsv/internal/test"
	chartcsv "github.com/app-sre/chartcsv/pkg"
	"github.com/app-sre/chartcsv/pkg/audit"
	"github.com/app-sre/chartcsv/pkg/env/chart"
	"github.com/app-sre/chartcsv/pkg/export"
	"github.com/app-sre/chartcsv/pkg/fetch"
	"github.com/app-sre/chartcsv/pkg/table"
)

func TestRouter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		method      string
		target      string
		headers     func(*http.Request)
		code        int
		body        string
		audit       bool
	}{
		{
			"export of a chart",
			http.MethodGet,
			"/chart/42/export?format=csv",
			func(r *http.Request) {
				r.Header.Set("X-Forwarded-User", "test")
			},
			200,
			"state,sum\n'-cmd,-1\n",
			true,
		},
		{
			"export without forwarded user",
			http.MethodGet,
			"/chart/42/export",
			func(r *http.Request) {
				// No-op.
			},
			400,
			`Request without required header: X-Forwarded-User`,
			false,
		},
		{
			"export of a chart with non-numeric identifier",
			http.MethodGet,
			"/chart/test/export",
			func(r *http.Request) {
				r.Header.Set("X-Forwarded-User", "test")
			},
			404,
			``,
			false,
		},
		{
			"export using unsupported method",
			http.MethodPost,
			"/chart/42/export",
			func(r *http.Request) {
				r.Header.Set("X-Forwarded-User", "test")
			},
			405,
			``,
			false,
		},
		{
			"healthcheck",
			http.MethodGet,
			"/healthcheck",
			func(r *http.Request) {
				// No-op.
			},
			200,
			`{"status":"OK"}`,
			false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			var body, output bytes.Buffer

			s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/health" {
					_, _ = io.WriteString(w, "OK")
					return
				}
				fmt.Fprint(w, test.ChartData(`[{"state":"-cmd","sum":-1}]`, `["state","sum"]`, `[0]`, `[1,0]`))
			}))
			defer s.Close()

			logger := test.DummyLogger(&output).Sugar()

			cfg := &chartcsv.Config{
				ChartEnv:    &chart.Env{Endpoint: s.URL, Format: export.CSV},
				Fetcher:     fetch.NewFetcher(),
				Builder:     table.NewBuilder(logger),
				LoggerAudit: audit.NewLoggerAudit(logger),
				Logger:      logger,
			}

			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, tc.target, &bytes.Buffer{})
			tc.headers(r)

			newRouter(cfg, true, 5*time.Second).ServeHTTP(w, r)

			actual := w.Result()
			defer func() { _ = actual.Body.Close() }()

			_, _ = io.Copy(&body, actual.Body)

			assert.Equal(t, tc.code, actual.StatusCode)
			assert.Contains(t, body.String(), tc.body)
			assert.Equal(t, tc.audit, strings.Contains(output.String(), "AUDIT"))
		})
	}
}
