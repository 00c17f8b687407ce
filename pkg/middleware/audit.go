package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	chartcsv "github.com/app-sre/chartcsv/pkg"
	"github.com/app-sre/chartcsv/pkg/audit"
	"github.com/app-sre/chartcsv/pkg/export"
)

func Audit(cfg *chartcsv.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			now := time.Now()

			var user string

			ctxUser := ctx.Value(ContextKeyUser)
			if ctxUser != nil {
				user = ctxUser.(string)
			} else {
				user = r.Header.Get(forwardedUserHeader)
			}
			if user == "" {
				l := fmt.Sprintf("Request without required header: %s", forwardedUserHeader)
				http.Error(w, l, http.StatusBadRequest)
				return
			}

			id, err := ChartID(r)
			if err != nil {
				cfg.Logger.Debugf("Unable to parse chart identifier: %s", err)
				http.Error(w, "Invalid chart identifier", http.StatusBadRequest)
				return
			}

			var fallback export.Format
			if cfg.ChartEnv != nil {
				fallback = cfg.ChartEnv.Format
			}
			format, err := RequestFormat(r, fallback)
			if err != nil {
				cfg.Logger.Debugf("Unable to parse export format: %s", err)
				http.Error(w, "Unsupported export format", http.StatusBadRequest)
				return
			}

			_ = cfg.LoggerAudit.Write(&audit.ExportData{
				Chart:     id,
				Format:    format.String(),
				User:      user,
				Timestamp: now.Unix(),
			})

			ctx = context.WithValue(ctx, ContextKeyUser, user)
			ctx = context.WithValue(ctx, ContextKeyChart, id)
			ctx = context.WithValue(ctx, ContextKeyFormat, format)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
