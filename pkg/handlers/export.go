package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	chartcsv "github.com/app-sre/chartcsv/pkg"
	"github.com/app-sre/chartcsv/pkg/export"
	"github.com/app-sre/chartcsv/pkg/fetch"
	"github.com/app-sre/chartcsv/pkg/middleware"
)

func Export(cfg *chartcsv.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := ctx.Value(middleware.ContextKeyChart).(int)
		if !ok {
			var err error
			if id, err = middleware.ChartID(r); err != nil {
				http.Error(w, "Invalid chart identifier", http.StatusBadRequest)
				return
			}
		}

		format, ok := ctx.Value(middleware.ContextKeyFormat).(export.Format)
		if !ok {
			var err error
			if format, err = middleware.RequestFormat(r, cfg.ChartEnv.Format); err != nil {
				http.Error(w, "Unsupported export format", http.StatusBadRequest)
				return
			}
		}

		cookies := make(map[string]string)
		for _, c := range r.Cookies() {
			cookies[c.Name] = c.Value
		}

		body, err := cfg.Fetcher.Fetch(ctx, cfg.ChartEnv.DataURL(id), cookies)
		if err != nil {
			var te *fetch.TransportError
			if errors.As(err, &te) {
				cfg.Logger.Errorf("Unable to fetch chart %d: %s", id, te)
			} else {
				cfg.Logger.Errorf("Unable to reach chart endpoint for chart %d: %s", id, err)
			}
			http.Error(w, "Unable to fetch chart data", http.StatusBadGateway)
			return
		}
		if body == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		t, err := cfg.Builder.Build(body)
		if err != nil {
			cfg.Logger.Errorf("Unable to build table for chart %d: %s", id, err)
			http.Error(w, "Unable to parse chart data", http.StatusBadGateway)
			return
		}
		if t == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		var b bytes.Buffer
		if err := export.Write(&b, format, t, cfg.ChartEnv.ExportOptions(format)...); err != nil {
			cfg.Logger.Errorf("Unable to export chart %d: %s", id, err)
			http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		if format != export.Table {
			filename := fmt.Sprintf("chart-%d.%s", id, format.Extension())
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		}
		_, _ = w.Write(b.Bytes())
	}
}
