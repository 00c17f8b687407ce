package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	chartcsv "github.com/app-sre/chartcsv/pkg"
)

// Recovery turns a panic in the export chain into a 500 and logs the chart
// request it happened on. It runs ahead of Audit, so it reads the route and
// query itself.
func Recovery(cfg *chartcsv.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if ok && errors.Is(err, http.ErrAbortHandler) {
						panic(err)
					}

					cfg.Logger.Errorw("Recovered from an error",
						"Error", fmt.Sprint(rec),
						"Chart", mux.Vars(r)[chartVar],
						"Format", r.URL.Query().Get(formatParameter),
						"User", r.Header.Get(forwardedUserHeader),
					)
					http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
				}
			}()
			h.ServeHTTP(w, r)
		})
	}
}
