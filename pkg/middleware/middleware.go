package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/app-sre/chartcsv/pkg/export"
)

type ctxKey string

const (
	ContextKeyUser   ctxKey = "user"
	ContextKeyChart  ctxKey = "chart"
	ContextKeyFormat ctxKey = "format"
)

const (
	chartVar            = "id"
	formatParameter     = "format"
	forwardedUserHeader = "X-Forwarded-User"
)

type Middleware func(http.Handler) http.Handler

// ChartID returns the chart identifier from the route, which must be a
// positive integer.
func ChartID(r *http.Request) (int, error) {
	s := mux.Vars(r)[chartVar]
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid chart identifier: %q", s)
	}
	return id, nil
}

// RequestFormat returns the format selected by the query string, or fallback
// when none was given.
func RequestFormat(r *http.Request, fallback export.Format) (export.Format, error) {
	s := r.URL.Query().Get(formatParameter)
	if s == "" {
		s = string(fallback)
	}
	return export.ParseFormat(s)
}
