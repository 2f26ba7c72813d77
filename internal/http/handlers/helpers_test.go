package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"

	"service-courier-tracking/internal/auth"
	"service-courier-tracking/internal/logx"
)

func testLogger() logx.Logger { return logx.Nop() }

// newRequest builds a request as chi and the auth middleware would hand it
// to a handler. userID 0 means anonymous.
func newRequest(method, target, body string, userID int64, params map[string]string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")

	ctx := req.Context()
	if len(params) > 0 {
		routeCtx := chi.NewRouteContext()
		for k, v := range params {
			routeCtx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}
	if userID > 0 {
		ctx = auth.WithUserID(ctx, userID)
	}
	return req.WithContext(ctx)
}
