package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"swiftship/internal/http/handlers"
	"swiftship/internal/http/router"
	"swiftship/internal/logx"
)

func newTestRouter() http.Handler {
	return router.New(router.Deps{
		Base:      handlers.New(logx.Nop()),
		Bookings:  handlers.NewBookingHandler(logx.Nop(), nil),
		Drivers:   handlers.NewDriverHandler(logx.Nop(), nil),
		JWTSecret: "secret",
		Logger:    logx.Nop(),
	})
}

func TestRouter_Ping(t *testing.T) {
	t.Parallel()

	h := newTestRouter()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_HealthcheckHead(t *testing.T) {
	t.Parallel()

	h := newTestRouter()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodHead, "/healthcheck", nil))

	require.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRouter_UnknownRoute_JSON404(t *testing.T) {
	t.Parallel()

	h := newTestRouter()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	h := newTestRouter()

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodPost, "/bookings"},
		{http.MethodGet, "/bookings"},
		{http.MethodGet, "/driver/tasks"},
		{http.MethodPut, "/driver/availability"},
		{http.MethodGet, "/driver/stats"},
		{http.MethodDelete, "/driver/history"},
	} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		require.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_MetricsExposed(t *testing.T) {
	t.Parallel()

	h := newTestRouter()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
}
