package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	jwt "github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"

	"swiftship/internal/logx"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func authedRequest(t *testing.T, claims jwt.MapClaims) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "http://example/bookings", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, claims))
	return r
}

func TestAuth_ValidToken_SetsActor(t *testing.T) {
	t.Parallel()

	var got Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a, ok := ActorFrom(r.Context())
		require.True(t, ok)
		got = a
		w.WriteHeader(http.StatusOK)
	})

	h := Auth(testSecret, logx.Nop())(next)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, authedRequest(t, jwt.MapClaims{"id": "user-1", "role": RoleCustomer}))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, Actor{ID: "user-1", Role: RoleCustomer}, got)
}

func TestAuth_MissingHeader_Unauthorized(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next must not run")
	})
	h := Auth(testSecret, logx.Nop())(next)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example/bookings", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSecret_Unauthorized(t *testing.T) {
	t.Parallel()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "u", "role": RoleCustomer})
	s, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "http://example/bookings", nil)
	r.Header.Set("Authorization", "Bearer "+s)

	h := Auth(testSecret, logx.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next must not run")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_IncompleteClaims_Unauthorized(t *testing.T) {
	t.Parallel()

	h := Auth(testSecret, logx.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next must not run")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, authedRequest(t, jwt.MapClaims{"id": "user-1"}))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := Auth(testSecret, logx.Nop())(RequireRole(RoleDriver)(next))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, authedRequest(t, jwt.MapClaims{"id": "drv-1", "role": RoleDriver}))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, authedRequest(t, jwt.MapClaims{"id": "user-1", "role": RoleCustomer}))
	require.Equal(t, http.StatusForbidden, w.Code)
}
