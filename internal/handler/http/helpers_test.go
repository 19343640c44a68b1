package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/state"
	"github.com/utafrali/storefront/internal/wishlist"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// ============================================================================
// Test helpers
// ============================================================================

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fixture struct {
	api      *mockAPI
	sessions *mockSessions
	cart     *mockCarts
	wishlist *wishlist.Container
	router   http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		api:      &mockAPI{},
		sessions: &mockSessions{},
		cart:     &mockCarts{},
		wishlist: wishlist.NewContainer(state.NewStore(state.Initial())),
	}
	f.router = NewRouter(Deps{
		API:      f.api,
		Sessions: f.sessions,
		Cart:     f.cart,
		Wishlist: f.wishlist,
		Health:   health.NewHandler(),
		Logger:   newTestLogger(),
		CORS:     middleware.UICORSConfig(nil, "test"),
	})
	t.Cleanup(func() {
		f.api.AssertExpectations(t)
		f.sessions.AssertExpectations(t)
		f.cart.AssertExpectations(t)
	})
	return f
}

// signIn makes the session container report a signed-in user with role.
func (f *fixture) signIn(role string) *domain.User {
	u := &domain.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: role, StoreID: "s1"}
	f.sessions.On("Current").Return(state.Session{User: u, Token: "t.t.t", IsAuthenticated: true})
	return u
}

func (f *fixture) signOut() {
	f.sessions.On("Current").Return(state.Session{})
}

func (f *fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var r io.Reader = http.NoBody
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// envelope is the decoded response with the data left raw.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

// resource is a rendered view resource with the data left raw.
type resource struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		Retryable bool   `json:"retryable"`
		Retry     string `json:"retry"`
	} `json:"error"`
}

func decodeResource(t *testing.T, rec *httptest.ResponseRecorder) resource {
	t.Helper()
	env := decode(t, rec)
	var res resource
	require.NoError(t, json.Unmarshal(env.Data, &res))
	return res
}
