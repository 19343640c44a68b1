package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/state"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	creds := domain.Credentials{Email: "ada@example.com", Password: "secret1"}
	f.sessions.On("Authenticate", mock.Anything, creds).
		Return(domain.User{ID: "u1", Email: "ada@example.com", Role: domain.RoleCustomer}, nil)

	rec := f.do(http.MethodPost, "/api/v1/session/login", creds)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	var user domain.User
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &user))
	assert.Equal(t, "u1", user.ID)
}

func TestLogin_ValidationFails(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/session/login", map[string]string{"email": "nope"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "email")
	assert.Contains(t, env.Error.Fields, "password")
	f.sessions.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)
	f.sessions.On("Authenticate", mock.Anything, mock.Anything).
		Return(domain.User{}, apperrors.Unauthorized(apperrors.MsgUnauthorized))

	rec := f.do(http.MethodPost, "/api/v1/session/login",
		domain.Credentials{Email: "ada@example.com", Password: "wrong-pw"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, apperrors.MsgUnauthorized, env.Error.Message)
}

func TestRegister_Created(t *testing.T) {
	f := newFixture(t)
	in := domain.Registration{Name: "Ada", Email: "ada@example.com", Password: "secret1", Role: domain.RoleSeller}
	f.sessions.On("Register", mock.Anything, in).Return(domain.User{ID: "u2", Role: domain.RoleSeller}, nil)

	rec := f.do(http.MethodPost, "/api/v1/session/register", in)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/session/register",
		domain.Registration{Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: domain.RoleAdmin})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_NoContent(t *testing.T) {
	f := newFixture(t)
	f.sessions.On("Logout", mock.Anything).Return(nil)

	rec := f.do(http.MethodPost, "/api/v1/session/logout", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMe_LoggedOut(t *testing.T) {
	f := newFixture(t)
	f.signOut()

	rec := f.do(http.MethodGet, "/api/v1/session", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var s state.Session
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &s))
	assert.False(t, s.IsAuthenticated)
	assert.Nil(t, s.User)
}

func TestMe_NeverLeaksToken(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)

	rec := f.do(http.MethodGet, "/api/v1/session", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "t.t.t")
	assert.Contains(t, rec.Body.String(), `"isAuthenticated":true`)
}

func TestRestore(t *testing.T) {
	f := newFixture(t)
	u := &domain.User{ID: "u1", Role: domain.RoleCustomer}
	f.sessions.On("Restore", mock.Anything).
		Return(state.Session{User: u, Token: "t.t.t", IsAuthenticated: true}, nil)

	rec := f.do(http.MethodPost, "/api/v1/session/restore", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var s state.Session
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &s))
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, "u1", s.User.ID)
}
