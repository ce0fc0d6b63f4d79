package httphandler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	mux      *http.ServeMux
	sessions *service.SessionProvider
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword(
		[]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)

	gate := service.NewAuthGate([]domain.Credential{
		{Username: "admin", PasswordHash: string(hash)},
	})
	sessions := service.NewSessionProvider()

	mux := http.NewServeMux()
	httphandler.RegisterAuth(mux, gate, sessions)
	return authFixture{mux: mux, sessions: sessions}
}

func (f authFixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, req)
	return w
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("ValidCredentials", func(t *testing.T) {
		f := newAuthFixture(t)

		w := f.do(httptest.NewRequest(
			"POST", "/v1/auth/login",
			formBody(map[string]any{
				"username": "admin", "password": "letmein",
			})))

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody[httphandler.LoginResponse](t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, "admin", resp.User.Username)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, httphandler.SessionCookie, c.Name)
		assert.NotEmpty(t, c.Value)
		assert.True(t, c.HttpOnly)

		_, ok := f.sessions.Get(c.Value)
		assert.True(t, ok)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		f := newAuthFixture(t)

		w := f.do(httptest.NewRequest(
			"POST", "/v1/auth/login",
			formBody(map[string]any{
				"username": "admin", "password": "guess",
			})))

		require.Equal(t, http.StatusUnauthorized, w.Code)
		resp := decodeBody[httphandler.ErrorResponse](t, w)
		assert.Equal(t, "Invalid credentials", resp.Error)
	})

	t.Run("UnknownUserAnswersIdentically", func(t *testing.T) {
		f := newAuthFixture(t)

		wrong := f.do(httptest.NewRequest(
			"POST", "/v1/auth/login",
			formBody(map[string]any{
				"username": "admin", "password": "guess",
			})))
		unknown := f.do(httptest.NewRequest(
			"POST", "/v1/auth/login",
			formBody(map[string]any{
				"username": "ghost", "password": "guess",
			})))

		assert.Equal(t, wrong.Code, unknown.Code)
		assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	})

	t.Run("MalformedBody", func(t *testing.T) {
		f := newAuthFixture(t)

		req := httptest.NewRequest(
			"POST", "/v1/auth/login", http.NoBody)

		w := f.do(req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogoutEndpoint(t *testing.T) {
	t.Run("DestroysSession", func(t *testing.T) {
		f := newAuthFixture(t)
		token, _ := f.sessions.Create("admin")

		req := httptest.NewRequest("POST", "/v1/auth/logout", nil)
		req.AddCookie(&http.Cookie{
			Name: httphandler.SessionCookie, Value: token,
		})
		w := f.do(req)

		require.Equal(t, http.StatusOK, w.Code)
		_, ok := f.sessions.Get(token)
		assert.False(t, ok)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge)
	})

	t.Run("NoSession", func(t *testing.T) {
		f := newAuthFixture(t)

		w := f.do(httptest.NewRequest("POST", "/v1/auth/logout", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
