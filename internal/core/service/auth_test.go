package service_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testGate(t *testing.T) service.AuthGate {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword(
		[]byte("s3cret"), bcrypt.MinCost,
	)
	require.NoError(t, err)

	return service.NewAuthGate([]domain.Credential{
		{Username: "admin", PasswordHash: string(hash)},
	})
}

func TestAuthGate(t *testing.T) {
	t.Run("ValidCredentials", func(t *testing.T) {
		gate := testGate(t)

		s, err := gate.Authenticate(t.Context(), "admin", "s3cret")

		require.NoError(t, err)
		assert.Equal(t, domain.Session{Username: "admin"}, s)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		gate := testGate(t)

		_, err := gate.Authenticate(t.Context(), "admin", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		gate := testGate(t)

		_, err := gate.Authenticate(t.Context(), "ghost", "anything")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("FailuresAreIndistinguishable", func(t *testing.T) {
		gate := testGate(t)

		_, wrongPw := gate.Authenticate(t.Context(), "admin", "wrong")
		_, unknown := gate.Authenticate(t.Context(), "ghost", "anything")

		assert.Equal(t, wrongPw.Error(), unknown.Error())
	})
}

func TestSessionProvider(t *testing.T) {
	t.Run("CreateAndGet", func(t *testing.T) {
		p := service.NewSessionProvider()

		token, s := p.Create("admin")

		require.NotEmpty(t, token)
		assert.Equal(t, domain.Session{Username: "admin"}, s)

		got, ok := p.Get(token)
		require.True(t, ok)
		assert.Equal(t, s, got)
	})

	t.Run("TokensAreUnique", func(t *testing.T) {
		p := service.NewSessionProvider()

		t1, _ := p.Create("admin")
		t2, _ := p.Create("admin")
		assert.NotEqual(t, t1, t2)
	})

	t.Run("Destroy", func(t *testing.T) {
		p := service.NewSessionProvider()

		token, _ := p.Create("admin")
		p.Destroy(token)

		_, ok := p.Get(token)
		assert.False(t, ok)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		p := service.NewSessionProvider()

		_, ok := p.Get("deadbeef")
		assert.False(t, ok)
	})
}
