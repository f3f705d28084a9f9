package jwtutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundTrip(t *testing.T) {
	s := &Signer{Secret: []byte("secret"), Issuer: "test", ExpMin: 5}
	token, err := s.Sign(42, "alice", "alice@example.com")
	require.NoError(t, err)

	claims, err := s.Parse(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "test", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	s := &Signer{Secret: []byte("secret"), Issuer: "test", ExpMin: 5}
	token, err := s.Sign(42, "alice", "alice@example.com")
	require.NoError(t, err)

	other := &Signer{Secret: []byte("different"), Issuer: "test", ExpMin: 5}
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	s := &Signer{Secret: []byte("secret"), Issuer: "test", ExpMin: -5}
	token, err := s.Sign(42, "alice", "alice@example.com")
	require.NoError(t, err)

	_, err = s.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	s := &Signer{Secret: []byte("secret"), Issuer: "test", ExpMin: 5}
	_, err := s.Parse("not.a.token")
	assert.Error(t, err)
}
