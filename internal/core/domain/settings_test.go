package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultClientSettings(t *testing.T) {
	s := DefaultClientSettings()

	assert.Equal(t, DefaultBackendURL, s.BackendURL)
	assert.Equal(t, DefaultBackendTimeout, s.Timeout)
	assert.Equal(t, 3, s.TopK)
	assert.False(t, s.Authenticated())
	assert.NoError(t, s.Validate())
}

func TestClientSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ClientSettings)
	}{
		{"empty url", func(s *ClientSettings) { s.BackendURL = "" }},
		{"top_k zero", func(s *ClientSettings) { s.TopK = 0 }},
		{"top_k too high", func(s *ClientSettings) { s.TopK = 11 }},
		{"negative timeout", func(s *ClientSettings) { s.Timeout = -1 }},
		{"negative rate", func(s *ClientSettings) { s.RateLimit = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultClientSettings()
			tt.modify(&s)
			err := s.Validate()
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestClientSettings_Authenticated(t *testing.T) {
	s := DefaultClientSettings()
	s.Token = "abc"
	assert.True(t, s.Authenticated())
}

func TestSessionStats_AvgResponseTimeRounded(t *testing.T) {
	assert.Equal(t, int64(300), SessionStats{AvgResponseTimeMs: 300.4}.AvgResponseTimeRounded())
	assert.Equal(t, int64(301), SessionStats{AvgResponseTimeMs: 300.5}.AvgResponseTimeRounded())
}

func TestClientSettings_GetSet(t *testing.T) {
	s := DefaultClientSettings()

	require.NoError(t, s.Set(KeyBackendURL, "http://rag.internal:9000/api/"))
	require.NoError(t, s.Set(KeyBackendTimeout, "30"))
	require.NoError(t, s.Set(KeyRateLimit, "2.5"))
	require.NoError(t, s.Set(KeyTopK, "5"))

	assert.Equal(t, "http://rag.internal:9000/api", s.BackendURL)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.InDelta(t, 2.5, s.RateLimit, 0.0001)
	assert.Equal(t, 5, s.TopK)

	v, err := s.Get(KeyBackendTimeout)
	require.NoError(t, err)
	assert.Equal(t, "30", v)

	v, err = s.Get(KeyRateLimit)
	require.NoError(t, err)
	assert.Equal(t, "2.5", v)
}

func TestClientSettings_SetRejectsBadValues(t *testing.T) {
	s := DefaultClientSettings()

	assert.ErrorIs(t, s.Set(KeyTopK, "0"), ErrInvalidInput)
	assert.ErrorIs(t, s.Set(KeyTopK, "eleven"), ErrInvalidInput)
	assert.ErrorIs(t, s.Set(KeyBackendTimeout, "-1"), ErrInvalidInput)
	assert.ErrorIs(t, s.Set(KeyRateLimit, "fast"), ErrInvalidInput)
	assert.ErrorIs(t, s.Set("backend.colour", "blue"), ErrInvalidInput)

	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, DefaultTopK, s.TopK)
}
