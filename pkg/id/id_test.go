package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsValidAndSorted(t *testing.T) {
	prev := ""
	for i := 0; i < 100; i++ {
		s := New()
		require.Len(t, s, 26)
		assert.True(t, Valid(s))
		assert.Greater(t, s, prev)
		prev = s
	}
}

func TestAtRoundTripsTime(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 123_000_000, time.UTC)

	got, err := Time(At(ts))
	require.NoError(t, err)
	assert.True(t, got.Equal(ts), "got %s", got)
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"01ARZ3NDEKTSV4RRFFQ69G5FAV", true},
		{"", false},
		{"T1", false},
		{"01ARZ3NDEKTSV4RRFFQ69G5FA!", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.in))
		})
	}

	_, err := Time("not-a-ulid")
	assert.Error(t, err)
}
