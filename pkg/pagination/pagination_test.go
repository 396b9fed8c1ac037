package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-3))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+50))
	assert.Equal(t, 10, NormalizeLimit(10))
}

func TestCursorRoundTrip(t *testing.T) {
	want := Cursor{
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 45, 123456789, time.UTC),
		ID:        uuid.New(),
	}

	got, err := ParseCursor(EncodeCursor(want))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.CreatedAt.Equal(want.CreatedAt))
	assert.Equal(t, want.ID, got.ID)
}

func TestParseCursorEmpty(t *testing.T) {
	got, err := ParseCursor("  ")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseCursorGarbage(t *testing.T) {
	_, err := ParseCursor("not-base64!!")
	assert.Error(t, err)
}
