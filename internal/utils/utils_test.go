package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"recipeshare/internal/apperr"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint
		wantErr bool
	}{
		{"1", 1, false},
		{" 42 ", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"507f1f77bcf86cd799439011", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
}

func TestCacheExpiry(t *testing.T) {
	c, err := NewCache[uint, string](2, time.Minute)
	require.NoError(t, err)

	now := time.Now()
	c.now = func() time.Time { return now }
	c.Set(1, "one")

	v, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "one", v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get(1)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c, err := NewCache[uint, string](2, time.Minute)
	require.NoError(t, err)

	c.Set(1, "one")
	c.Set(2, "two")
	c.Get(1)
	c.Set(3, "three")

	_, ok := c.Get(2)
	assert.False(t, ok)
	_, ok = c.Get(1)
	assert.True(t, ok)

	c.Delete(1)
	_, ok = c.Get(1)
	assert.False(t, ok)
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := RenderMarkdown("**tasty** <script>alert(1)</script>")
	assert.Contains(t, out, "<strong>tasty</strong>")
	assert.NotContains(t, out, "<script>")
}
