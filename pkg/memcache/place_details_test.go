package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDetailsCache(t *testing.T) {
	c := NewDetailsCache[string](time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", "v")
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	c.Delete("k")
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestDetailsCacheExpiry(t *testing.T) {
	c := NewDetailsCache[int](10 * time.Millisecond)
	c.Set("k", 42)

	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}
