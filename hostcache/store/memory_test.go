package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryGetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(MemoryConfig{MaxEntries: 8})

	assert.Nil(t, m.Get(ctx, "missing"))

	m.Set(ctx, "widgets", []byte("payload"), time.Minute)
	assert.Equal(t, []byte("payload"), m.Get(ctx, "widgets"))
	assert.Equal(t, 1, m.Size())

	assert.True(t, m.Delete(ctx, "widgets"))
	assert.Nil(t, m.Get(ctx, "widgets"))
	assert.False(t, m.Delete(ctx, "widgets"))
}

func TestMemoryExpiresByTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(MemoryConfig{MaxEntries: 8})
	m.now = func() time.Time { return time.Unix(1000, 0) }

	m.Set(ctx, "widgets", []byte("payload"), time.Second)

	m.now = func() time.Time { return time.Unix(1002, 0) }
	assert.Nil(t, m.Get(ctx, "widgets"))
	assert.Equal(t, 0, m.Size())
}

func TestMemoryEvictsOldestBeyondCapacity(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(MemoryConfig{MaxEntries: 2})

	m.Set(ctx, "a", []byte("1"), time.Minute)
	m.Set(ctx, "b", []byte("2"), time.Minute)
	m.Set(ctx, "c", []byte("3"), time.Minute)

	assert.Equal(t, 2, m.Size())
	assert.Nil(t, m.Get(ctx, "a"))
	assert.Equal(t, []byte("3"), m.Get(ctx, "c"))
}
