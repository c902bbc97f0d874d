package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/mash-ua/pkg/address"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

func TestFindAdd(t *testing.T) {
	c := NewUnbounded()
	a := address.MustParse("i=85@urn:srv /2:Boiler")
	resolved := ua.MustParseExpandedNodeID("ns=2;i=1001@urn:srv")

	_, ok := c.Find(a)
	assert.False(t, ok)

	c.Add(a, resolved, true)

	got, ok := c.Find(a)
	require.True(t, ok)
	assert.Equal(t, resolved, got)

	e, ok := c.Entry(a)
	require.True(t, ok)
	assert.True(t, e.PathDerived)

	// Lookup is structural: an equal Address built separately hits.
	same := address.MustParse("i=85@urn:srv /2:Boiler")
	_, ok = c.Find(same)
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestAddReplaces(t *testing.T) {
	c := NewUnbounded()
	a := address.MustParse("ns=2;i=5@urn:srv")

	c.Add(a, ua.MustParseExpandedNodeID("ns=2;i=5@urn:srv"), false)
	c.Add(a, ua.MustParseExpandedNodeID("ns=2;i=6@urn:srv"), true)

	e, ok := c.Entry(a)
	require.True(t, ok)
	assert.Equal(t, "ns=2;i=6@urn:srv", e.Resolved.String())
	assert.True(t, e.PathDerived)
	assert.Equal(t, 1, c.Len())
}

func TestBoundedEvictsLeastRecentlyUsed(t *testing.T) {
	c, err := New(Config{MaxEntries: 2})
	require.NoError(t, err)

	a1 := address.MustParse("ns=2;i=1@urn:srv")
	a2 := address.MustParse("ns=2;i=2@urn:srv")
	a3 := address.MustParse("ns=2;i=3@urn:srv")

	c.Add(a1, a1.ExpandedNodeID(), false)
	c.Add(a2, a2.ExpandedNodeID(), false)

	// Touch a1 so a2 becomes the eviction candidate.
	_, ok := c.Find(a1)
	require.True(t, ok)

	c.Add(a3, a3.ExpandedNodeID(), false)

	assert.Equal(t, 2, c.Len())
	_, ok = c.Find(a2)
	assert.False(t, ok, "a2 should have been evicted")
	_, ok = c.Find(a1)
	assert.True(t, ok)
	_, ok = c.Find(a3)
	assert.True(t, ok)
}

func TestPurge(t *testing.T) {
	for _, cfg := range []Config{{}, {MaxEntries: 8}} {
		c, err := New(cfg)
		require.NoError(t, err)
		a := address.MustParse("ns=2;i=1@urn:srv")
		c.Add(a, a.ExpandedNodeID(), false)
		c.Purge()
		assert.Equal(t, 0, c.Len())
	}
}

func TestInvalidConfig(t *testing.T) {
	_, err := New(Config{MaxEntries: -1})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConcurrentAccess(t *testing.T) {
	c := NewUnbounded()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				a := address.MustParse(fmt.Sprintf("ns=2;i=%d@urn:srv", i))
				c.Add(a, a.ExpandedNodeID(), false)
				_, _ = c.Find(a)
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, 100, c.Len())
}
