package resolve_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/mash-ua/pkg/address"
	"github.com/mash-protocol/mash-ua/pkg/cache"
	"github.com/mash-protocol/mash-ua/pkg/log"
	"github.com/mash-protocol/mash-ua/pkg/resolve"
	"github.com/mash-protocol/mash-ua/pkg/resolve/mocks"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// table answers browse paths by their text form. Unknown paths yield
// BadNoMatch.
type table map[string]ua.BrowsePathResult

func (tb table) answer(calls *[][]ua.BrowsePath) func(context.Context, []ua.BrowsePath) ([]ua.BrowsePathResult, error) {
	return func(_ context.Context, paths []ua.BrowsePath) ([]ua.BrowsePathResult, error) {
		*calls = append(*calls, paths)
		out := make([]ua.BrowsePathResult, len(paths))
		for i, p := range paths {
			r, ok := tb[p.String()]
			if !ok {
				r = ua.BrowsePathResult{StatusCode: ua.StatusBadNoMatch}
			}
			out[i] = r
		}
		return out, nil
	}
}

func found(node string) ua.BrowsePathResult {
	return ua.BrowsePathResult{
		StatusCode: ua.StatusGood,
		Targets: []ua.BrowsePathTarget{{
			TargetID:           ua.MustParseExpandedNodeID(node),
			RemainingPathIndex: ua.RemainingPathIndexFull,
		}},
	}
}

func crossed(node string, remaining uint32) ua.BrowsePathResult {
	return ua.BrowsePathResult{
		StatusCode: ua.StatusGood,
		Targets: []ua.BrowsePathTarget{{
			TargetID:           ua.MustParseExpandedNodeID(node),
			RemainingPathIndex: remaining,
		}},
	}
}

func newResolver(t *testing.T, tr resolve.Translator, opts ...func(*resolve.Config)) *resolve.Resolver {
	t.Helper()
	cfg := resolve.DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	r, err := resolve.New(tr, cache.NewUnbounded(), cfg)
	require.NoError(t, err)
	return r
}

func addrs(texts ...string) []address.Address {
	out := make([]address.Address, len(texts))
	for i, s := range texts {
		out[i] = address.MustParse(s)
	}
	return out
}

// captureLogger records protocol events.
type captureLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (c *captureLogger) Log(e log.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func TestResolveAbsoluteAndRelativeThenCached(t *testing.T) {
	var calls [][]ua.BrowsePath
	tr := mocks.NewMockTranslator(t)
	tr.EXPECT().TranslateBrowsePaths(mock.Anything, mock.Anything).
		RunAndReturn(table{
			"ns=2;i=5@urn:srv <Organizes>2:Temperature": found("ns=2;i=7"),
		}.answer(&calls)).Once()

	r := newResolver(t, tr)
	batch := addrs("ns=2;i=5@urn:srv", "ns=2;i=5@urn:srv <Organizes>2:Temperature")

	res, err := r.Resolve(context.Background(), batch)
	require.NoError(t, err)
	require.Equal(t, 2, res.Len())
	assert.True(t, res.AllGood())
	assert.Equal(t, "ns=2;i=5@urn:srv", res.Nodes[0].String())
	// The target carries no server, so it inherits the start's.
	assert.Equal(t, "ns=2;i=7@urn:srv", res.Nodes[1].String())

	require.Len(t, calls, 1)
	assert.Len(t, calls[0], 1)

	e, ok := r.Cache().Entry(batch[0])
	require.True(t, ok)
	assert.False(t, e.PathDerived)
	e, ok = r.Cache().Entry(batch[1])
	require.True(t, ok)
	assert.True(t, e.PathDerived)

	// Second call is answered from the cache. Once() fails the test on a
	// further translator call.
	again, err := r.Resolve(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, res, again)
}

func TestResolveEmptyBatch(t *testing.T) {
	tr := mocks.NewMockTranslator(t)
	r := newResolver(t, tr)

	res, err := r.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Len())
}

func TestResolveInvalidAddressFailsBatch(t *testing.T) {
	tr := mocks.NewMockTranslator(t)
	r := newResolver(t, tr)

	batch := []address.Address{address.MustParse("ns=2;i=5@urn:srv"), {}}
	res, err := r.Resolve(context.Background(), batch)
	require.Error(t, err)
	assert.ErrorIs(t, err, resolve.ErrInvalidRequest)
	assert.Equal(t, ua.StatusBadInvalidArgument, resolve.StatusOf(err))

	var re *resolve.Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 1, re.Index)

	require.Equal(t, 2, res.Len())
	for _, s := range res.Statuses {
		assert.Equal(t, ua.StatusBadInvalidArgument, s)
	}
	assert.Equal(t, 0, r.Cache().Len())
}

func TestResolveMalformedAbsoluteIsolated(t *testing.T) {
	tr := mocks.NewMockTranslator(t)
	r := newResolver(t, tr)

	batch := []address.Address{
		address.MustParse("ns=2;i=5@urn:srv"),
		// No server.
		address.MustParse("ns=2;i=6"),
		// No namespace.
		address.Absolute(ua.ExpandedNodeID{ServerURI: "urn:srv"}),
	}
	res, err := r.Resolve(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, ua.StatusGood, res.Statuses[0])
	assert.Equal(t, ua.StatusBadNodeIDInvalid, res.Statuses[1])
	assert.Equal(t, ua.StatusBadNodeIDInvalid, res.Statuses[2])
	assert.Equal(t, 1, r.Cache().Len())
}

func TestResolveMalformedAbsoluteStrict(t *testing.T) {
	tr := mocks.NewMockTranslator(t)
	r := newResolver(t, tr, func(c *resolve.Config) { c.StrictAbsoluteVerification = true })

	batch := addrs("ns=2;i=5@urn:srv", "ns=2;i=6")
	res, err := r.Resolve(context.Background(), batch)
	require.Error(t, err)
	assert.ErrorIs(t, err, resolve.ErrResolution)
	for _, s := range res.Statuses {
		assert.Equal(t, ua.StatusBadNodeIDInvalid, s)
	}
}

func TestResolveCrossServerContinuation(t *testing.T) {
	var calls [][]ua.BrowsePath
	tr := mocks.NewMockTranslator(t)
	tr.EXPECT().TranslateBrowsePaths(mock.Anything, mock.Anything).
		RunAndReturn(table{
			"i=85@urn:a /2:A/2:B/2:C":  crossed("ns=3;i=10@urn:b", 1),
			"ns=3;i=10@urn:b /2:B/2:C": found("ns=3;i=11"),
		}.answer(&calls)).Times(2)

	r := newResolver(t, tr)
	res, err := r.Resolve(context.Background(), addrs("i=85@urn:a /2:A/2:B/2:C"))
	require.NoError(t, err)
	require.True(t, res.AllGood())
	assert.Equal(t, "ns=3;i=11@urn:b", res.Nodes[0].String())

	require.Len(t, calls, 2)
	require.Len(t, calls[1], 1)
	assert.Equal(t, "ns=3;i=10@urn:b", calls[1][0].StartingNode.String())
	assert.Len(t, calls[1][0].RelativePath, 2)
}

func TestResolveChainRecursesOncePerLevel(t *testing.T) {
	var calls [][]ua.BrowsePath
	tr := mocks.NewMockTranslator(t)
	tr.EXPECT().TranslateBrowsePaths(mock.Anything, mock.Anything).
		RunAndReturn(table{
			"i=85@urn:srv /2:A":     found("ns=2;i=1"),
			"ns=2;i=1@urn:srv /2:B": found("ns=2;i=2"),
			"ns=2;i=2@urn:srv /2:C": found("ns=2;i=3"),
		}.answer(&calls)).Times(3)

	r := newResolver(t, tr)
	a := address.MustParse("i=85@urn:srv /2:A | /2:B | /2:C")
	require.Equal(t, 3, a.Depth())

	res, err := r.Resolve(context.Background(), []address.Address{a})
	require.NoError(t, err)
	require.True(t, res.AllGood())
	assert.Equal(t, "ns=2;i=3@urn:srv", res.Nodes[0].String())
	assert.Len(t, calls, 3)

	// Every link of the chain is cached, including the absolute root.
	assert.Equal(t, 4, r.Cache().Len())
	_, ok := r.Cache().Find(a.StartingAddress())
	assert.True(t, ok)
}

func TestResolveSharedStartTranslatedOnce(t *testing.T) {
	var calls [][]ua.BrowsePath
	tr := mocks.NewMockTranslator(t)
	tr.EXPECT().TranslateBrowsePaths(mock.Anything, mock.Anything).
		RunAndReturn(table{
			"i=85@urn:srv /2:A":     found("ns=2;i=1"),
			"ns=2;i=1@urn:srv /2:X": found("ns=2;i=10"),
			"ns=2;i=1@urn:srv /2:Y": found("ns=2;i=11"),
		}.answer(&calls)).Times(2)

	r := newResolver(t, tr)
	res, err := r.Resolve(context.Background(), addrs(
		"i=85@urn:srv /2:A | /2:X",
		"i=85@urn:srv /2:A | /2:Y",
	))
	require.NoError(t, err)
	require.True(t, res.AllGood())
	assert.Equal(t, "ns=2;i=10@urn:srv", res.Nodes[0].String())
	assert.Equal(t, "ns=2;i=11@urn:srv", res.Nodes[1].String())

	require.Len(t, calls, 2)
	assert.Len(t, calls[0], 1, "shared start sent once")
	assert.Len(t, calls[1], 2)
}

func TestResolveEntryThatIsAlsoAStart(t *testing.T) {
	var calls [][]ua.BrowsePath
	tr := mocks.NewMockTranslator(t)
	tr.EXPECT().TranslateBrowsePaths(mock.Anything, mock.Anything).
		RunAndReturn(table{
			"i=85@urn:srv /2:A":     found("ns=2;i=1"),
			"ns=2;i=1@urn:srv /2:B": found("ns=2;i=2"),
		}.answer(&calls)).Times(2)

	r := newResolver(t, tr)
	res, err := r.Resolve(context.Background(), addrs(
		"i=85@urn:srv /2:A",
		"i=85@urn:srv /2:A | /2:B",
	))
	require.NoError(t, err)
	require.True(t, res.AllGood())
	assert.Equal(t, "ns=2;i=1@urn:srv", res.Nodes[0].String())
	assert.Equal(t, "ns=2;i=2@urn:srv", res.Nodes[1].String())

	require.Len(t, calls, 2)
	require.Len(t, calls[0], 1)
	assert.Equal(t, "i=85@urn:srv /2:A", calls[0][0].String())
	require.Len(t, calls[1], 1, "the entry resolved as a start is not sent again")
	assert.Equal(t, "ns=2;i=1@urn:srv /2:B", calls[1][0].String())
}

func TestResolveClassification(t *testing.T) {
	ambiguous := found("ns=2;i=1")
	ambiguous.Targets = append(ambiguous.Targets, found("ns=2;i=2").Targets...)

	var calls [][]ua.BrowsePath
	tr := mocks.NewMockTranslator(t)
	tr.EXPECT().TranslateBrowsePaths(mock.Anything, mock.Anything).
		RunAndReturn(table{
			"i=85@urn:srv /2:Ok":        found("ns=2;i=1"),
			"i=85@urn:srv /2:Ambiguous": ambiguous,
			"i=85@urn:srv /2:Empty":     {StatusCode: ua.StatusGood},
			"i=85@urn:srv /2:Zero/2:X":  crossed("ns=3;i=1@urn:b", 0),
			"i=85@urn:srv /2:Past/2:X":  crossed("ns=3;i=1@urn:b", 5),
		}.answer(&calls)).Once()

	r := newResolver(t, tr)
	res, err := r.Resolve(context.Background(), addrs(
		"i=85@urn:srv /2:Ok",
		"i=85@urn:srv /2:Ambiguous",
		"i=85@urn:srv /2:Empty",
		"i=85@urn:srv /2:Missing",
		"i=85@urn:srv /2:Zero/2:X",
		"i=85@urn:srv /2:Past/2:X",
	))
	require.NoError(t, err)
	assert.Equal(t, []ua.StatusCode{
		ua.StatusGood,
		ua.StatusBadTooManyMatches,
		ua.StatusBadUnexpectedError,
		ua.StatusBadNoMatch,
		ua.StatusBadUnexpectedError,
		ua.StatusBadUnexpectedError,
	}, res.Statuses)
	for i := 1; i < res.Len(); i++ {
		assert.Equal(t, ua.ExpandedNodeID{}, res.Nodes[i])
	}

	// Failed entries are not cached; the root and the good entry are.
	assert.Equal(t, 2, r.Cache().Len())
}

func TestResolveStartFailurePropagates(t *testing.T) {
	var calls [][]ua.BrowsePath
	tr := mocks.NewMockTranslator(t)
	tr.EXPECT().TranslateBrowsePaths(mock.Anything, mock.Anything).
		RunAndReturn(table{}.answer(&calls)).Once()

	r := newResolver(t, tr)
	res, err := r.Resolve(context.Background(), addrs("i=85@urn:srv /2:Gone | /2:Child"))
	require.NoError(t, err)
	assert.Equal(t, ua.StatusBadNoMatch, res.Statuses[0])
	assert.Len(t, calls, 1)
}

func TestResolveTranslatorError(t *testing.T) {
	tr := mocks.NewMockTranslator(t)
	tr.EXPECT().TranslateBrowsePaths(mock.Anything, mock.Anything).
		Return(nil, errors.New("link down")).Once()

	r := newResolver(t, tr)
	res, err := r.Resolve(context.Background(), addrs("ns=2;i=5@urn:srv", "ns=2;i=5@urn:srv /2:X"))
	require.Error(t, err)
	assert.Equal(t, ua.StatusBadCommunicationError, resolve.StatusOf(err))

	// The absolute entry resolved before the failing call and keeps its result.
	assert.Equal(t, ua.StatusGood, res.Statuses[0])
	assert.Equal(t, ua.StatusBadCommunicationError, res.Statuses[1])
}

func TestResolveResultCountMismatch(t *testing.T) {
	tr := mocks.NewMockTranslator(t)
	tr.EXPECT().TranslateBrowsePaths(mock.Anything, mock.Anything).
		Return([]ua.BrowsePathResult{}, nil).Once()

	r := newResolver(t, tr)
	res, err := r.Resolve(context.Background(), addrs("ns=2;i=5@urn:srv /2:X"))
	require.Error(t, err)
	assert.ErrorIs(t, err, resolve.ErrUnexpected)
	assert.Equal(t, ua.StatusBadUnexpectedError, res.Statuses[0])
}

func TestResolvePassLimit(t *testing.T) {
	var calls [][]ua.BrowsePath
	tr := mocks.NewMockTranslator(t)
	tr.EXPECT().TranslateBrowsePaths(mock.Anything, mock.Anything).
		RunAndReturn(table{
			"i=85@urn:a /2:A/2:B/2:C": crossed("ns=3;i=1@urn:b", 1),
			"ns=3;i=1@urn:b /2:B/2:C": crossed("ns=4;i=1@urn:c", 1),
		}.answer(&calls)).Times(2)

	r := newResolver(t, tr, func(c *resolve.Config) { c.MaxTranslatePasses = 2 })
	res, err := r.Resolve(context.Background(), addrs("i=85@urn:a /2:A/2:B/2:C"))
	require.NoError(t, err)
	assert.Equal(t, ua.StatusBadUnexpectedError, res.Statuses[0])
	assert.Len(t, calls, 2)
}

func TestResolveCanceledContext(t *testing.T) {
	tr := mocks.NewMockTranslator(t)
	r := newResolver(t, tr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.Resolve(ctx, addrs("ns=2;i=5@urn:srv /2:X"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, res.Statuses[0].IsBad())
}

func TestResolveIdempotent(t *testing.T) {
	var calls [][]ua.BrowsePath
	tr := mocks.NewMockTranslator(t)
	tr.EXPECT().TranslateBrowsePaths(mock.Anything, mock.Anything).
		RunAndReturn(table{
			"i=85@urn:srv /2:A": found("ns=2;i=1"),
		}.answer(&calls))

	r := newResolver(t, tr)
	batch := addrs("i=85@urn:srv /2:A", "i=85@urn:srv /2:B", "ns=2;i=9")

	first, err := r.Resolve(context.Background(), batch)
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Failed entries are retried; resolved ones are not.
	require.Len(t, calls, 2)
	assert.Len(t, calls[1], 1)
}

func TestResolveProtocolEvents(t *testing.T) {
	var calls [][]ua.BrowsePath
	tr := mocks.NewMockTranslator(t)
	tr.EXPECT().TranslateBrowsePaths(mock.Anything, mock.Anything).
		RunAndReturn(table{
			"i=85@urn:srv /2:A": found("ns=2;i=1"),
		}.answer(&calls)).Once()

	capture := &captureLogger{}
	r := newResolver(t, tr, func(c *resolve.Config) {
		c.ProtocolLogger = capture
		c.ClientID = "client-1"
	})

	_, err := r.Resolve(context.Background(), addrs("i=85@urn:srv /2:A"))
	require.NoError(t, err)

	var cacheEvents, translateEvents, serviceEvents int
	for _, e := range capture.events {
		assert.Equal(t, "client-1", e.ClientID)
		switch {
		case e.Resolve != nil && e.Category == log.CategoryCache:
			cacheEvents++
		case e.Resolve != nil && e.Category == log.CategoryTranslate:
			translateEvents++
			assert.Equal(t, 1, e.Resolve.Resolved)
		case e.Service != nil:
			serviceEvents++
			assert.Equal(t, ua.ServiceTranslateBrowsePaths, e.Service.Service)
		}
	}
	// One cache phase per recursion level.
	assert.Equal(t, 2, cacheEvents)
	assert.Equal(t, 1, translateEvents)
	assert.Equal(t, 1, serviceEvents)
}

func TestNewValidatesConfig(t *testing.T) {
	tr := mocks.NewMockTranslator(t)

	_, err := resolve.New(tr, nil, resolve.Config{})
	assert.ErrorIs(t, err, resolve.ErrInvalidConfig)

	_, err = resolve.New(nil, nil, resolve.DefaultConfig())
	assert.ErrorIs(t, err, resolve.ErrInvalidConfig)

	r, err := resolve.New(tr, nil, resolve.DefaultConfig())
	require.NoError(t, err)
	assert.NotNil(t, r.Cache())
}
