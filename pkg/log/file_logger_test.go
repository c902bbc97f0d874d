package log

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/mash-ua/pkg/ua"
)

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func TestFileLoggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "client.mlog")

	fl, err := NewFileLogger(path)
	require.NoError(t, err)

	rec := NewRecorder(fl, "client-1")
	rec.Resolve(CategoryCache, ResolveEvent{BatchSize: 2, CacheHits: 1, Relative: 1})
	rec.Service(ServiceEvent{Service: ua.ServiceTranslateBrowsePaths, Targets: 1, Duration: 3 * time.Millisecond})
	rec.Page(PageEvent{Round: 1, Pending: 1, References: 10})

	assert.Equal(t, 3, fl.Written())
	require.NoError(t, fl.Close())
	require.NoError(t, fl.Close(), "second Close must be a no-op")

	// Ignored after Close.
	rec.Page(PageEvent{Round: 2})

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	events, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, 1, events[0].Resolve.CacheHits)
	assert.Equal(t, ua.ServiceTranslateBrowsePaths, events[1].Service.Service)
	assert.Equal(t, 3*time.Millisecond, events[1].Service.Duration)
	assert.Equal(t, 10, events[2].Page.References)
	assert.Equal(t, "client-1", events[2].ClientID)
}

func TestReaderFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	fl := NewStreamLogger(nopCloser{buf})

	NewRecorder(fl, "a").Service(ServiceEvent{Service: ua.ServiceRead, Targets: 1})
	NewRecorder(fl, "a").Service(ServiceEvent{Service: ua.ServiceBrowse, Targets: 1})
	NewRecorder(fl, "b").Service(ServiceEvent{Service: ua.ServiceBrowse, Targets: 2})
	NewRecorder(fl, "a").Page(PageEvent{Round: 1})

	browse := ua.ServiceBrowse
	r := NewStreamReader(bytes.NewReader(buf.Bytes()), Filter{ClientID: "a", Service: &browse})

	ev, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", ev.ClientID)
	assert.Equal(t, ua.ServiceBrowse, ev.Service.Service)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, r.Close())
}

func TestEncodeDecodeEvent(t *testing.T) {
	code := ua.StatusBadTooManyMatches
	in := Event{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC),
		ClientID:  "client-1",
		Layer:     LayerResolve,
		Category:  CategoryError,
		Error:     &ErrorEventData{Layer: LayerResolve, Message: "ambiguous", Code: &code},
	}

	data, err := EncodeEvent(in)
	require.NoError(t, err)

	out, err := DecodeEvent(data)
	require.NoError(t, err)
	assert.True(t, in.Timestamp.Equal(out.Timestamp), "nanosecond timestamp must survive")
	require.NotNil(t, out.Error)
	assert.Equal(t, code, *out.Error.Code)
}
