package widget

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"country-stats/internal/countries"
	"country-stats/internal/stats"
)

type fakeSource struct {
	all      []countries.Record
	byName   []countries.Record
	err      error
	queries  []string
	allCalls int
}

func (f *fakeSource) FetchAll(ctx context.Context) ([]countries.Record, error) {
	f.allCalls++
	return f.all, f.err
}

func (f *fakeSource) SearchByName(ctx context.Context, q string) ([]countries.Record, error) {
	f.queries = append(f.queries, q)
	return f.byName, f.err
}

type recordingPresenter struct {
	calls  []string
	result *stats.Result
	errMsg string
}

func (p *recordingPresenter) Render(res stats.Result) {
	p.calls = append(p.calls, "render")
	p.result = &res
}
func (p *recordingPresenter) ShowError(msg string) {
	p.calls = append(p.calls, "error")
	p.errMsg = msg
}
func (p *recordingPresenter) ClearError()  { p.calls = append(p.calls, "clear") }
func (p *recordingPresenter) HideResults() { p.calls = append(p.calls, "hide") }

type recordingObserver struct{ got []Outcome }

func (o *recordingObserver) Observe(ctx context.Context, oc Outcome) { o.got = append(o.got, oc) }

func name(s string) *string { return &s }

func TestSearchBlankQueryNeverCallsSource(t *testing.T) {
	src := &fakeSource{}
	obs := &recordingObserver{}
	w := New(src, obs)
	for _, q := range []string{"", "   ", "\t\n"} {
		p := &recordingPresenter{}
		err := w.Search(context.Background(), q, p)
		assert.ErrorIs(t, err, ErrEmptyQuery)
		assert.Equal(t, []string{"clear", "hide", "error"}, p.calls)
		assert.Equal(t, EmptyQueryMessage, p.errMsg)
	}
	assert.Empty(t, src.queries)
	require.Len(t, obs.got, 3)
	assert.False(t, obs.got[0].OK)
}

func TestSearchTrimsAndRenders(t *testing.T) {
	src := &fakeSource{byName: []countries.Record{{Name: name("Peru")}}}
	obs := &recordingObserver{}
	p := &recordingPresenter{}
	require.NoError(t, New(src, obs).Search(context.Background(), "  per ", p))
	assert.Equal(t, []string{"per"}, src.queries)
	assert.Equal(t, []string{"clear", "hide", "render"}, p.calls)
	require.NotNil(t, p.result)
	assert.Equal(t, 1, p.result.Count)
	require.Len(t, obs.got, 1)
	assert.Equal(t, Outcome{Trigger: TriggerSearch, Query: "per", OK: true, Count: 1}, obs.got[0])
}

func TestSearchFailure(t *testing.T) {
	src := &fakeSource{err: &countries.HTTPError{Status: 404}}
	p := &recordingPresenter{}
	err := New(src).Search(context.Background(), "atlantis", p)
	require.Error(t, err)
	assert.Equal(t, "Search failed: HTTP 404", p.errMsg)
	assert.Equal(t, []string{"clear", "hide", "error"}, p.calls)
	assert.Nil(t, p.result)
}

func TestFetchAll(t *testing.T) {
	src := &fakeSource{all: []countries.Record{{}, {}}}
	p := &recordingPresenter{}
	require.NoError(t, New(src).FetchAll(context.Background(), p))
	assert.Equal(t, 1, src.allCalls)
	assert.Equal(t, 2, p.result.Count)
	assert.Equal(t, map[string]int{stats.UnknownRegion: 2}, p.result.RegionCounts)
}

func TestFetchAllFailure(t *testing.T) {
	src := &fakeSource{err: &countries.HTTPError{Status: 503}}
	obs := &recordingObserver{}
	p := &recordingPresenter{}
	err := New(src, obs).FetchAll(context.Background(), p)
	var he *countries.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, "ALL failed: HTTP 503", p.errMsg)
	assert.NotContains(t, p.calls, "render")
	require.Len(t, obs.got, 1)
	assert.Equal(t, TriggerAll, obs.got[0].Trigger)
	assert.Error(t, obs.got[0].Err)
}

func TestNilObserverIgnored(t *testing.T) {
	p := &recordingPresenter{}
	assert.NotPanics(t, func() {
		_ = New(&fakeSource{}, nil).FetchAll(context.Background(), p)
	})
}
