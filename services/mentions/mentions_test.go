package mentions

import (
	"cashtag-mentions/models/constants"
	"cashtag-mentions/models/entities"
	"cashtag-mentions/pkg/observer"
	"cashtag-mentions/repositories/reports"
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTwitter struct {
	ids          map[string]string
	pages        map[string][]entities.Post
	fetchErr     map[string]error
	pagedCalls   int
	singleCalls  int
	resolveCalls []string
}

func (f *fakeTwitter) ResolveAccount(_ context.Context, handle string) (string, error) {
	f.resolveCalls = append(f.resolveCalls, handle)
	id, ok := f.ids[handle]
	if !ok {
		return "", errors.New("twitter api error 404: Not Found")
	}
	return id, nil
}

func (f *fakeTwitter) FetchPosts(_ context.Context, userID string, _ entities.TimeWindow) iter.Seq2[entities.Post, error] {
	f.singleCalls++
	return f.sequence(userID)
}

func (f *fakeTwitter) FetchAllPosts(_ context.Context, userID string, _ entities.TimeWindow) iter.Seq2[entities.Post, error] {
	f.pagedCalls++
	return f.sequence(userID)
}

func (f *fakeTwitter) sequence(userID string) iter.Seq2[entities.Post, error] {
	return func(yield func(entities.Post, error) bool) {
		for _, post := range f.pages[userID] {
			if !yield(post, nil) {
				return
			}
		}
		if err := f.fetchErr[userID]; err != nil {
			yield(entities.Post{}, err)
		}
	}
}

type recorder struct {
	events []observer.Event
}

func (r *recorder) OnNotify(e observer.Event) {
	r.events = append(r.events, e)
}

func posts(texts ...string) []entities.Post {
	result := make([]entities.Post, 0, len(texts))
	for _, text := range texts {
		result = append(result, entities.Post{Text: text})
	}
	return result
}

func newTestService(t *testing.T, fake *fakeTwitter, cfg Config) (*Impl, *reports.Impl) {
	t.Helper()

	repo := reports.New(time.Hour)
	service, err := New(fake, repo, cfg)
	require.NoError(t, err)
	service.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 500, time.UTC) }

	return service, repo
}

func TestAggregator(t *testing.T) {
	agg := NewAggregator()
	for _, post := range posts("$TSLA $tsla $TSLA!", "$AAPL and $TSLA", "nothing here", "") {
		agg.Add(post)
	}

	assert.Equal(t, 4, agg.Scanned())
	assert.Equal(t, entities.TickerCount{"TSLA": 2, "AAPL": 1}, agg.Counts())
}

func TestAggregator_OrderIndependent(t *testing.T) {
	first, second := entities.Post{Text: "$GME $AMC"}, entities.Post{Text: "$GME $BRK.B"}

	forward := NewAggregator()
	forward.Add(first)
	forward.Add(second)

	backward := NewAggregator()
	backward.Add(second)
	backward.Add(first)

	assert.Equal(t, forward.Counts(), backward.Counts())
	assert.Equal(t, forward.Scanned(), backward.Scanned())
}

func TestAggregator_Merge(t *testing.T) {
	agg := NewAggregator()
	agg.Add(entities.Post{Text: "$AAPL"})

	other := NewAggregator()
	other.Add(entities.Post{Text: "$AAPL $MSFT"})
	other.Add(entities.Post{Text: "no ticker"})

	agg.Merge(other)

	assert.Equal(t, 3, agg.Scanned())
	assert.Equal(t, entities.TickerCount{"AAPL": 2, "MSFT": 1}, agg.Counts())
}

func TestAggregator_ConsumeStopsOnError(t *testing.T) {
	fake := &fakeTwitter{
		pages:    map[string][]entities.Post{"1": posts("$AAPL")},
		fetchErr: map[string]error{"1": errors.New("boom")},
	}

	agg := NewAggregator()
	err := agg.Consume(fake.sequence("1"))

	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, agg.Scanned())
}

func TestNew(t *testing.T) {
	fake := &fakeTwitter{}
	repo := reports.New(time.Hour)

	_, err := New(fake, repo, Config{Mode: "both"})
	assert.ErrorIs(t, err, ErrUnknownScanMode)

	_, err = New(fake, repo, Config{Mode: constants.ScanModeMulti, Handles: []string{" ", "@"}})
	assert.ErrorIs(t, err, ErrNoAccounts)

	_, err = New(fake, repo, Config{Mode: constants.ScanModeSingle})
	assert.ErrorIs(t, err, ErrNoAccounts)

	service, err := New(fake, repo, Config{Mode: constants.ScanModeMulti, Handles: []string{"@buzztickr", "thinknum"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"buzztickr", "thinknum"}, service.handles)
	assert.Equal(t, 24*time.Hour, service.window)
}

func TestScan_SingleAccountScenario(t *testing.T) {
	fake := &fakeTwitter{
		ids:   map[string]string{"unusual_whales": "1"},
		pages: map[string][]entities.Post{"1": posts("$AAPL up", "no ticker")},
	}
	service, _ := newTestService(t, fake, Config{Mode: constants.ScanModeSingle, Account: "@unusual_whales"})

	result, err := service.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "@unusual_whales", result.Account)
	assert.Nil(t, result.Handles)
	assert.Equal(t, 2, result.PostsScanned)
	assert.Equal(t, []entities.TickerMention{{Ticker: "AAPL", Mentions: 1}}, result.Tickers)
	assert.Equal(t, "2025-03-09T12:00:00Z", result.WindowStartUTC)
	assert.Equal(t, "2025-03-10T12:00:00Z", result.WindowEndUTC)
	assert.Equal(t, 1, fake.pagedCalls)
	assert.Zero(t, fake.singleCalls)
}

func TestScan_MultiAccountIsolatesFailures(t *testing.T) {
	fake := &fakeTwitter{
		ids: map[string]string{"buzztickr": "1", "allday_stocks": "2", "thinknum": "4"},
		pages: map[string][]entities.Post{
			"1": posts("$TSLA $AAPL", "$TSLA"),
			"2": posts("$GME", "$GME"),
			"4": posts("$AAPL", "$GME"),
		},
		fetchErr: map[string]error{"2": errors.New("twitter api error 503: Service Unavailable")},
	}
	service, repo := newTestService(t, fake, Config{
		Mode:    constants.ScanModeMulti,
		Handles: []string{"buzztickr", "allday_stocks", "AltindexApp", "thinknum"},
	})
	events := &recorder{}
	service.RegisterObserver(events)

	result, err := service.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"buzztickr", "allday_stocks", "AltindexApp", "thinknum"}, result.Handles)
	assert.Equal(t, []string{"buzztickr", "allday_stocks", "AltindexApp", "thinknum"}, fake.resolveCalls)
	assert.Empty(t, result.Account)
	assert.Equal(t, 4, result.PostsScanned)
	assert.Equal(t, []entities.TickerMention{
		{Ticker: "AAPL", Mentions: 2},
		{Ticker: "TSLA", Mentions: 2},
		{Ticker: "GME", Mentions: 1},
	}, result.Tickers)
	assert.Equal(t, 3, fake.singleCalls)
	assert.Zero(t, fake.pagedCalls)

	latest, err := repo.GetLatest()
	require.NoError(t, err)
	assert.Equal(t, *result, latest)

	require.Len(t, events.events, 1)
	assert.Equal(t, observer.ReportEvent, events.events[0].E)
	assert.Equal(t, result, events.events[0].Report)
}

func TestScan_SingleAccountFailureStillReports(t *testing.T) {
	fake := &fakeTwitter{ids: map[string]string{}}
	service, _ := newTestService(t, fake, Config{Mode: constants.ScanModeSingle, Account: "unusual_whales"})

	result, err := service.Scan(context.Background())
	require.NoError(t, err)

	assert.Zero(t, result.PostsScanned)
	assert.Empty(t, result.Tickers)
	assert.NotNil(t, result.Tickers)
}

func TestScan_Cancelled(t *testing.T) {
	fake := &fakeTwitter{ids: map[string]string{"buzztickr": "1"}}
	service, repo := newTestService(t, fake, Config{Mode: constants.ScanModeMulti, Handles: []string{"buzztickr"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := service.Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
	assert.Zero(t, repo.Count())
}
