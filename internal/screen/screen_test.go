package screen_test

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"sync/atomic"
	"testing"

	"news_reader/internal/browser"
	"news_reader/internal/feed"
	"news_reader/internal/metrics"
	"news_reader/internal/models"
	"news_reader/internal/network"
	"news_reader/internal/prefs"
	"news_reader/internal/screen"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	news  []models.News
	err   error
	calls []string
}

func (f *fakeLoader) Load(_ context.Context, u string) ([]models.News, error) {
	f.calls = append(f.calls, u)
	return f.news, f.err
}

var opts = screen.Options{
	Endpoint: "https://content.guardianapis.com/search",
	APIKey:   "key",
	FromDate: "2017-01-01",
}

func newScreen(t *testing.T, connected bool, loader *fakeLoader) (*screen.Screen, *browser.Recorder, *metrics.Metrics, prefs.Store) {
	t.Helper()
	store := prefs.NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))
	rec := &browser.Recorder{}
	m := metrics.New()
	return screen.New(opts, store, network.Static(connected), loader, rec, m), rec, m, store
}

func sample() []models.News {
	return []models.News{
		{Title: "One", Section: "World", URL: "https://example.com/1"},
		{Title: "Two", Section: "Sport", URL: "https://example.com/2"},
		{Title: "Three", Section: "Culture"},
	}
}

func TestCreate_NoConnection(t *testing.T) {
	loader := &fakeLoader{news: sample()}
	s, _, m, _ := newScreen(t, false, loader)

	err := s.Create(context.Background())
	require.ErrorIs(t, err, screen.ErrNoConnection)
	require.Empty(t, loader.calls)

	st, msg := s.Status()
	require.Equal(t, screen.StateNoConnection, st)
	require.Equal(t, screen.MsgNoConnection, msg)
	require.Equal(t, float64(1), testutil.ToFloat64(m.Loads.WithLabelValues("no_connection")))
}

func TestCreate_LoadsRowsInOrder(t *testing.T) {
	loader := &fakeLoader{news: sample()}
	s, _, m, _ := newScreen(t, true, loader)

	require.NoError(t, s.Create(context.Background()))
	require.Len(t, loader.calls, 1)
	require.Equal(t, 3, s.List.Len())
	for i, want := range sample() {
		got, err := s.List.Item(i)
		require.NoError(t, err)
		require.Equal(t, want.Title, got.Title)
	}

	st, msg := s.Status()
	require.Equal(t, screen.StateReady, st)
	require.Equal(t, screen.MsgNoNews, msg)
	require.Equal(t, float64(3), testutil.ToFloat64(m.Items))
}

func TestCreate_EmptyAndFailedCollapse(t *testing.T) {
	testCases := []struct {
		name   string
		loader *fakeLoader
	}{
		{name: "empty", loader: &fakeLoader{}},
		{name: "failed", loader: &fakeLoader{err: errors.New("boom")}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, _, _, _ := newScreen(t, true, tc.loader)
			_ = s.Create(context.Background())

			st, msg := s.Status()
			require.Equal(t, screen.StateNoNews, st)
			require.Equal(t, screen.MsgNoNews, msg)
			require.Equal(t, 0, s.List.Len())
		})
	}
}

func TestCreate_QueryFollowsPrefs(t *testing.T) {
	loader := &fakeLoader{news: sample()}
	s, _, _, store := newScreen(t, true, loader)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx))
	u, err := url.Parse(loader.calls[0])
	require.NoError(t, err)
	require.False(t, u.Query().Has("q"))
	require.Equal(t, "newest", u.Query().Get("order-by"))

	require.NoError(t, store.Save(ctx, prefs.Preferences{SearchTerm: "elections", OrderBy: "oldest"}))
	s.Reload(ctx)
	u, err = url.Parse(loader.calls[1])
	require.NoError(t, err)
	require.Equal(t, "elections", u.Query().Get("q"))
	require.Equal(t, "oldest", u.Query().Get("order-by"))
	require.Equal(t, 3, s.List.Len())
}

func TestSelect_OpensStoredURL(t *testing.T) {
	s, rec, m, _ := newScreen(t, true, &fakeLoader{news: sample()})
	require.NoError(t, s.Create(context.Background()))

	n, err := s.Select(1)
	require.NoError(t, err)
	require.Equal(t, "Two", n.Title)
	require.Equal(t, []string{"https://example.com/2"}, rec.Opened)
	require.Equal(t, float64(1), testutil.ToFloat64(m.Opens))

	_, err = s.Select(2)
	require.ErrorIs(t, err, browser.ErrNoURL)

	_, err = s.Select(7)
	require.ErrorIs(t, err, feed.ErrOutOfRange)
	require.Len(t, rec.Opened, 1)
}

func TestReset(t *testing.T) {
	s, _, m, _ := newScreen(t, true, &fakeLoader{news: sample()})
	require.NoError(t, s.Create(context.Background()))
	s.Reset()
	require.Equal(t, 0, s.List.Len())
	require.Equal(t, float64(0), testutil.ToFloat64(m.Items))

	st, msg := s.Status()
	require.Equal(t, screen.StateNoNews, st)
	require.Equal(t, screen.MsgNoNews, msg)
}

type switchChecker struct {
	on atomic.Bool
}

func (c *switchChecker) Connected(context.Context) bool {
	return c.on.Load()
}

func TestCreate_LostConnectionClearsRows(t *testing.T) {
	checker := &switchChecker{}
	checker.on.Store(true)
	store := prefs.NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))
	s := screen.New(opts, store, checker, &fakeLoader{news: sample()}, &browser.Recorder{}, nil)

	require.NoError(t, s.Create(context.Background()))
	require.Equal(t, 3, s.List.Len())

	checker.on.Store(false)
	require.ErrorIs(t, s.Create(context.Background()), screen.ErrNoConnection)
	require.Equal(t, 0, s.List.Len())

	st, msg := s.Status()
	require.Equal(t, screen.StateNoConnection, st)
	require.Equal(t, screen.MsgNoConnection, msg)
}

// gatedLoader держит загрузку без q до закрытия release.
type gatedLoader struct {
	started chan struct{}
	release chan struct{}
}

func (l *gatedLoader) Load(ctx context.Context, u string) ([]models.News, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return nil, err
	}
	if parsed.Query().Has("q") {
		return []models.News{{Title: "fresh", URL: "https://example.com/fresh"}}, nil
	}
	close(l.started)
	<-l.release
	return []models.News{{Title: "stale", URL: "https://example.com/stale"}}, nil
}

func TestReload_OutdatedLoadDoesNotOverwrite(t *testing.T) {
	loader := &gatedLoader{started: make(chan struct{}), release: make(chan struct{})}
	store := prefs.NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))
	s := screen.New(opts, store, network.Static(true), loader, &browser.Recorder{}, nil)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		s.Reload(ctx)
		close(done)
	}()
	<-loader.started

	require.NoError(t, store.Save(ctx, prefs.Preferences{SearchTerm: "budget", OrderBy: "newest"}))
	s.Reload(ctx)
	n, err := s.List.Item(0)
	require.NoError(t, err)
	require.Equal(t, "fresh", n.Title)

	close(loader.release)
	<-done

	require.Equal(t, 1, s.List.Len())
	n, err = s.List.Item(0)
	require.NoError(t, err)
	require.Equal(t, "fresh", n.Title)
	st, _ := s.Status()
	require.Equal(t, screen.StateReady, st)
}
