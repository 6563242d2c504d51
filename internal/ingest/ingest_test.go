package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/butlerian/directory/internal/logger"
	"github.com/butlerian/directory/internal/models"
)

// fakeStore is an in-memory NewsStore.
type fakeStore struct {
	sources   []models.NewsSource
	existing  map[string]bool
	inserted  []*models.NewsArticle
	stamped   map[string]time.Time
	insertErr error
}

func newFakeStore(sources ...models.NewsSource) *fakeStore {
	return &fakeStore{
		sources:  sources,
		existing: make(map[string]bool),
		stamped:  make(map[string]time.Time),
	}
}

func (s *fakeStore) ListEnabledSources(context.Context) ([]models.NewsSource, error) {
	return s.sources, nil
}

func (s *fakeStore) ArticleExistsByURL(_ context.Context, url string) (bool, error) {
	return s.existing[url], nil
}

func (s *fakeStore) InsertArticle(_ context.Context, article *models.NewsArticle) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, article)
	s.existing[article.URL] = true
	return nil
}

func (s *fakeStore) StampLastFetched(_ context.Context, id string, fetchedAt time.Time) error {
	s.stamped[id] = fetchedAt
	return nil
}

const rssTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Test Feed</title>
<link>https://feed.test</link>
<description>test</description>
<item>
  <title>First Article</title>
  <link>https://feed.test/articles/1</link>
  <description>&lt;p&gt;Plain &lt;b&gt;summary&lt;/b&gt;&lt;/p&gt;</description>
  <pubDate>Mon, 04 Aug 2025 10:00:00 GMT</pubDate>
</item>
<item>
  <title>Second Article</title>
  <link>https://feed.test/articles/2</link>
  <description>Another summary</description>
</item>
</channel>
</rss>`

func serveFeed(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_InsertsNewArticles(t *testing.T) {
	srv := serveFeed(t, rssTemplate)

	store := newFakeStore(models.NewsSource{
		ID: "src-1", Name: "Test Feed", FeedURL: srv.URL, Type: models.SourceTypeRSS, Enabled: true,
	})

	ing := New(store, 5*time.Second, "test-agent", logger.NewNopLogger())
	summary := ing.Run(context.Background())

	assert.Equal(t, 2, summary.Fetched)
	assert.Equal(t, 0, summary.Skipped)
	assert.Empty(t, summary.Errors)

	require.Len(t, store.inserted, 2)
	first := store.inserted[0]
	assert.Equal(t, "First Article", first.Title)
	assert.Equal(t, "https://feed.test/articles/1", first.URL)
	assert.Equal(t, "Plain summary", first.Summary)
	assert.Equal(t, "Test Feed", first.Source)
	assert.True(t, first.Approved)
	assert.False(t, first.Featured)
	assert.Equal(t, 2025, first.PublishedAt.Year())

	// Item without pubDate falls back to now
	assert.WithinDuration(t, time.Now(), store.inserted[1].PublishedAt, time.Minute)

	// Source stamped after the run
	assert.Contains(t, store.stamped, "src-1")
}

func TestRun_DeduplicatesByLink(t *testing.T) {
	srv := serveFeed(t, rssTemplate)

	store := newFakeStore(models.NewsSource{
		ID: "src-1", Name: "Test Feed", FeedURL: srv.URL, Type: models.SourceTypeRSS, Enabled: true,
	})
	store.existing["https://feed.test/articles/1"] = true

	ing := New(store, 5*time.Second, "test-agent", logger.NewNopLogger())
	summary := ing.Run(context.Background())

	assert.Equal(t, 1, summary.Fetched)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, "https://feed.test/articles/2", store.inserted[0].URL)
}

func TestRun_SecondRunSkipsEverything(t *testing.T) {
	srv := serveFeed(t, rssTemplate)

	store := newFakeStore(models.NewsSource{
		ID: "src-1", Name: "Test Feed", FeedURL: srv.URL, Type: models.SourceTypeRSS, Enabled: true,
	})

	ing := New(store, 5*time.Second, "test-agent", logger.NewNopLogger())
	first := ing.Run(context.Background())
	second := ing.Run(context.Background())

	assert.Equal(t, 2, first.Fetched)
	assert.Equal(t, 0, second.Fetched)
	assert.Equal(t, 2, second.Skipped)
}

func TestRun_ParseFailureRecordedAndRunContinues(t *testing.T) {
	broken := serveFeed(t, "this is not xml")
	good := serveFeed(t, rssTemplate)

	store := newFakeStore(
		models.NewsSource{ID: "bad", Name: "Broken Feed", FeedURL: broken.URL, Type: models.SourceTypeRSS, Enabled: true},
		models.NewsSource{ID: "good", Name: "Test Feed", FeedURL: good.URL, Type: models.SourceTypeRSS, Enabled: true},
	)

	ing := New(store, 5*time.Second, "test-agent", logger.NewNopLogger())
	summary := ing.Run(context.Background())

	assert.Equal(t, 2, summary.Fetched)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "Broken Feed")

	// Broken source is skipped before stamping; good one is stamped
	assert.NotContains(t, store.stamped, "bad")
	assert.Contains(t, store.stamped, "good")
}

func TestRun_SkipsNonRSSSources(t *testing.T) {
	store := newFakeStore(models.NewsSource{
		ID: "api-1", Name: "API Source", FeedURL: "https://api.test", Type: models.SourceTypeAPI, Enabled: true,
	})

	ing := New(store, time.Second, "test-agent", logger.NewNopLogger())
	summary := ing.Run(context.Background())

	assert.Equal(t, 0, summary.Fetched)
	assert.Empty(t, summary.Errors)
	assert.Empty(t, store.stamped)
}

func TestRun_InsertErrorRecordedPerItem(t *testing.T) {
	srv := serveFeed(t, rssTemplate)

	store := newFakeStore(models.NewsSource{
		ID: "src-1", Name: "Test Feed", FeedURL: srv.URL, Type: models.SourceTypeRSS, Enabled: true,
	})
	store.insertErr = fmt.Errorf("disk full")

	ing := New(store, 5*time.Second, "test-agent", logger.NewNopLogger())
	summary := ing.Run(context.Background())

	assert.Equal(t, 0, summary.Fetched)
	assert.Len(t, summary.Errors, 2)

	// Failures do not prevent the last_fetched stamp
	assert.Contains(t, store.stamped, "src-1")
}
