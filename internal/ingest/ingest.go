// Package ingest pulls external syndication feeds into the news store.
package ingest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/butlerian/directory/internal/logger"
	"github.com/butlerian/directory/internal/models"
)

// NewsStore is the slice of the news repository the ingestion run needs.
type NewsStore interface {
	ListEnabledSources(ctx context.Context) ([]models.NewsSource, error)
	ArticleExistsByURL(ctx context.Context, url string) (bool, error)
	InsertArticle(ctx context.Context, article *models.NewsArticle) error
	StampLastFetched(ctx context.Context, id string, fetchedAt time.Time) error
}

// Summary is what an ingestion run reports. The run itself never fails:
// per-source and per-item faults land in Errors as strings.
type Summary struct {
	Fetched int      `json:"fetched"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// Ingestor runs the sequential fetch-dedup-insert loop over enabled sources.
type Ingestor struct {
	store     NewsStore
	parser    *gofeed.Parser
	stripTags *bluemonday.Policy
	logger    logger.Logger
}

func New(store NewsStore, fetchTimeout time.Duration, userAgent string, log logger.Logger) *Ingestor {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: fetchTimeout}
	parser.UserAgent = userAgent

	return &Ingestor{
		store:     store,
		parser:    parser,
		stripTags: bluemonday.StrictPolicy(),
		logger:    log,
	}
}

// Run visits every enabled RSS source in order. A source that fails to fetch
// or parse is recorded and skipped; the run continues. Each visited source
// gets its last_fetched stamp even when some of its items failed.
func (i *Ingestor) Run(ctx context.Context) *Summary {
	summary := &Summary{}

	sources, err := i.store.ListEnabledSources(ctx)
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("list sources: %v", err))
		return summary
	}

	for _, source := range sources {
		if source.Type != models.SourceTypeRSS {
			continue
		}

		i.ingestSource(ctx, source, summary)
	}

	return summary
}

func (i *Ingestor) ingestSource(ctx context.Context, source models.NewsSource, summary *Summary) {
	feed, err := i.parser.ParseURLWithContext(source.FeedURL, ctx)
	if err != nil {
		i.logger.Warn("Feed fetch failed",
			logger.String("source", source.Name),
			logger.String("feed_url", source.FeedURL),
			logger.Error(err),
		)
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", source.Name, err))
		return
	}

	for _, item := range feed.Items {
		if err := i.ingestItem(ctx, source, item, summary); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", source.Name, err))
		}
	}

	if err := i.store.StampLastFetched(ctx, source.ID, time.Now()); err != nil {
		i.logger.Error("Failed to stamp source",
			logger.String("source_id", source.ID),
			logger.Error(err),
		)
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: stamp last_fetched: %v", source.Name, err))
	}

	i.logger.Info("Source ingested",
		logger.String("source", source.Name),
		logger.Int("items", len(feed.Items)),
	)
}

func (i *Ingestor) ingestItem(ctx context.Context, source models.NewsSource, item *gofeed.Item, summary *Summary) error {
	link := strings.TrimSpace(item.Link)
	if link == "" {
		return fmt.Errorf("item %q has no link", item.Title)
	}

	exists, err := i.store.ArticleExistsByURL(ctx, link)
	if err != nil {
		return fmt.Errorf("dedup check for %s: %w", link, err)
	}
	if exists {
		summary.Skipped++
		return nil
	}

	article := &models.NewsArticle{
		Title:       strings.TrimSpace(item.Title),
		Summary:     strings.TrimSpace(i.stripTags.Sanitize(item.Description)),
		URL:         link,
		Source:      source.Name,
		PublishedAt: publishedAt(item),
		Approved:    true,
		Featured:    false,
	}
	if imageURL := ExtractImageURL(item); imageURL != "" {
		article.ImageURL = &imageURL
	}

	if err := i.store.InsertArticle(ctx, article); err != nil {
		return fmt.Errorf("insert %s: %w", link, err)
	}

	summary.Fetched++
	return nil
}

// publishedAt resolves the item's publish date: the feed's published date,
// then its updated date, then the ingestion time.
func publishedAt(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Now()
}
