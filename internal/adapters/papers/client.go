package papers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"daily-paper-bot/internal/domain"
	"daily-paper-bot/internal/infra/metrics"
)

// AbstractPlaceholder replaces an abstract that could not be retrieved.
const AbstractPlaceholder = "Abstract not found."

const fetchDayWindow = 3

// Client fetches and parses the daily papers listing.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	log     zerolog.Logger
}

var _ domain.ListingSource = (*Client)(nil)

// NewClient creates the listing client. baseURL is the site root, e.g.
// https://huggingface.co; the listing lives under /papers.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: parsed,
		log:     logger,
	}, nil
}

// FetchDaily retrieves the listing page, walking back one calendar day per
// failed attempt. The walk always starts from the supplied current moment,
// matching the service this feed mirrors. Returns the day that answered
// together with the page body, or ErrNoListing.
func (c *Client) FetchDaily(ctx context.Context, now time.Time) (time.Time, string, error) {
	day := now
	for attempt := 0; attempt < fetchDayWindow; attempt++ {
		dayStr := day.Format("2006-01-02")
		listingURL := c.baseURL.JoinPath("papers")
		q := listingURL.Query()
		q.Set("date", dayStr)
		listingURL.RawQuery = q.Encode()

		body, err := c.get(ctx, listingURL.String(), "listing")
		if err == nil {
			c.log.Info().Str("date", dayStr).Int("length", len(body)).Msg("listing fetched")
			return day, body, nil
		}
		if ctx.Err() != nil {
			return time.Time{}, "", ctx.Err()
		}
		c.log.Warn().Err(err).Str("date", dayStr).Msg("listing fetch failed")
		day = day.AddDate(0, 0, -1)
	}
	return time.Time{}, "", domain.ErrNoListing
}

// ParseListing extracts (title, url, abstract) entries in document order.
// Each entry costs one extra round-trip for its abstract; a failed abstract
// fetch degrades to the fixed placeholder instead of failing the batch.
func (c *Client) ParseListing(ctx context.Context, content string) ([]domain.ListingEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	var entries []domain.ListingEntry
	doc.Find("article").Each(func(_ int, article *goquery.Selection) {
		heading := article.Find("h3").First()
		if heading.Length() == 0 {
			return
		}
		title := strings.TrimSpace(heading.Text())
		if title == "" {
			return
		}
		href, ok := heading.Find("a").First().Attr("href")
		if !ok {
			return
		}
		detailURL := c.resolve(href)
		entries = append(entries, domain.ListingEntry{
			Title:    title,
			URL:      detailURL,
			Abstract: c.fetchAbstract(ctx, detailURL),
		})
	})
	c.log.Info().Int("entries", len(entries)).Msg("listing parsed")
	return entries, nil
}

// fetchAbstract pulls the detail page and extracts the abstract paragraph.
func (c *Client) fetchAbstract(ctx context.Context, detailURL string) string {
	body, err := c.get(ctx, detailURL, "abstract")
	if err != nil {
		c.log.Warn().Err(err).Str("url", detailURL).Msg("abstract fetch failed")
		return AbstractPlaceholder
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return AbstractPlaceholder
	}
	paragraph := doc.Find("p.text-gray-700").First()
	if paragraph.Length() == 0 {
		return AbstractPlaceholder
	}
	abstract := strings.Join(strings.Fields(paragraph.Text()), " ")
	if abstract == "" {
		return AbstractPlaceholder
	}
	return abstract
}

func (c *Client) resolve(href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return c.baseURL.ResolveReference(ref).String()
}

func (c *Client) get(ctx context.Context, rawURL, operation string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveNetworkRequest("papers", operation, c.baseURL.Host, start, err)
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected status %d", resp.StatusCode)
		metrics.ObserveNetworkRequest("papers", operation, c.baseURL.Host, start, err)
		return "", err
	}
	body, err := io.ReadAll(resp.Body)
	metrics.ObserveNetworkRequest("papers", operation, c.baseURL.Host, start, err)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
