package papers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"daily-paper-bot/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return client, srv
}

func TestFetchDailyFallsBackTwoDays(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	good := now.AddDate(0, 0, -2).Format("2006-01-02")

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("date") != good {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("<html>listing</html>"))
	}))

	day, content, err := client.FetchDaily(context.Background(), now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if day.Format("2006-01-02") != good {
		t.Fatalf("expected fallback day %s, got %s", good, day.Format("2006-01-02"))
	}
	if content == "" {
		t.Fatal("expected listing content")
	}
}

func TestFetchDailyNoListing(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
	}))

	_, _, err := client.FetchDaily(context.Background(), time.Now())
	if err != domain.ErrNoListing {
		t.Fatalf("expected ErrNoListing, got %v", err)
	}
	if requests != 3 {
		t.Fatalf("expected 3 attempts, got %d", requests)
	}
}

func TestParseListingExtractsEntriesInOrder(t *testing.T) {
	listing := `<html><body>
<article><h3><a href="/papers/111">Paper One</a></h3></article>
<article><h3><a href="/papers/222">Paper Two</a></h3></article>
<article><div>no heading</div></article>
</body></html>`

	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/papers/111":
			_, _ = w.Write([]byte(`<html><p class="text-gray-700 dark:text-gray-400">First   abstract
text.</p></html>`))
		case "/papers/222":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	entries, err := client.ParseListing(context.Background(), listing)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Title != "Paper One" || entries[1].Title != "Paper Two" {
		t.Fatalf("expected document order, got %q then %q", entries[0].Title, entries[1].Title)
	}
	if entries[0].URL != srv.URL+"/papers/111" {
		t.Fatalf("expected absolute detail url, got %q", entries[0].URL)
	}
	if entries[0].Abstract != "First abstract text." {
		t.Fatalf("expected collapsed abstract, got %q", entries[0].Abstract)
	}
	if entries[1].Abstract != AbstractPlaceholder {
		t.Fatalf("expected placeholder for failed detail fetch, got %q", entries[1].Abstract)
	}
}

func TestParseListingMissingAbstractElement(t *testing.T) {
	listing := `<article><h3><a href="/papers/333">Paper Three</a></h3></article>`
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><p class="other">not the abstract</p></html>`))
	}))

	entries, err := client.ParseListing(context.Background(), listing)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Abstract != AbstractPlaceholder {
		t.Fatalf("expected placeholder, got %q", entries[0].Abstract)
	}
}
