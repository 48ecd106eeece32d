package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNoListing reports that no listing could be fetched within the day window.
// It is an absence signal, not a failure: the cycle logs it and moves on.
var ErrNoListing = errors.New("no listing found")

// SubscriberRepo manages chat preferences.
type SubscriberRepo interface {
	// EnsureSubscriber creates the chat with default preferences if it does
	// not exist yet. Calling it for a known chat is a no-op.
	EnsureSubscriber(ctx context.Context, chatID int64) error
	UpdateLanguage(ctx context.Context, chatID int64, lang Language) error
	UpdateCategories(ctx context.Context, chatID int64, categories []Category) error
	ListSubscribers(ctx context.Context) ([]Subscriber, error)
}

// PaperRepo manages processed paper records.
type PaperRepo interface {
	PaperExists(ctx context.Context, title string) (bool, error)
	// InsertPaper persists a record once per title. Inserting a known title
	// is a no-op so concurrent discovery cannot duplicate records.
	InsertPaper(ctx context.Context, paper Paper) error
}

// ListingSource retrieves the daily papers listing and its entries.
type ListingSource interface {
	// FetchDaily walks back up to three calendar days starting from now and
	// returns the day whose listing was retrieved together with the raw page,
	// or ErrNoListing when every attempt failed.
	FetchDaily(ctx context.Context, now time.Time) (time.Time, string, error)
	// ParseListing extracts entries in document order, fetching each detail
	// page for its abstract.
	ParseListing(ctx context.Context, content string) ([]ListingEntry, error)
}

// Enricher runs the model-backed transformations on one paper. Failures are
// degraded, never propagated: the pipeline must always reach the insert.
type Enricher interface {
	Summarize(ctx context.Context, abstract string) TextResult
	Translate(ctx context.Context, text string) TextResult
	Categorize(ctx context.Context, title, summary string) CategoryResult
}

// MessageSender delivers one rendered message to a chat.
type MessageSender interface {
	SendHTML(chatID int64, text string) error
}
