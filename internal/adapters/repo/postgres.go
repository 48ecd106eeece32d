package repo

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"daily-paper-bot/internal/domain"
	"daily-paper-bot/internal/infra/metrics"
)

// Postgres implements the subscriber and paper repositories on pgxpool.
type Postgres struct {
	pool *pgxpool.Pool
}

var (
	_ domain.SubscriberRepo = (*Postgres)(nil)
	_ domain.PaperRepo      = (*Postgres)(nil)
)

// NewPostgres creates the store adapter.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) connCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, 5*time.Second)
}

// EnsureSchema bootstraps the two tables. The unique index on paper titles is
// what makes InsertPaper an atomic insert-if-absent.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS subscribers (
			chat_id BIGINT PRIMARY KEY,
			lang TEXT NOT NULL DEFAULT 'EN',
			categories TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			title TEXT NOT NULL,
			publish_date DATE,
			summary_en TEXT NOT NULL DEFAULT '',
			summary_ko TEXT NOT NULL DEFAULT '',
			categories TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS papers_title_key ON papers (title)`,
	}
	for _, stmt := range statements {
		start := time.Now()
		_, err := p.pool.Exec(ctx, stmt)
		metrics.ObserveNetworkRequest("postgres", "ensure_schema", "schema", start, err)
		if err != nil {
			return err
		}
	}
	return nil
}

// EnsureSubscriber implements domain.SubscriberRepo. New chats get the
// default language and the full category set; existing chats are untouched.
func (p *Postgres) EnsureSubscriber(ctx context.Context, chatID int64) error {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	start := time.Now()
	_, err := p.pool.Exec(ctx, `
INSERT INTO subscribers (chat_id, lang, categories)
VALUES ($1, $2, $3)
ON CONFLICT (chat_id) DO NOTHING
`, chatID, string(domain.LangEN), joinCategories(domain.Categories))
	metrics.ObserveNetworkRequest("postgres", "subscribers_insert", "subscribers", start, err)
	return err
}

// UpdateLanguage implements domain.SubscriberRepo.
func (p *Postgres) UpdateLanguage(ctx context.Context, chatID int64, lang domain.Language) error {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	start := time.Now()
	_, err := p.pool.Exec(ctx, `
UPDATE subscribers SET lang = $2 WHERE chat_id = $1
`, chatID, string(lang))
	metrics.ObserveNetworkRequest("postgres", "subscribers_update_lang", "subscribers", start, err)
	return err
}

// UpdateCategories implements domain.SubscriberRepo.
func (p *Postgres) UpdateCategories(ctx context.Context, chatID int64, categories []domain.Category) error {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	start := time.Now()
	_, err := p.pool.Exec(ctx, `
UPDATE subscribers SET categories = $2 WHERE chat_id = $1
`, chatID, joinCategories(categories))
	metrics.ObserveNetworkRequest("postgres", "subscribers_update_categories", "subscribers", start, err)
	return err
}

// ListSubscribers implements domain.SubscriberRepo.
func (p *Postgres) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	start := time.Now()
	rows, err := p.pool.Query(ctx, `
SELECT chat_id, lang, categories, created_at FROM subscribers ORDER BY created_at
`)
	metrics.ObserveNetworkRequest("postgres", "subscribers_list", "subscribers", start, err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.Subscriber
	for rows.Next() {
		var (
			sub        domain.Subscriber
			lang       string
			categories string
		)
		if err := rows.Scan(&sub.ChatID, &lang, &categories, &sub.CreatedAt); err != nil {
			return nil, err
		}
		sub.Lang = domain.Language(lang)
		sub.Categories = splitCategories(categories)
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// PaperExists implements domain.PaperRepo.
func (p *Postgres) PaperExists(ctx context.Context, title string) (bool, error) {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	start := time.Now()
	var exists bool
	err := p.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM papers WHERE title = $1)
`, title).Scan(&exists)
	metrics.ObserveNetworkRequest("postgres", "papers_exists", "papers", start, err)
	return exists, err
}

// InsertPaper implements domain.PaperRepo. A conflicting title is silently
// skipped, which keeps repeated or racing cycles from duplicating records.
func (p *Postgres) InsertPaper(ctx context.Context, paper domain.Paper) error {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	start := time.Now()
	_, err := p.pool.Exec(ctx, `
INSERT INTO papers (title, publish_date, summary_en, summary_ko, categories)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (title) DO NOTHING
`, paper.Title, paper.PublishDate, paper.SummaryEN, paper.SummaryKO, joinCategories(paper.Categories))
	metrics.ObserveNetworkRequest("postgres", "papers_insert", "papers", start, err)
	return err
}

func joinCategories(categories []domain.Category) string {
	parts := make([]string, 0, len(categories))
	for _, cat := range categories {
		parts = append(parts, string(cat))
	}
	return strings.Join(parts, ",")
}

func splitCategories(raw string) []domain.Category {
	var categories []domain.Category
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		categories = append(categories, domain.Category(trimmed))
	}
	return categories
}
