package update

import (
	"html"
	"strings"

	"daily-paper-bot/internal/domain"
)

// FormatNotification renders one paper for a subscriber: bold title,
// blockquoted summary in the subscriber's language, bare detail URL.
func FormatNotification(paper domain.Paper, lang domain.Language) string {
	var b strings.Builder
	b.WriteString("<b>" + html.EscapeString(paper.Title) + "</b>\n\n")
	if summary := strings.TrimSpace(paper.Summary(lang)); summary != "" {
		b.WriteString("<blockquote>" + html.EscapeString(summary) + "</blockquote>\n\n")
	}
	b.WriteString(paper.URL)
	return strings.TrimSpace(b.String())
}
