package domain

import "time"

// Language selects which summary field a subscriber receives.
type Language string

const (
	// LangEN is the primary summary language and the default for new subscribers.
	LangEN Language = "EN"
	// LangKO selects the translated summary.
	LangKO Language = "KO"
)

// Languages lists the supported summary languages.
var Languages = []Language{LangKO, LangEN}

// Category is a topical label assigned to papers and chosen by subscribers.
type Category string

const (
	CategoryLLM            Category = "LLM"
	CategoryMultimodal     Category = "Multimodal"
	CategoryComputerVision Category = "Computer vision"
	CategoryReinforcement  Category = "Reinforcement learning"
	CategoryRobotics       Category = "Robotics"
	CategoryRecommendation Category = "Recommendation"
)

// Categories lists the fixed category enumeration in display order.
var Categories = []Category{
	CategoryLLM,
	CategoryMultimodal,
	CategoryComputerVision,
	CategoryReinforcement,
	CategoryRobotics,
	CategoryRecommendation,
}

// ParseLanguage matches raw user input against the supported languages.
func ParseLanguage(raw string) (Language, bool) {
	for _, lang := range Languages {
		if string(lang) == raw {
			return lang, true
		}
	}
	return "", false
}

// ParseCategory matches a single label against the fixed enumeration.
func ParseCategory(raw string) (Category, bool) {
	for _, cat := range Categories {
		if string(cat) == raw {
			return cat, true
		}
	}
	return "", false
}

// Subscriber is a chat with stored delivery preferences.
type Subscriber struct {
	ChatID     int64
	Lang       Language
	Categories []Category
	CreatedAt  time.Time
}

// WantsAny reports whether the subscriber's filter intersects the given labels.
// Papers without categories never match.
func (s Subscriber) WantsAny(categories []Category) bool {
	for _, paperCat := range categories {
		for _, subCat := range s.Categories {
			if paperCat == subCat {
				return true
			}
		}
	}
	return false
}

// Paper is one enriched listing entry. Title is the dedupe key: a title is
// enriched and inserted at most once, and records are immutable afterwards.
type Paper struct {
	Title       string
	URL         string
	Abstract    string
	PublishDate time.Time
	SummaryEN   string
	SummaryKO   string
	Categories  []Category
}

// Summary returns the subscriber-facing summary for the given language.
func (p Paper) Summary(lang Language) string {
	if lang == LangKO {
		return p.SummaryKO
	}
	return p.SummaryEN
}

// ListingEntry is one parsed paper entry before enrichment.
type ListingEntry struct {
	Title    string
	URL      string
	Abstract string
}

// TextResult is the outcome of a single model text operation. Degraded marks
// a failed call whose Text fell back to the fixed placeholder, so callers can
// tell "model said X" from "model failed" without matching placeholder strings.
type TextResult struct {
	Text     string
	Degraded bool
}

// CategoryResult is the outcome of a classification call. A degraded result
// carries no categories and therefore matches no subscriber filter.
type CategoryResult struct {
	Categories []Category
	Degraded   bool
}
