package domain

import "testing"

func TestWantsAny(t *testing.T) {
	sub := Subscriber{Categories: []Category{CategoryLLM}}

	if !sub.WantsAny([]Category{CategoryLLM, CategoryRobotics}) {
		t.Fatal("expected overlap with LLM+Robotics paper")
	}
	if sub.WantsAny([]Category{CategoryRobotics}) {
		t.Fatal("expected no overlap with Robotics-only paper")
	}
	if sub.WantsAny(nil) {
		t.Fatal("papers without categories must never match")
	}
}

func TestSummarySelectsLanguage(t *testing.T) {
	paper := Paper{SummaryEN: "english", SummaryKO: "korean"}
	if paper.Summary(LangKO) != "korean" {
		t.Fatalf("expected korean summary, got %q", paper.Summary(LangKO))
	}
	if paper.Summary(LangEN) != "english" {
		t.Fatalf("expected english summary, got %q", paper.Summary(LangEN))
	}
}

func TestParseCategory(t *testing.T) {
	if _, ok := ParseCategory("Computer vision"); !ok {
		t.Fatal("expected known category to parse")
	}
	if _, ok := ParseCategory("computer vision"); ok {
		t.Fatal("labels are matched exactly")
	}
	if _, ok := ParseCategory("Astrology"); ok {
		t.Fatal("unknown label must not parse")
	}
}

func TestParseLanguage(t *testing.T) {
	if lang, ok := ParseLanguage("KO"); !ok || lang != LangKO {
		t.Fatalf("expected KO, got %v %v", lang, ok)
	}
	if _, ok := ParseLanguage("FR"); ok {
		t.Fatal("unknown language must not parse")
	}
}
