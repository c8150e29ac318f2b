package view

import (
	"strings"
	"testing"
)

func TestSuggestFooterHidesApplyWithoutAccepted(t *testing.T) {
	styles := ModalStyles{}

	none := SuggestFooter(0, styles)
	if !strings.Contains(none, "[m] Amend") || strings.Contains(none, "[Enter/a] Apply") {
		t.Fatalf("expected amend-only footer, got %q", none)
	}

	some := SuggestFooter(2, styles)
	if !strings.Contains(some, "[Enter/a] Apply") {
		t.Fatalf("expected apply footer when suggestions were accepted, got %q", some)
	}
}

func TestCoverageFooterOffersReviewOnce(t *testing.T) {
	styles := ModalStyles{}
	if got := CoverageFooter(false, styles); !strings.Contains(got, "[r] Review") {
		t.Fatalf("expected review button, got %q", got)
	}
	if got := CoverageFooter(true, styles); strings.Contains(got, "[r] Review") {
		t.Fatalf("expected no review button once insight is shown, got %q", got)
	}
}
