package localized

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHydrateCompleteness(t *testing.T) {
	entity := map[string]any{
		"key":      "app.title",
		"enValue":  "Hello",
		"kmValue":  "សួស្តី",
		"module":   "GENERAL",
		"platform": "ALL",
	}
	got := Hydrate(entity, twoLangs, translationSpec)
	want := FormState{
		"key":      "app.title",
		"enValue":  "Hello",
		"kmValue":  "សួស្តី",
		"module":   "GENERAL",
		"platform": "ALL",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hydrate diff (-want +got)\n%s", diff)
	}
}

// An entity that predates a newly added language keeps the empty default for
// that language's key instead of dropping it or erroring.
func TestHydrateDegradation(t *testing.T) {
	threeLangs := append(copyLangs(twoLangs), Language{Code: "th", Label: "Thai"})
	entity := map[string]any{"key": "app.title", "enValue": "Hello", "kmValue": "សួស្តី"}
	got := Hydrate(entity, threeLangs, translationSpec)
	if v, ok := got["thValue"]; !ok || v != "" {
		t.Fatalf("thValue = %q, present=%v; want empty default", v, ok)
	}
	if got["enValue"] != "Hello" {
		t.Fatalf("enValue = %q", got["enValue"])
	}
}

// Values for languages no longer active are hidden from the form, not copied.
func TestHydrateIgnoresInactiveLanguageValues(t *testing.T) {
	entity := map[string]any{"key": "app.title", "enValue": "Hello", "thValue": "stale"}
	got := Hydrate(entity, twoLangs, translationSpec)
	if _, ok := got["thValue"]; ok {
		t.Fatalf("stale thValue leaked into form: %v", got)
	}
}

func TestHydrateNilEntityIsCreateMode(t *testing.T) {
	got := Hydrate(nil, twoLangs, notificationSpec)
	want := BuildEmptyForm(twoLangs, notificationSpec)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("create-mode diff (-want +got)\n%s", diff)
	}
}

func TestHydrateSkipsNullValues(t *testing.T) {
	entity := map[string]any{"key": "app.title", "enValue": nil}
	got := Hydrate(entity, twoLangs, translationSpec)
	if got["enValue"] != "" {
		t.Fatalf("enValue = %q, want empty", got["enValue"])
	}
}

func TestFormStateClone(t *testing.T) {
	orig := BuildEmptyForm(twoLangs, translationSpec)
	clone := orig.Clone()
	clone["enValue"] = "edited"
	if orig["enValue"] != "" {
		t.Fatalf("clone aliases original: %v", orig)
	}
}
