package localized

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValueSetFlatten(t *testing.T) {
	vs := ValueSet{}
	vs.Set("en", "Value", "Hello")
	vs.Set("km", "Value", "សួស្តី")
	want := map[string]string{"enValue": "Hello", "kmValue": "សួស្តី"}
	if diff := cmp.Diff(want, vs.Flatten(Concat)); diff != "" {
		t.Fatalf("flatten diff (-want +got)\n%s", diff)
	}
}

func TestValueSetFlattenPrefixed(t *testing.T) {
	vs := ValueSet{}
	vs.Set("en", "title", "Welcome")
	vs.Set("en", "body", "Hi there")
	vs.Set("km", "title", "ស្វាគមន៍")
	want := map[string]string{"titleEn": "Welcome", "bodyEn": "Hi there", "titleKm": "ស្វាគមន៍"}
	if diff := cmp.Diff(want, vs.Flatten(Prefixed)); diff != "" {
		t.Fatalf("flatten diff (-want +got)\n%s", diff)
	}
}

func TestCollect(t *testing.T) {
	flat := map[string]any{
		"code":     "WELCOME_PUSH",
		"type":     "PUSH",
		"titleEn":  "Welcome",
		"bodyEn":   "Hi there",
		"titleKm":  "ស្វាគមន៍",
		"ignored1": nil,
	}
	got := Collect(flat, []string{"title", "body"}, Prefixed)
	want := ValueSet{
		"en": {"title": "Welcome", "body": "Hi there"},
		"km": {"title": "ស្វាគមន៍"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("collect diff (-want +got)\n%s", diff)
	}
}

// A payload may carry values for languages the registry no longer lists; they
// are collected and persisted rather than silently stripped.
func TestCollectKeepsUnknownLanguages(t *testing.T) {
	flat := map[string]any{"key": "app.title", "enValue": "Hello", "thValue": "replay"}
	got := Collect(flat, []string{"Value"}, Concat)
	if got.Get("th", "Value") != "replay" {
		t.Fatalf("thValue dropped: %v", got)
	}
}

func TestValueSetGetMissing(t *testing.T) {
	var vs ValueSet
	if vs.Get("en", "Value") != "" {
		t.Fatal("nil ValueSet should read as empty")
	}
}
