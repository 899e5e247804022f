package localized

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var translationSpec = AttributeSpec{
	Scheme:  Concat,
	Attrs:   []string{"Value"},
	Leading: []Column{{Key: "key", Header: "KEY"}},
	Trailing: []Column{
		{Key: "module", Header: "MODULE"},
		{Key: "platform", Header: "PLATFORM"},
	},
	Defaults: map[string]string{"platform": "ALL"},
}

var notificationSpec = AttributeSpec{
	Scheme:   Prefixed,
	Attrs:    []string{"title", "body"},
	Leading:  []Column{{Key: "code", Header: "CODE"}},
	Trailing: []Column{{Key: "type", Header: "TYPE"}, {Key: "status", Header: "STATUS"}},
	Defaults: map[string]string{"type": "PUSH", "status": "ACTIVE"},
}

var twoLangs = []Language{{Code: "en", Label: "English"}, {Code: "km", Label: "Khmer"}}

func TestBuildColumnsConcat(t *testing.T) {
	want := []Column{
		{Key: "key", Header: "KEY"},
		{Key: "enValue", Header: "ENGLISH"},
		{Key: "kmValue", Header: "KHMER"},
		{Key: "module", Header: "MODULE"},
		{Key: "platform", Header: "PLATFORM"},
	}
	if diff := cmp.Diff(want, BuildColumns(twoLangs, translationSpec)); diff != "" {
		t.Fatalf("columns diff (-want +got)\n%s", diff)
	}
}

func TestBuildColumnsPrefixed(t *testing.T) {
	got := BuildColumns(twoLangs, notificationSpec)
	wantKeys := []string{"code", "titleEn", "bodyEn", "titleKm", "bodyKm", "type", "status"}
	if len(got) != len(wantKeys) {
		t.Fatalf("got %d columns, want %d", len(got), len(wantKeys))
	}
	for i, k := range wantKeys {
		if got[i].Key != k {
			t.Errorf("column %d key = %q, want %q", i, got[i].Key, k)
		}
	}
	if got[1].Header != "TITLE ENGLISH" || got[4].Header != "BODY KHMER" {
		t.Errorf("headers = %q, %q", got[1].Header, got[4].Header)
	}
}

func TestBuildColumnsStable(t *testing.T) {
	a := BuildColumns(twoLangs, notificationSpec)
	b := BuildColumns(twoLangs, notificationSpec)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("columns shuffled across builds (-first +second)\n%s", diff)
	}
}

func TestBuildEmptyForm(t *testing.T) {
	want := FormState{
		"key":      "",
		"enValue":  "",
		"kmValue":  "",
		"module":   "",
		"platform": "ALL",
	}
	if diff := cmp.Diff(want, BuildEmptyForm(twoLangs, translationSpec)); diff != "" {
		t.Fatalf("form diff (-want +got)\n%s", diff)
	}
}

// Every key the column builder can reference must exist in the empty form for
// the same inputs, and the form must not invent keys no column renders.
func TestSchemaLockstep(t *testing.T) {
	for _, spec := range []AttributeSpec{translationSpec, notificationSpec} {
		for _, langs := range [][]Language{nil, Fallback(), twoLangs,
			{{Code: "en", Label: "English"}, {Code: "km", Label: "Khmer"}, {Code: "th", Label: "Thai"}}} {
			cols := BuildColumns(langs, spec)
			form := BuildEmptyForm(langs, spec)
			if len(cols) != len(form) {
				t.Fatalf("%v/%d langs: %d columns vs %d form keys", spec.Scheme, len(langs), len(cols), len(form))
			}
			for _, c := range cols {
				if _, ok := form[c.Key]; !ok {
					t.Errorf("%v: column %q missing from empty form", spec.Scheme, c.Key)
				}
			}
		}
	}
}

// The builder must tolerate a zero-language set and be rebuilt wholesale once
// the real registry resolves.
func TestBuildColumnsZeroLanguages(t *testing.T) {
	got := BuildColumns(nil, translationSpec)
	want := append(append([]Column{}, translationSpec.Leading...), translationSpec.Trailing...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("zero-language columns diff (-want +got)\n%s", diff)
	}
}
