package localized

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistrySnapshot(t *testing.T) {
	loads := 0
	r := NewRegistry(LoaderFunc(func(ctx context.Context) ([]Language, error) {
		loads++
		return []Language{{Code: "EN", Label: "English"}, {Code: "km", Label: "Khmer"}, {Code: "th", Label: "Thai"}}, nil
	}))
	want := []Language{{Code: "en", Label: "English"}, {Code: "km", Label: "Khmer"}, {Code: "th", Label: "Thai"}}
	got := r.Snapshot(context.Background())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot diff (-want +got)\n%s", diff)
	}
	r.Snapshot(context.Background())
	if loads != 1 {
		t.Fatalf("loads = %d, want 1", loads)
	}
}

func TestRegistryFallbackOnError(t *testing.T) {
	r := NewRegistry(LoaderFunc(func(ctx context.Context) ([]Language, error) {
		return nil, errors.New("connection refused")
	}))
	got := r.Snapshot(context.Background())
	if diff := cmp.Diff(Fallback(), got); diff != "" {
		t.Fatalf("fallback diff (-want +got)\n%s", diff)
	}
}

func TestRegistryFallbackHook(t *testing.T) {
	fails := true
	r := NewRegistry(LoaderFunc(func(ctx context.Context) ([]Language, error) {
		if fails {
			return nil, errors.New("connection refused")
		}
		return []Language{{Code: "en", Label: "English"}}, nil
	}))
	fallbacks := 0
	r.OnFallback = func() { fallbacks++ }
	r.Snapshot(context.Background())
	if fallbacks != 1 {
		t.Fatalf("fallbacks = %d, want 1", fallbacks)
	}
	fails = false
	r.Refresh(context.Background())
	if fallbacks != 1 {
		t.Fatalf("fallbacks after recovery = %d, want 1", fallbacks)
	}
}

func TestRegistryFallbackOnEmpty(t *testing.T) {
	r := NewRegistry(LoaderFunc(func(ctx context.Context) ([]Language, error) {
		return nil, nil
	}))
	got := r.Snapshot(context.Background())
	if diff := cmp.Diff(Fallback(), got); diff != "" {
		t.Fatalf("fallback diff (-want +got)\n%s", diff)
	}
}

func TestRegistryRefreshReplacesSnapshot(t *testing.T) {
	langs := []Language{{Code: "en", Label: "English"}}
	r := NewRegistry(LoaderFunc(func(ctx context.Context) ([]Language, error) {
		return langs, nil
	}))
	if got := r.Snapshot(context.Background()); len(got) != 1 {
		t.Fatalf("initial snapshot = %v", got)
	}
	langs = []Language{{Code: "en", Label: "English"}, {Code: "km", Label: "Khmer"}}
	if got := r.Refresh(context.Background()); len(got) != 2 {
		t.Fatalf("refreshed snapshot = %v", got)
	}
}

func TestRegistrySnapshotIsACopy(t *testing.T) {
	r := NewRegistry(LoaderFunc(func(ctx context.Context) ([]Language, error) {
		return []Language{{Code: "en", Label: "English"}, {Code: "km", Label: "Khmer"}}, nil
	}))
	got := r.Snapshot(context.Background())
	got[0] = Language{Code: "xx", Label: "Mutant"}
	again := r.Snapshot(context.Background())
	if again[0].Code != "en" {
		t.Fatalf("snapshot aliased registry state: %v", again)
	}
}

func TestNormalize(t *testing.T) {
	in := []Language{
		{Code: " EN ", Label: "English"},
		{Code: "en", Label: "English again"},
		{Code: "", Label: "nameless"},
		{Code: "KM", Label: "Khmer"},
	}
	want := []Language{{Code: "en", Label: "English"}, {Code: "km", Label: "Khmer"}}
	if diff := cmp.Diff(want, Normalize(in)); diff != "" {
		t.Fatalf("normalize diff (-want +got)\n%s", diff)
	}
}
