package localized

import (
	"context"
	"strings"
	"sync"
)

// Loader fetches the active language list from its source of truth, typically
// the app-languages endpoint or table.
type Loader interface {
	Load(ctx context.Context) ([]Language, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) ([]Language, error)

func (f LoaderFunc) Load(ctx context.Context) ([]Language, error) { return f(ctx) }

// Registry caches the active language set behind a load-once snapshot with
// manual refresh. A failed or empty load installs the fallback set instead of
// surfacing an error; there is no retry. Concurrent loads may race and the
// last write wins.
type Registry struct {
	loader Loader

	// OnFallback is called whenever a refresh installs the fallback set.
	// Set before first use; typically a metrics counter.
	OnFallback func()

	mu     sync.RWMutex
	langs  []Language
	loaded bool
}

// NewRegistry returns a registry backed by loader.
func NewRegistry(loader Loader) *Registry {
	return &Registry{loader: loader}
}

// Snapshot returns the active language set, loading it on first use. The
// returned slice is a copy and stays valid across later refreshes.
func (r *Registry) Snapshot(ctx context.Context) []Language {
	r.mu.RLock()
	if r.loaded {
		langs := copyLangs(r.langs)
		r.mu.RUnlock()
		return langs
	}
	r.mu.RUnlock()
	return r.Refresh(ctx)
}

// Refresh reloads the language list and returns the new snapshot. On load
// failure or an empty active set the fallback languages are installed.
func (r *Registry) Refresh(ctx context.Context) []Language {
	langs, err := r.loader.Load(ctx)
	fell := false
	if err != nil || len(langs) == 0 {
		langs = Fallback()
		fell = true
	}
	langs = Normalize(langs)
	if len(langs) == 0 {
		langs = Fallback()
		fell = true
	}
	if fell && r.OnFallback != nil {
		r.OnFallback()
	}
	r.mu.Lock()
	r.langs = langs
	r.loaded = true
	r.mu.Unlock()
	return copyLangs(langs)
}

// Normalize lower-cases language codes and drops empty or duplicate entries,
// keeping the first occurrence. Codes are case-insensitive, so two entries
// differing only in case would otherwise derive colliding field keys.
func Normalize(langs []Language) []Language {
	out := make([]Language, 0, len(langs))
	seen := make(map[string]struct{}, len(langs))
	for _, l := range langs {
		code := strings.ToLower(strings.TrimSpace(l.Code))
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, Language{Code: code, Label: l.Label})
	}
	return out
}

func copyLangs(langs []Language) []Language {
	out := make([]Language, len(langs))
	copy(out, langs)
	return out
}
