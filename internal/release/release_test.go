package release

import (
	"testing"

	"github.com/wingbank/appconfig/internal/domain"
)

func TestEvaluate(t *testing.T) {
	latest := domain.AppRelease{Version: "2.3.0", ForceUpdate: true, MinOSVersion: "13.0"}
	cases := []struct {
		name   string
		client string
		needed bool
		forced bool
	}{
		{"up to date", "2.3.0", false, false},
		{"newer than latest", "2.4.0", false, false},
		{"outdated", "2.2.9", true, true},
		{"garbage version", "not-a-version", true, true},
		{"empty version", "", true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(latest, tc.client)
			if got.UpdateNeeded != tc.needed || got.ForceUpdate != tc.forced {
				t.Errorf("Evaluate(%q) = needed=%v forced=%v, want needed=%v forced=%v",
					tc.client, got.UpdateNeeded, got.ForceUpdate, tc.needed, tc.forced)
			}
			if got.LatestVersion != "2.3.0" {
				t.Errorf("latest=%q", got.LatestVersion)
			}
		})
	}
}

func TestEvaluateSoftUpdate(t *testing.T) {
	latest := domain.AppRelease{Version: "1.1.0", ForceUpdate: false}
	got := Evaluate(latest, "1.0.0")
	if !got.UpdateNeeded || got.ForceUpdate {
		t.Fatalf("got %+v, want soft update", got)
	}
}

func TestEvaluateBadReleaseRow(t *testing.T) {
	got := Evaluate(domain.AppRelease{Version: "latest"}, "1.0.0")
	if got.UpdateNeeded || got.ForceUpdate {
		t.Fatalf("unparseable release version must not block clients: %+v", got)
	}
}
