package handler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFeatureFlags(t *testing.T) {
	// only the exact string "true" switches a flag on
	configs := map[string]string{
		"feature.qrPayments":   "true",
		"feature.darkMode":     "false",
		"feature.newOnboard":   "TRUE",
		"support.phone":        "023123456",
		"feature.":             "true",
		"maintenance.stopTime": "22:00",
	}
	want := map[string]bool{
		"qrPayments": true,
		"darkMode":   false,
		"newOnboard": false,
	}
	if diff := cmp.Diff(want, featureFlags(configs)); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
}
