// Package release decides whether a mobile client must update before using
// the app.
package release

import (
	"github.com/Masterminds/semver/v3"

	"github.com/wingbank/appconfig/internal/domain"
)

// Check is the update decision handed to mobile clients.
type Check struct {
	LatestVersion string `json:"latestVersion"`
	UpdateNeeded  bool   `json:"updateNeeded"`
	ForceUpdate   bool   `json:"forceUpdate"`
	MinOsVersion  string `json:"minOsVersion,omitempty"`
	ReleaseNotes  string `json:"releaseNotes,omitempty"`
}

// Evaluate compares the client's app version against the latest release.
// Unparseable client versions are treated as outdated: a client that cannot
// report its version sanely should be pushed through the store.
func Evaluate(latest domain.AppRelease, clientVersion string) Check {
	c := Check{
		LatestVersion: latest.Version,
		MinOsVersion:  latest.MinOSVersion,
		ReleaseNotes:  latest.ReleaseNotes,
	}
	lv, err := semver.NewVersion(latest.Version)
	if err != nil {
		// bad data in the release row; never block clients on it
		return c
	}
	cv, err := semver.NewVersion(clientVersion)
	if err != nil {
		c.UpdateNeeded = true
		c.ForceUpdate = latest.ForceUpdate
		return c
	}
	if cv.LessThan(lv) {
		c.UpdateNeeded = true
		c.ForceUpdate = latest.ForceUpdate
	}
	return c
}
