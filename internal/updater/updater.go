// Package updater checks GitHub Releases for a newer ollama-tray version.
package updater

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/seanGSISG/ollama-tray/internal/buildinfo"
)

const releasesURL = "https://api.github.com/repos/seanGSISG/ollama-tray/releases/latest"

// ReleaseInfo contains information about a GitHub release.
type ReleaseInfo struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Result contains the result of an update check.
type Result struct {
	Available      bool
	CurrentVersion string
	LatestVersion  string
	ReleaseURL     string
}

// CheckForUpdate queries the GitHub Releases API for a newer version.
func CheckForUpdate() (*Result, error) {
	req, err := http.NewRequest(http.MethodGet, releasesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "ollama-tray/"+buildinfo.Version)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch releases: %w", err)
	}
	defer resp.Body.Close()

	result := &Result{CurrentVersion: buildinfo.Version}

	if resp.StatusCode == http.StatusNotFound {
		// No releases published yet
		return result, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("releases API returned HTTP %d", resp.StatusCode)
	}

	var release ReleaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}

	result.LatestVersion = release.TagName
	result.ReleaseURL = release.HTMLURL
	result.Available = isNewer(buildinfo.Version, release.TagName)
	return result, nil
}

// isNewer reports whether latest is a strictly newer semver than current.
// Non-semver versions (like the "dev" default) never trigger an update.
func isNewer(current, latest string) bool {
	cur, err := parseSemver(current)
	if err != nil {
		return false
	}
	lat, err := parseSemver(latest)
	if err != nil {
		return false
	}
	return cur.lessThan(lat)
}
