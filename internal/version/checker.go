package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	githubAPIURL = "https://api.github.com/repos/studiowebux/bl3edit/releases/latest"
	checkTimeout = 5 * time.Second
)

// Release is the subset of the GitHub release payload the update notice needs
type Release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// Version returns the tag without its leading "v"
func (r Release) Version() string {
	return strings.TrimPrefix(r.TagName, "v")
}

// Checker fetches the latest published release
type Checker struct {
	URL    string
	Client *http.Client
}

// NewChecker returns a checker pointed at the project's release feed
func NewChecker() *Checker {
	return &Checker{
		URL:    githubAPIURL,
		Client: &http.Client{Timeout: checkTimeout},
	}
}

// Latest fetches the latest release and reports whether it is newer than current
func (c *Checker) Latest(ctx context.Context, current string) (Release, bool, error) {
	current = strings.TrimPrefix(current, "v")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return Release{}, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "bl3edit/"+current)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return Release{}, false, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, false, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return Release{}, false, fmt.Errorf("failed to decode response: %w", err)
	}

	latest := release.Version()
	newer := latest != "" && isNewerVersion(latest, current)
	return release, newer, nil
}

// CheckForUpdate checks the default release feed
func CheckForUpdate(ctx context.Context, current string) (Release, bool, error) {
	return NewChecker().Latest(ctx, current)
}

// isNewerVersion compares two semantic versions and returns true if latest > current
// Supports versions like "1.2.3", "2.0", "1.3.0-dev", etc.
func isNewerVersion(latest, current string) bool {
	latestParts := parseVersion(latest)
	currentParts := parseVersion(current)

	maxLen := max(len(latestParts), len(currentParts))
	for len(latestParts) < maxLen {
		latestParts = append(latestParts, 0)
	}
	for len(currentParts) < maxLen {
		currentParts = append(currentParts, 0)
	}

	for i := range maxLen {
		if latestParts[i] != currentParts[i] {
			return latestParts[i] > currentParts[i]
		}
	}

	return false
}

// parseVersion parses a version string into integer parts.
// Pre-release and build metadata are ignored.
func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))

	for _, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		result = append(result, num)
	}

	return result
}
