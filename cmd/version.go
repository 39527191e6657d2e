package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-version"

	"github.com/nulzo/provider-metrics-api/internal/cli"
)

var AppVersion = "v0.0.0"

const releasesURL = "https://api.github.com/repos/nulzo/provider-metrics-api/releases/latest"

// CheckForUpdates nudges the operator when a newer release exists. Any
// failure along the way is swallowed; startup must not depend on GitHub.
func CheckForUpdates() {
	latest, ok := latestReleaseTag()
	if !ok {
		return
	}

	current, err := version.NewVersion(AppVersion)
	if err != nil {
		return
	}
	newest, err := version.NewVersion(latest)
	if err != nil || !current.LessThan(newest) {
		return
	}

	fmt.Printf("%s %s is available (running %s). See %s\n",
		cli.Style("update:", cli.Yellow),
		latest, AppVersion,
		"https://github.com/nulzo/provider-metrics-api/releases")
}

func latestReleaseTag() (string, bool) {
	client := http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(releasesURL)
	if err != nil {
		return "", false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", false
	}
	return release.TagName, true
}
