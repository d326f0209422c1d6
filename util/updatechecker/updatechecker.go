// Package updatechecker polls the project's release feed once at startup and
// tells the operator when a newer build exists. Failures are logged and
// otherwise ignored, the daemon never blocks on this.
package updatechecker

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cindra-project/cindra-tokenomics/config"
	"github.com/cindra-project/cindra-tokenomics/logger"
)

type Status int

const (
	StatusUpToDate Status = iota
	StatusPatchUpdate
	StatusMinorUpdate
	StatusMajorUpdate
	StatusError
)

func RunUpdateChecker(Log *logger.Log, url string) {
	Log.Info("Checking for updates")
	status, version, err := CheckForUpdate(url)
	if err != nil || status == StatusError {
		Log.Warn("Error checking for updates:", err)
		return
	}

	curVersion := fmt.Sprintf("%d.%d.%d", config.VERSION_MAJOR, config.VERSION_MINOR, config.VERSION_PATCH)
	if status == StatusUpToDate {
		Log.Infof("The daemon is up to date (v%v)", curVersion)
	} else {
		kind := "major"
		switch status {
		case StatusMinorUpdate:
			kind = "minor"
		case StatusPatchUpdate:
			kind = "patch"
		}
		Log.Infof("There's a new %s update available: You are on v%v, version v%v", kind,
			curVersion, version)
	}
}

type githubReleaseInfo struct {
	TagName string `json:"tag_name"`
}

func CheckForUpdate(url string) (Status, string, error) {
	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return StatusError, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return StatusError, "", fmt.Errorf("HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return StatusError, "", err
	}

	ghr := githubReleaseInfo{}

	err = json.Unmarshal(body, &ghr)
	if err != nil {
		return StatusError, "", err
	}

	// release tags look like "v1.2.3" or "v1.2.3-rc1"
	version, _, _ := strings.Cut(strings.TrimPrefix(ghr.TagName, "v"), "-")
	version = strings.TrimSpace(version)

	status, err := compareVersions(version)
	return status, version, err
}

func compareVersions(remote string) (Status, error) {
	parts := strings.Split(remote, ".")
	if len(parts) != 3 {
		return StatusError, fmt.Errorf("invalid version format: %s", remote)
	}

	var nums [3]int
	for i, p := range parts {
		var err error
		nums[i], err = strconv.Atoi(p)
		if err != nil {
			return StatusError, err
		}
	}

	local := [3]int{config.VERSION_MAJOR, config.VERSION_MINOR, config.VERSION_PATCH}
	statuses := [3]Status{StatusMajorUpdate, StatusMinorUpdate, StatusPatchUpdate}

	for i := range nums {
		if nums[i] > local[i] {
			return statuses[i], nil
		}
		if nums[i] < local[i] {
			return StatusUpToDate, nil
		}
	}
	return StatusUpToDate, nil
}
