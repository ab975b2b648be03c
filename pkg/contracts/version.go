package contracts

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const (
	// Version of the analysis service and CLI.
	Version = "1.0.0"

	// APIVersion of the HTTP API.
	APIVersion = "v1"
)

// Set with -ldflags "-X .../pkg/contracts.GitCommit=...". When left unset
// the VCS stamp from the Go build info is used instead.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo is the body of GET /api/version.
type VersionInfo struct {
	Version      string `json:"version"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
	APIVersion   string `json:"api_version"`
}

// GetVersionInfo reports the running binary's version.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:      Version,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		APIVersion:   APIVersion,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "unknown":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "unknown":
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// String is the one-line form printed by the CLI's --version flag.
func (v VersionInfo) String() string {
	commit := v.GitCommit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return fmt.Sprintf("%s (api %s, commit %s, %s %s/%s)", v.Version, v.APIVersion, commit, v.GoVersion, v.OS, v.Architecture)
}
