package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Заполняются через -ldflags "-X ursa-server/internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
)

// Protocol - версия формата снимков и команд WebSocket.
// Меняется при несовместимых изменениях pkg/api.
const Protocol = 1

var buildEpoch = time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC)

// VersionInfo - ответ /version
type VersionInfo struct {
	BuildID   int    `json:"build_id"`
	BuildDate string `json:"build_date,omitempty"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch,omitempty"`
	Protocol  int    `json:"protocol"`
	GoVersion string `json:"go"`
	Error     string `json:"error,omitempty"`
}

// CalculateBuildID - номер сборки: дни от эпохи проекта
func CalculateBuildID(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s is before epoch", date)
	}

	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info собирает сведения о сборке. Коммит без ldflags берется из VCS-меток go build.
func Info() VersionInfo {
	info := VersionInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		Protocol:  Protocol,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		if info.Commit == "" {
			info.Commit = vcsRevision(bi.Settings)
		}
	}

	id, err := CalculateBuildID(BuildDate)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID = id
	return info
}

func vcsRevision(settings []debug.BuildSetting) string {
	for _, s := range settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return ""
}

// String - строка для лога при старте
func String() string {
	info := Info()
	commit := info.Commit
	if commit == "" {
		commit = "unknown"
	}

	if info.Error != "" {
		return fmt.Sprintf("Build dev commit[%s] protocol v%d", commit, info.Protocol)
	}
	return fmt.Sprintf("Build %d (%s) commit[%s] protocol v%d", info.BuildID, info.BuildDate, commit, info.Protocol)
}
