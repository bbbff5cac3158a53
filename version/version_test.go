package version

import (
	"runtime/debug"
	"testing"
)

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"dev build", Info{CommitHash: "dev", BuildTime: "unknown", Version: "dev"}, "castgraph dev (commit dev, built unknown)"},
		{"tagged build", Info{CommitHash: "0123456789abcdef", BuildTime: "2026-10-01", Version: "v0.3.0"}, "castgraph v0.3.0 (commit 0123456, built 2026-10-01)"},
		{"dirty tree", Info{CommitHash: "0123456789abcdef", BuildTime: "2026-10-01", Version: "dev", Modified: true}, "castgraph dev (commit 0123456+dirty, built 2026-10-01)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func stubBuildInfo(t *testing.T, settings ...debug.BuildSetting) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: settings}, true
	}
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestGet_FallsBackToVCSStamp(t *testing.T) {
	stubBuildInfo(t,
		debug.BuildSetting{Key: "vcs.revision", Value: "abcdef0123456789"},
		debug.BuildSetting{Key: "vcs.time", Value: "2026-10-18T09:00:00Z"},
		debug.BuildSetting{Key: "vcs.modified", Value: "true"},
	)

	info := Get()
	if info.CommitHash != "abcdef0123456789" {
		t.Errorf("CommitHash = %q", info.CommitHash)
	}
	if info.BuildTime != "2026-10-18T09:00:00Z" {
		t.Errorf("BuildTime = %q", info.BuildTime)
	}
	if !info.Modified {
		t.Error("Modified = false, want true")
	}
}

func TestGet_LdflagsWin(t *testing.T) {
	stubBuildInfo(t, debug.BuildSetting{Key: "vcs.revision", Value: "abcdef0123456789"})
	origHash := CommitHash
	CommitHash = "1111111222"
	t.Cleanup(func() { CommitHash = origHash })

	if got := Get().CommitHash; got != "1111111222" {
		t.Errorf("CommitHash = %q, want ldflags value", got)
	}
}

func TestGet_NoBuildInfo(t *testing.T) {
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }
	t.Cleanup(func() { readBuildInfo = orig })

	info := Get()
	if info.CommitHash != CommitHash || info.Platform == "" {
		t.Errorf("Get() = %+v", info)
	}
}
