package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestManifestRoundtrip(t *testing.T) {
	m := New("default")
	m.BuildInfo = &BuildInfo{Workers: 4, Algorithm: "ahd", OutputLayout: "BGRA"}
	m.Assets["frame-001"] = Asset{
		Source: SourceInfo{Width: 640, Height: 480, Depth: 16, Layout: "Bayer", Size: 614400},
		Output: OutputInfo{
			Layout: "BGRA",
			Size:   2457600,
			Hash:   "abcd1234ef567890",
			Path:   "frame-001.bgra.raw",
		},
	}
	m.ComputeStats()

	dir := t.TempDir()
	path := filepath.Join(dir, "debayer.manifest.json")
	if err := WriteJSON(m, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var m2 Manifest
	if err := json.Unmarshal(data, &m2); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if m2.Version != SupportedManifestVersion {
		t.Errorf("version: got %d, want %d", m2.Version, SupportedManifestVersion)
	}
	if m2.Profile != "default" {
		t.Errorf("profile: got %q", m2.Profile)
	}
	if m2.BuildInfo == nil || m2.BuildInfo.Workers != 4 {
		t.Fatal("build_info not round-tripped correctly")
	}
	if m2.BuildInfo.Algorithm != "ahd" {
		t.Errorf("algorithm: got %q", m2.BuildInfo.Algorithm)
	}

	a, ok := m2.Assets["frame-001"]
	if !ok {
		t.Fatal("asset frame-001 missing")
	}
	if a.Source.Width != 640 || a.Source.Height != 480 {
		t.Errorf("source dims: got %dx%d", a.Source.Width, a.Source.Height)
	}
	if a.Output.Hash != "abcd1234ef567890" {
		t.Errorf("output hash: got %q", a.Output.Hash)
	}

	if m2.Stats.TotalAssets != 1 {
		t.Errorf("total_assets: got %d", m2.Stats.TotalAssets)
	}
	if m2.Stats.TotalInputBytes != 614400 {
		t.Errorf("total_input_bytes: got %d", m2.Stats.TotalInputBytes)
	}
}

func TestManifestVersion(t *testing.T) {
	m := New("v-test")
	if m.Version != SupportedManifestVersion {
		t.Errorf("new manifest version: got %d, want %d", m.Version, SupportedManifestVersion)
	}
}

func TestManifestIgnoresUnknownFields(t *testing.T) {
	raw := `{
		"version": 1,
		"generated_at": "2025-01-01T00:00:00Z",
		"profile": "test",
		"base_path": "./",
		"future_field": "should be ignored",
		"build_info": { "workers": 8, "algorithm": "ahd", "output_layout": "BGRA", "new_flag": true },
		"assets": {},
		"stats": { "total_input_bytes": 0, "total_output_bytes": 0, "total_assets": 0, "new_stat": 42 }
	}`

	var m Manifest
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal with unknown fields: %v", err)
	}
	if m.Version != 1 {
		t.Errorf("version: got %d", m.Version)
	}
	if m.BuildInfo == nil || m.BuildInfo.Workers != 8 {
		t.Error("build_info not parsed correctly")
	}
}

func TestComputeStatsPreservesFailedCount(t *testing.T) {
	m := New("test")
	m.Stats.Failed = 2
	m.Assets["ok"] = Asset{Source: SourceInfo{Size: 100}, Output: OutputInfo{Size: 400}}
	m.ComputeStats()
	if m.Stats.Failed != 2 {
		t.Errorf("failed count should survive ComputeStats: got %d", m.Stats.Failed)
	}
	if m.Stats.TotalAssets != 1 {
		t.Errorf("total_assets: got %d", m.Stats.TotalAssets)
	}
}
