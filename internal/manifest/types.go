package manifest

// Manifest is the top-level output of a debayer build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	BasePath    string           `json:"base_path"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers      int    `json:"workers"`
	Algorithm    string `json:"algorithm"`     // "ahd" or "bilinear"
	OutputLayout string `json:"output_layout"` // "RGBA" or "BGRA"
}

// Asset describes one source Bayer frame and its debayered output.
type Asset struct {
	Source SourceInfo `json:"source"`
	Output OutputInfo `json:"output"`
}

// SourceInfo holds metadata about the raw Bayer input.
type SourceInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Depth  int    `json:"depth"`
	Layout string `json:"layout"`
	Size   int64  `json:"size"`
}

// OutputInfo describes the debayered output written to disk.
type OutputInfo struct {
	Layout string `json:"layout"` // "RGBA" or "BGRA"
	Size   int64  `json:"size"`   // bytes on disk
	Hash   string `json:"hash"`   // first 16 hex chars of xxhash64
	Path   string `json:"path"`   // relative to base_path
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalAssets      int   `json:"total_assets"`
	Failed           int   `json:"failed,omitempty"` // frames that produced an empty output
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
