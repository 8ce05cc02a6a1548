// Package report turns a finished session into Markdown plus a manifest
// of the asset files the Markdown refers to.
package report

// AssetKind distinguishes the two classes of packaged files.
type AssetKind string

const (
	AssetIcon       AssetKind = "icon"
	AssetScreenshot AssetKind = "screenshot"
)

// AssetRef is one file the rendered Markdown depends on. For screenshots
// SourcePath is the capture's absolute path on disk; for icons it is the
// canonical embedded icon name (e.g. "bug.png"). ExportRelativePath is the
// renderer's proposed location inside the export folder — the packager may
// adjust it to avoid name collisions and rewrites the Markdown to match.
type AssetRef struct {
	Kind               AssetKind
	SourcePath         string
	ExportRelativePath string
}

// Report is the renderer's output: the Markdown text and every asset it
// references.
type Report struct {
	Markdown string
	Assets   []AssetRef
}
