// Package export materialises a rendered report as a self-contained
// folder of Markdown plus the assets it references.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fakeyudi/rapidreporter/internal/report"
	"github.com/fakeyudi/rapidreporter/internal/session"
)

// ExportResult is the sole externally observable success value of an
// export.
type ExportResult struct {
	MarkdownPath string
}

// CollisionError signals that the export folder for this minute already
// exists. Exports are unique per session-end moment, so a collision means
// a sub-minute double export (or a bug) and is surfaced instead of
// silently merging into the existing folder.
type CollisionError struct {
	Path string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("export folder already exists: %s", e.Path)
}

// IOError wraps a filesystem failure from one packaging step, naming the
// path involved so the UI can show something actionable.
type IOError struct {
	Step string // "create", "copy", "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("export %s failed for %s: %v", e.Step, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// FolderName derives the export folder name from the export moment, e.g.
// RapidReporter-2026-02-20-1823.
func FolderName(at time.Time) string {
	return "RapidReporter-" + at.Format("2006-01-02-1504")
}

// Session renders the session and packages the result under
// destinationRoot. This is the single entry point the UI calls at session
// end; the session itself is left untouched, so a failed export can simply
// be retried.
func Session(ctx context.Context, s *session.Session, destinationRoot string, at time.Time) (ExportResult, error) {
	r := report.Render(s)
	return Package(ctx, r, destinationRoot, at)
}

// Package writes the report's Markdown and assets into a fresh export
// folder. All asset copies complete before the Markdown is written, and a
// failure at any step is returned rather than papered over; a partially
// written folder is intentionally left in place for inspection.
func Package(ctx context.Context, r report.Report, destinationRoot string, at time.Time) (ExportResult, error) {
	folder := FolderName(at)
	dir := filepath.Join(destinationRoot, folder)

	if _, err := os.Stat(dir); err == nil {
		return ExportResult{}, &CollisionError{Path: dir}
	} else if !os.IsNotExist(err) {
		return ExportResult{}, &IOError{Step: "create", Path: dir, Err: err}
	}

	iconDir := filepath.Join(dir, "assets", "icons")
	shotDir := filepath.Join(dir, "assets", "screenshots")
	for _, d := range []string{iconDir, shotDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return ExportResult{}, &IOError{Step: "create", Path: d, Err: err}
		}
	}

	markdown := r.Markdown
	taken := map[string]bool{}

	for _, asset := range r.Assets {
		if err := ctx.Err(); err != nil {
			return ExportResult{}, &IOError{Step: "copy", Path: asset.SourcePath, Err: err}
		}

		switch asset.Kind {
		case report.AssetIcon:
			// Icons go in under their canonical type name.
			data, err := iconBytes(asset.SourcePath)
			if err != nil {
				return ExportResult{}, &IOError{Step: "copy", Path: asset.SourcePath, Err: err}
			}
			dst := filepath.Join(iconDir, asset.SourcePath)
			if err := os.WriteFile(dst, data, 0o644); err != nil {
				return ExportResult{}, &IOError{Step: "copy", Path: dst, Err: err}
			}

		case report.AssetScreenshot:
			if _, err := os.Stat(asset.SourcePath); err != nil {
				return ExportResult{}, &IOError{
					Step: "copy",
					Path: asset.SourcePath,
					Err:  fmt.Errorf("screenshot file does not exist: %w", err),
				}
			}
			name := uniqueName(filepath.Base(asset.SourcePath), taken)
			taken[name] = true
			dst := filepath.Join(shotDir, name)
			if err := copyFile(asset.SourcePath, dst); err != nil {
				return ExportResult{}, &IOError{Step: "copy", Path: dst, Err: err}
			}
			// Rewrite the Markdown's absolute-path link to the relative
			// path the file actually landed at.
			rel := "assets/screenshots/" + name
			markdown = strings.ReplaceAll(markdown, "]("+asset.SourcePath+")", "]("+rel+")")
		}
	}

	mdPath := filepath.Join(dir, folder+".md")
	if err := writeFileAtomic(mdPath, []byte(markdown)); err != nil {
		return ExportResult{}, &IOError{Step: "write", Path: mdPath, Err: err}
	}

	return ExportResult{MarkdownPath: mdPath}, nil
}

// uniqueName returns base, or base with a -2/-3/… suffix before the
// extension when an asset of that name is already being packaged in this
// export.
func uniqueName(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, i, ext)
		if !taken[candidate] {
			return candidate
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// writeFileAtomic writes via a temp file in the same directory plus
// os.Rename, so a crash mid-write cannot leave a half-written report that
// looks like a finished export.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
