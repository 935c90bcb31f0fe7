package export

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/mahar/pkg/content"
	"github.com/vanderheijden86/mahar/pkg/validate"
)

// ManifestFile describes one content file.
type ManifestFile struct {
	Path     string     `json:"path"`
	Size     int64      `json:"size"`
	Modified *time.Time `json:"modified,omitempty"`
}

// ManifestChecks summarises the content validation.
type ManifestChecks struct {
	Passed   bool `json:"passed"`
	Errors   int  `json:"errors"`
	Warnings int  `json:"warnings"`
}

// Manifest is the build manifest written next to a deployment.
type Manifest struct {
	Timestamp time.Time      `json:"timestamp"`
	Source    string         `json:"source"`
	Files     []ManifestFile `json:"files"`
	Checks    ManifestChecks `json:"checks"`
}

// BuildManifest lists the content files of fsys with their sizes and
// records the outcome of report.
func BuildManifest(fsys fs.FS, source string, report *validate.Report, now time.Time) (Manifest, error) {
	m := Manifest{
		Timestamp: now.UTC(),
		Source:    source,
		Files:     []ManifestFile{},
	}
	for _, name := range content.Files(fsys) {
		info, err := fs.Stat(fsys, name)
		if err != nil {
			return m, fmt.Errorf("manifest: %w", err)
		}
		f := ManifestFile{Path: name, Size: info.Size()}
		if mt := info.ModTime(); !mt.IsZero() {
			mt = mt.UTC()
			f.Modified = &mt
		}
		m.Files = append(m.Files, f)
	}
	if report != nil {
		m.Checks = ManifestChecks{
			Passed:   report.OK(),
			Errors:   report.Count(validate.SeverityError),
			Warnings: report.Count(validate.SeverityWarning),
		}
	}
	return m, nil
}

// SaveManifest writes m as indented JSON.
func SaveManifest(m Manifest, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
