package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mateoquintana/brandforge-backend/pkg/config"
	pkgerrors "github.com/mateoquintana/brandforge-backend/pkg/errors"
)

// Upload folders created under the configured root at startup.
const (
	FolderDesigns       = "designs"
	FolderTraining      = "training"
	FolderBrandElements = "brand-elements"
	FolderReferences    = "references"
)

var layoutFolders = []string{FolderDesigns, FolderTraining, FolderBrandElements, FolderReferences}

// Store processes uploads and persists them under the upload root.
type Store struct {
	root      string
	processor *Processor
}

// NewStore builds a media store from the uploads configuration.
func NewStore(cfg config.UploadsConfig) *Store {
	return &Store{
		root:      cfg.Root,
		processor: NewProcessor(cfg.MaxDim, cfg.Quality),
	}
}

// EnsureLayout creates the upload root and its standard subfolders. Callers
// treat a failure here as fatal at startup.
func (s *Store) EnsureLayout() error {
	for _, folder := range layoutFolders {
		if err := os.MkdirAll(filepath.Join(s.root, folder), 0o755); err != nil {
			return fmt.Errorf("create upload folder %s: %w", folder, err)
		}
	}
	return nil
}

// ProcessAndStore resizes and re-encodes the raw bytes, writes the result
// into the named folder and returns the stored path relative to the root.
func (s *Store) ProcessAndStore(raw []byte, filename, folder string) (string, error) {
	processed, err := s.processor.Process(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeProcessing, err, "process image")
	}

	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeProcessing, err, "create folder")
	}

	name := storedName(filename)
	if err := os.WriteFile(filepath.Join(dir, name), processed, 0o644); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeProcessing, err, "write image")
	}
	return filepath.ToSlash(filepath.Join(folder, name)), nil
}

// storedName derives a collision-free on-disk name from the upload filename.
// Everything is re-encoded as JPEG, so the stored extension is always .jpg.
func storedName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = sanitizeBase(base)
	if base == "" {
		base = "upload"
	}
	return fmt.Sprintf("%s-%d-%s.jpg", base, time.Now().UTC().UnixMilli(), uuid.NewString()[:8])
}

func sanitizeBase(base string) string {
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
