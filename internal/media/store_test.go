package media

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mateoquintana/brandforge-backend/pkg/config"
	pkgerrors "github.com/mateoquintana/brandforge-backend/pkg/errors"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, raw []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	return img
}

func TestProcessDownscalesToFit(t *testing.T) {
	p := NewProcessor(64, 90)

	out, err := p.Process(pngBytes(t, 200, 100))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	img := decodeJPEG(t, out)
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
}

func TestProcessNeverUpscales(t *testing.T) {
	p := NewProcessor(1024, 90)

	out, err := p.Process(pngBytes(t, 40, 20))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	img := decodeJPEG(t, out)
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Fatalf("image was resized: %v", img.Bounds())
	}
}

func TestProcessPortraitUsesHeight(t *testing.T) {
	p := NewProcessor(50, 90)

	out, err := p.Process(pngBytes(t, 100, 200))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	img := decodeJPEG(t, out)
	if img.Bounds().Dx() != 25 || img.Bounds().Dy() != 50 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
}

func TestProcessRejectsGarbage(t *testing.T) {
	p := NewProcessor(1024, 90)

	if _, err := p.Process([]byte("not an image")); err == nil {
		t.Fatal("expected decode failure")
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(config.UploadsConfig{
		Root:    t.TempDir(),
		MaxDim:  128,
		Quality: 90,
	})
}

func TestEnsureLayoutCreatesFolders(t *testing.T) {
	store := newTestStore(t)
	if err := store.EnsureLayout(); err != nil {
		t.Fatalf("ensure layout: %v", err)
	}

	for _, folder := range []string{FolderDesigns, FolderTraining, FolderBrandElements, FolderReferences} {
		info, err := os.Stat(filepath.Join(store.root, folder))
		if err != nil || !info.IsDir() {
			t.Fatalf("missing folder %s: %v", folder, err)
		}
	}
}

func TestProcessAndStoreWritesJPEG(t *testing.T) {
	store := newTestStore(t)

	path, err := store.ProcessAndStore(pngBytes(t, 300, 300), "My Photo.png", FolderTraining)
	if err != nil {
		t.Fatalf("process and store: %v", err)
	}
	if !strings.HasPrefix(path, FolderTraining+"/") {
		t.Fatalf("path not under folder: %s", path)
	}
	if !strings.HasSuffix(path, ".jpg") {
		t.Fatalf("expected .jpg path, got %s", path)
	}

	raw, err := os.ReadFile(filepath.Join(store.root, filepath.FromSlash(path)))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	img := decodeJPEG(t, raw)
	if img.Bounds().Dx() != 128 {
		t.Fatalf("stored image not resized: %v", img.Bounds())
	}
}

func TestProcessAndStoreSanitizesFilename(t *testing.T) {
	store := newTestStore(t)

	path, err := store.ProcessAndStore(pngBytes(t, 10, 10), "../../etc/passwd.png", FolderReferences)
	if err != nil {
		t.Fatalf("process and store: %v", err)
	}
	if strings.Contains(path, "..") {
		t.Fatalf("path traversal survived: %s", path)
	}
}

func TestProcessAndStoreDecodeFailure(t *testing.T) {
	store := newTestStore(t)

	_, err := store.ProcessAndStore([]byte("junk"), "x.png", FolderDesigns)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeProcessing {
		t.Fatalf("expected processing error, got %v", err)
	}
}
