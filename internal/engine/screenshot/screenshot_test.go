package screenshot

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixed() time.Time {
	return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
}

func TestFilename(t *testing.T) {
	c := New("shots", "hole")
	c.now = fixed
	want := filepath.Join("shots", "hole_2024-05-01_09-30-00.png")
	if got := c.Filename(); got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestFromPixelsFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "captures")
	c := New(dir, "hole")
	c.now = fixed

	// 1x2: bottom row red, top row blue (GL order is bottom-up).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := c.FromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FromPixels: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	top := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	bottom := color.RGBAModel.Convert(img.At(0, 1)).(color.RGBA)
	if top.B != 255 || bottom.R != 255 {
		t.Errorf("rows not flipped: top %v bottom %v", top, bottom)
	}
}

func TestFromPixelsSizeMismatch(t *testing.T) {
	c := New(t.TempDir(), "hole")
	if _, err := c.FromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}
