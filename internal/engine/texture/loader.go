package texture

import (
	"bytes"
	"fmt"
	"image"
	"path"
	"strings"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"go.uber.org/zap"
)

// Source supplies raw texture bytes by slash-separated path.
type Source interface {
	Load(name string) ([]byte, error)
}

// Loader resolves surface texture paths to decoded images. It is safe for
// concurrent use as long as its Source is.
type Loader struct {
	source    Source
	overrides map[string]string
	log       *zap.Logger
}

// NewLoader creates a loader over source. overrides maps a requested path to
// the path actually read. A nil logger discards output.
func NewLoader(source Source, overrides map[string]string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	copied := make(map[string]string, len(overrides))
	for k, v := range overrides {
		copied[k] = v
	}
	return &Loader{source: source, overrides: copied, log: log.Named("texture")}
}

// Load reads and decodes the texture at name.
func (l *Loader) Load(name string) (*image.RGBA, error) {
	resolved := name
	if o, ok := l.overrides[name]; ok {
		resolved = o
	}

	data, err := l.source.Load(resolved)
	if err != nil {
		return nil, err
	}

	img, err := Decode(data, resolved)
	if err != nil {
		return nil, err
	}
	l.log.Debug("texture loaded",
		zap.String("path", resolved),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()),
	)
	return img, nil
}

// Decode decodes image bytes. TGA is selected by extension since it has no
// magic number; every other format is sniffed.
func Decode(data []byte, name string) (*image.RGBA, error) {
	if strings.EqualFold(path.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return ImageToRGBA(img), nil
}
