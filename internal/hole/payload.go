package hole

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParsePayload decodes a hole payload. YAML is accepted, and since YAML is a
// superset of JSON so are JSON payloads. Unknown keys are rejected: a
// misspelled field would otherwise leave peers building different holes.
func ParsePayload(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding hole payload: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadPayload reads and decodes a hole payload file.
func LoadPayload(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := ParsePayload(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the Config as a YAML payload for transmission to peers.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// SaveTo writes the payload to path.
func (c Config) SaveTo(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
