package tuning

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"doorhop/internal/domain/world"
)

// Load reads a YAML tuning file over the defaults. An empty path yields the defaults.
func Load(path string) (world.Tuning, error) {
	if path == "" {
		return world.DefaultTuning(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return world.Tuning{}, fmt.Errorf("read tuning: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (world.Tuning, error) {
	t := world.DefaultTuning()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return world.Tuning{}, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return world.Tuning{}, err
	}
	return t, nil
}
