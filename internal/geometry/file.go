package geometry

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load reads the placement stored at path. A missing or unreadable file
// yields DefaultPlacement.
func Load(path string) Placement {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultPlacement()
	}
	return Deserialize(string(data))
}

// Save overwrites path with the serialized placement.
func Save(path string, p Placement) error {
	return WriteFile(path, Serialize(p))
}

// Reset overwrites path so that it loads back as DefaultPlacement. The
// default label reads back as centered.
func Reset(path string) error {
	return Save(path, Placement{Position: Default(), Size: DefaultSize})
}

// WriteFile overwrites path with already serialized text, creating parent
// directories as needed.
func WriteFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating geometry directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing geometry file: %w", err)
	}
	return nil
}
