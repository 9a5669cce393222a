package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

type darwinManager struct{}

func newDarwinManager() Manager {
	return &darwinManager{}
}

func (m *darwinManager) GetFontPaths() (FontPaths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return FontPaths{}, fmt.Errorf("getting user home directory: %w", err)
	}

	return FontPaths{
		SystemDirs: []string{"/System/Library/Fonts", "/Library/Fonts"},
		UserDirs:   []string{filepath.Join(homeDir, "Library/Fonts")},
	}, nil
}

func (m *darwinManager) ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Library/Application Support", AppName), nil
}
