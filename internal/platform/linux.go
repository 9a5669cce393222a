package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

type linuxManager struct{}

func newLinuxManager() Manager {
	return &linuxManager{}
}

func (m *linuxManager) GetFontPaths() (FontPaths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return FontPaths{}, fmt.Errorf("getting user home directory: %w", err)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(homeDir, ".local/share")
	}

	return FontPaths{
		SystemDirs: []string{"/usr/share/fonts", "/usr/local/share/fonts"},
		UserDirs: []string{
			filepath.Join(dataHome, "fonts"),
			filepath.Join(homeDir, ".fonts"),
		},
	}, nil
}

func (m *linuxManager) ConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", AppName), nil
}
