package platform

import (
	"runtime"
)

// AppName names the per-user configuration directory.
const AppName = "fontlist"

// FontPaths represents system and user font directories
type FontPaths struct {
	SystemDirs []string // System-wide font directories
	UserDirs   []string // User-specific font directories
}

// All returns the user directories followed by the system directories.
func (p FontPaths) All() []string {
	dirs := make([]string, 0, len(p.UserDirs)+len(p.SystemDirs))
	dirs = append(dirs, p.UserDirs...)
	return append(dirs, p.SystemDirs...)
}

// Manager handles platform-specific operations
type Manager interface {
	// GetFontPaths returns the system and user font directories
	GetFontPaths() (FontPaths, error)

	// ConfigDir returns the directory holding the config and geometry files
	ConfigDir() (string, error)
}

// New returns a manager for the running platform
func New() Manager {
	return NewFor(runtime.GOOS)
}

// NewFor returns the manager for the given GOOS value. Anything that is not
// darwin is treated as a freedesktop system.
func NewFor(goos string) Manager {
	if goos == "darwin" {
		return newDarwinManager()
	}
	return newLinuxManager()
}
