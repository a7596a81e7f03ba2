package filesystem

import (
	"os"
	"path/filepath"
)

// AppDirName is the per-user directory holding config and history.
const AppDirName = ".saycalc"

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// AppDir returns ~/.saycalc.
func AppDir() string {
	return filepath.Join(UserHomeDir(), AppDirName)
}
