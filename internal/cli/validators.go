package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// ValidateFilePath checks that path exists and is a regular file, and
// returns it made absolute.
func ValidateFilePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("path does not exist: %s", abs)
		}
		return "", fmt.Errorf("error accessing path: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, expected file: %s", abs)
	}
	return abs, nil
}

// ParseOnOff accepts on/off, true/false, yes/no and 1/0.
func ParseOnOff(s string) (bool, error) {
	switch s {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}
