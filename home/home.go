package home

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strings"
)

// Home returns the current user's home directory.
func Home() (string, error) {
	userData, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("find homedir: %w", err)
	}
	return userData.HomeDir, nil
}

// Expand replaces a leading ~ or ~user with that user's home directory.
// Paths not starting with '~' are returned unchanged.
func Expand(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	first := strings.Split(filepath.ToSlash(path), "/")[0]

	var userData *user.User
	var err error
	if first == "~" {
		userData, err = user.Current()
	} else {
		userData, err = user.Lookup(first[1:])
	}
	if err != nil {
		return "", fmt.Errorf("expand tilde: %w", err)
	}

	return strings.Replace(path, first, userData.HomeDir, 1), nil
}
