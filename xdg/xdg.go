// Package xdg implements the [XDG Base Directory Specification].
//
// [XDG Base Directory Specification]: https://specifications.freedesktop.org/basedir-spec/latest
package xdg

import (
	"fmt"
	"os"
	"path/filepath"
)

func home() string {
	var home string

	home = os.Getenv("HOME")
	if home == "" {
		return "/"
	}

	return home
}

func xdg(env string, subPaths ...string) string {
	env = os.Getenv(env)
	if env == "" || !filepath.IsAbs(env) {
		env = filepath.Join(subPaths...)
	}

	return env
}

func xdgFile(xdgPath, relPath string) (*os.File, error) {
	const userOnly os.FileMode = 0o700

	var (
		file *os.File
		path string
		err  error
	)

	path = filepath.Join(xdgPath, relPath)

	err = os.MkdirAll(filepath.Dir(path), userOnly)
	if err != nil {
		return nil, fmt.Errorf("xdg.xdgFile: %w", err)
	}

	file, err = os.OpenFile(filepath.Clean(path), os.O_RDWR|os.O_CREATE, userOnly)
	if err != nil {
		return nil, fmt.Errorf("xdg.xdgFile: %w", err)
	}

	return file, nil
}

// StateFile opens the file with read/write access using a relative path
// (e.g., "appname/app.state") that includes the filename and optional
// directories. Missing directories are auto-created relative to the base
// state directory, and any errors return details about the attempted paths.
// Don't forget to call *os.File.Close() after use.
//
// From the [XDG Base Directory Specification]:
//
// $XDG_STATE_HOME defines the base directory relative to which
// user-specific state files should be stored. If $XDG_STATE_HOME is either
// not set or empty, a default equal to $HOME/.local/state should be used.
//
// The $XDG_STATE_HOME contains state data that should persist between
// (application) restarts, but that is not important or portable enough to
// the user that it should be stored in $XDG_DATA_HOME.
//
// It may contain:
//
// - actions history (logs, history, recently used files, ...)
//
// - current state of the application that can be reused on a restart
// (view, layout, open files, undo history, ...)
//
// [XDG Base Directory Specification]: https://specifications.freedesktop.org/basedir-spec/latest
func StateFile(relPath string) (*os.File, error) {
	return xdgFile(xdg("XDG_STATE_HOME", home(), ".local/state"), relPath)
}
