// Package configutil loads the json5 configuration files juscraper
// reads at startup, telemetry.json5 being the main one. Every file may
// have a "<name>.local.<ext>" sibling whose values override the
// checked-in defaults, keeping per-machine settings out of version
// control.
package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// Read loads one configuration file plus its optional local override,
// override values winning field by field. os.ErrNotExist is returned
// when neither file exists.
func Read[T any](path string) (T, error) {
	var config T

	local := localPath(path)
	found, err := decode(path, &config)
	if err != nil {
		return config, err
	}

	var override T
	foundLocal, err := decode(local, &override)
	if err != nil {
		return config, err
	}
	if foundLocal {
		err = mergo.Merge(&config, override, mergo.WithOverride)
		if err != nil {
			return config, err
		}
		slog.Info("merging config with local overrides", "local", local)
	}

	if !found && !foundLocal {
		return config, os.ErrNotExist
	}
	return config, nil
}

// ReadRecursively walks from the working directory up to the
// filesystem root looking for the named file, so a command run deep
// inside a checkout still picks up the repository-level configuration.
func ReadRecursively[T any](name string) (T, error) {
	var zero T

	dir, err := os.Getwd()
	if err != nil {
		return zero, err
	}
	for {
		config, err := Read[T](filepath.Join(dir, name))
		if !os.IsNotExist(err) {
			return config, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return zero, os.ErrNotExist
		}
		dir = parent
	}
}

// decode unmarshals one file into out, reporting whether the file was
// present. A missing or empty file is not an error.
func decode[T any](path string, out *T) (bool, error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}
	return true, json5.Unmarshal(contents, out)
}

// localPath turns "dir/telemetry.json5" into "dir/telemetry.local.json5".
func localPath(path string) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s.local%s", strings.TrimSuffix(path, ext), ext)
}
