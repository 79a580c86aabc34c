// Package store saves and loads levels as JSON files.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/oops"

	"github.com/samdwyer/dungeonwright/internal/world"
)

// FormatVersion is written to every file and checked on load.
const FormatVersion = 1

// ErrVersion is returned when a file was written by an unsupported format version.
var ErrVersion = errors.New("unsupported level file version")

// File is the on-disk form of a saved level.
type File struct {
	Version    int            `json:"version"`
	SavedAt    time.Time      `json:"saved_at"`
	Level      world.Snapshot `json:"level"`
	Transcript []string       `json:"transcript,omitempty"` // Commands that built the level
}

// Save writes the level and its transcript to path. The file is replaced
// atomically so a failed save never leaves a truncated level behind.
func Save(path string, level *world.Level, transcript []string) error {
	errb := oops.In("store").With("path", path)

	data, err := json.MarshalIndent(File{
		Version:    FormatVersion,
		SavedAt:    time.Now().UTC(),
		Level:      level.Snapshot(),
		Transcript: transcript,
	}, "", "  ")
	if err != nil {
		return errb.Wrapf(err, "encoding level")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return errb.Wrapf(err, "creating temporary file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errb.Wrapf(err, "writing level")
	}
	if err := tmp.Close(); err != nil {
		return errb.Wrapf(err, "closing level file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errb.Wrapf(err, "replacing %s", path)
	}
	return nil
}

// Load reads a level saved by Save and rebuilds it under the given limits.
func Load(path string, limits world.Limits) (*world.Level, []string, error) {
	errb := oops.In("store").With("path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errb.Wrapf(err, "reading level")
	}
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, errb.Wrapf(err, "decoding level")
	}
	if file.Version != FormatVersion {
		return nil, nil, errb.With("version", file.Version).Wrapf(ErrVersion, "version %d", file.Version)
	}
	level, err := world.Restore(limits, file.Level)
	if err != nil {
		return nil, nil, errb.Wrapf(err, "restoring level")
	}
	return level, file.Transcript, nil
}
