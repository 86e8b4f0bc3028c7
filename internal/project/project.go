// Package project persists and restores a load plan's inputs — the
// container and cargo manifest an operator is working on — as a
// project file, so a session can be saved and reopened.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cargostow/loadengine/internal/model"
)

// File is the on-disk shape described by the project file format: a
// plain key-value dump of the container, the cargo list, and when it
// was saved.
type File struct {
	Container model.Container   `json:"container"`
	CargoList []model.CargoItem `json:"cargoList"`
	Date      string            `json:"date"`
	Version   string            `json:"version"`
}

const currentVersion = "1"

// DefaultDir returns the directory project files are saved under by
// default: ~/.loadengine/
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".loadengine")
}

// Save writes a project file to path, creating parent directories as
// needed.
func Save(path string, container model.Container, cargo []model.CargoItem, date string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	file := File{
		Container: container,
		CargoList: cargo,
		Date:      date,
		Version:   currentVersion,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project file from path. If the file does not exist, it
// returns a zero-value File with no error — there is nothing to
// restore yet, which is not itself an error condition.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, err
	}
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return File{}, err
	}
	if file.CargoList == nil {
		file.CargoList = []model.CargoItem{}
	}
	return file, nil
}
