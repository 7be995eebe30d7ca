// Package jsonfile reads and writes whole JSON documents on disk.
//
// Writes are not atomic: a crash mid-write can leave a truncated file.
package jsonfile

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Read decodes the file at path into v. A missing file is returned as an
// error satisfying errors.Is(err, fs.ErrNotExist).
func Read(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}

// Write encodes v as indented JSON and replaces the file at path.
func Write(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
