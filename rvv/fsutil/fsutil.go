// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fsutil holds the file helpers shared by generation and merge.
package fsutil

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"
)

// SaveFile writes content to filename, creating parent directories as
// needed. When the file already holds exactly content it is left untouched,
// so build systems see no new modification time, and changed is false.
func SaveFile(filename, content string) (changed bool, err error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return false, fmt.Errorf("create directory for %s: %w", filename, err)
	}
	old, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if bytes.Equal(old, []byte(content)) {
			return false, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read %s: %w", filename, err)
	}
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", filename, err)
	}
	return true, nil
}

// ReadFile returns the contents of filename as a string.
func ReadFile(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ListNames returns the sorted names of the regular files in dir accepted by
// keep. A nil keep accepts every file.
func ListNames(dir string, keep func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		if e.IsDir() {
			return "", false
		}
		return e.Name(), keep == nil || keep(e.Name())
	})
	sort.Strings(names)
	return names, nil
}
