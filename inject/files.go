package inject

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
)

type SettingsFile struct {
	Name   string
	Reader io.Reader
	Length int
}

// SettingsFiles locates settings files under Root: a required defaults.yaml and any
// number of overrides in interpreters/, applied in file name order.
type SettingsFiles struct {
	Root  string
	Files SettingsFS
}

type SettingsFS interface {
	Open(name string) (fs.File, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
}

func (sf SettingsFiles) MustFindRootSettingsFile(filename string) (SettingsFile, error) {
	var result SettingsFile
	name := path.Join(sf.Root, filename)
	b, err := sf.Files.ReadFile(name)
	if err == nil {
		result.Name = name
		result.Reader = bytes.NewReader(b)
		result.Length = len(b)
	}
	return result, err
}

func (sf SettingsFiles) MustFindDefaultsSettingsFile() (SettingsFile, error) {
	return sf.MustFindRootSettingsFile("defaults.yaml")
}

// FindInterpreterSettingsFiles returns the override files in interpreters/.
// A missing directory is not an error.
func (sf SettingsFiles) FindInterpreterSettingsFiles() ([]SettingsFile, error) {
	dir := path.Join(sf.Root, "interpreters")
	entries, err := sf.Files.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var result []SettingsFile
	for _, n := range names {
		p := path.Join(dir, n)
		b, err := sf.Files.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file %s %w", p, err)
		}
		result = append(result, SettingsFile{Name: p, Reader: bytes.NewReader(b), Length: len(b)})
	}
	return result, nil
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
