package archive

import (
	"archive/zip"
	"io"
	"iter"
	"strings"

	"github.com/vesselworks/wasm-bundle/errors"
)

// UnitSuffix is the fixed suffix marking an archive entry as a compiled
// unit. Entries without it (resources, manifests) are ignored by Units.
const UnitSuffix = ".wasm"

// Archive is an open bundle archive. It is a scoped resource: Open it at
// the start of a load call and Close it on every exit path.
type Archive struct {
	path string
	zr   *zip.ReadCloser
}

// Open opens the bundle archive at path.
func Open(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Open(path, err)
	}
	return &Archive{path: path, zr: zr}, nil
}

// Path returns the bundle path the archive was opened from.
func (a *Archive) Path() string {
	return a.path
}

// Close releases the archive handle.
func (a *Archive) Close() error {
	return a.zr.Close()
}

// Entries yields all entry names in archive-native order, directories
// included. No sorting, no deduplication.
func (a *Archive) Entries() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range a.zr.File {
			if !yield(f.Name) {
				return
			}
		}
	}
}

// Units yields the compiled-unit entry names: file entries whose name
// ends with UnitSuffix, in archive-native order.
func (a *Archive) Units() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range a.zr.File {
			if f.FileInfo().IsDir() {
				continue
			}
			if !strings.HasSuffix(f.Name, UnitSuffix) {
				continue
			}
			if !yield(f.Name) {
				return
			}
		}
	}
}

// Read returns the contents of the named entry.
func (a *Archive) Read(entry string) ([]byte, error) {
	for _, f := range a.zr.File {
		if f.Name != entry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.New(errors.PhaseEnumerate, errors.KindIO).Bundle(a.path).Entry(entry).Cause(err).Build()
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, errors.New(errors.PhaseEnumerate, errors.KindIO).Bundle(a.path).Entry(entry).Cause(err).Build()
		}
		return data, nil
	}
	return nil, errors.NotFound(errors.PhaseEnumerate, "entry", entry)
}

// UnitName converts a compiled-unit entry name to its dotted unit name:
// the suffix is stripped and path separators become dots, so
// "plugins/http/handler.wasm" resolves as "plugins.http.handler".
func UnitName(entry string) (string, error) {
	if !strings.HasSuffix(entry, UnitSuffix) {
		return "", errors.BadName(entry, "missing unit suffix")
	}
	trimmed := strings.TrimSuffix(entry, UnitSuffix)
	if trimmed == "" {
		return "", errors.BadName(entry, "empty unit name")
	}
	for _, seg := range strings.Split(trimmed, "/") {
		if seg == "" {
			return "", errors.BadName(entry, "empty path segment")
		}
	}
	return strings.ReplaceAll(trimmed, "/", "."), nil
}
