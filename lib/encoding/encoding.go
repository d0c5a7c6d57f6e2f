// Package encoding is the registry of definition file formats. Formats live in
// subpackages and register themselves on import.
package encoding

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/schemagraph/schemagraph/lib/ir"
)

var registryMutex sync.Mutex

type Format string

type Encoding interface {
	Import(*slog.Logger, io.Reader) (*ir.Definition, error)
	Export(*slog.Logger, *ir.Definition, io.Writer) error
}

var encodings = make(map[Format]func() Encoding)
var extensions = make(map[string]Format)

// Register makes a format available by id and by the given file extensions.
func Register(id Format, constructor func() Encoding, exts ...string) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	encodings[id] = constructor
	for _, ext := range exts {
		extensions[strings.ToLower(ext)] = id
	}
}

func Get(id Format) (Encoding, error) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	constructor, exists := encodings[id]
	if !exists {
		return nil, fmt.Errorf("no such encoding as %s", id)
	}
	return constructor(), nil
}

// ForFile picks the encoding registered for the file's extension.
func ForFile(file string) (Encoding, error) {
	ext := strings.ToLower(filepath.Ext(file))
	registryMutex.Lock()
	id, ok := extensions[ext]
	registryMutex.Unlock()
	if !ok {
		return nil, fmt.Errorf("no encoding handles %q files", ext)
	}
	return Get(id)
}

func Registered() []Format {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	out := make([]Format, 0, len(encodings))
	for id := range encodings {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LoadDefinition reads a definition file in whichever format its extension names.
func LoadDefinition(l *slog.Logger, file string) (*ir.Definition, error) {
	enc, err := ForFile(file)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read definition file %s", file)
	}
	defer f.Close()

	def, err := enc.Import(l, f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse definition file %s", file)
	}
	return def, nil
}

func SaveDefinition(l *slog.Logger, file string, def *ir.Definition) error {
	enc, err := ForFile(file)
	if err != nil {
		return err
	}
	f, err := os.Create(file)
	if err != nil {
		return errors.Wrapf(err, "could not open file %s for writing", file)
	}
	defer f.Close()
	return errors.Wrapf(enc.Export(l, def, f), "could not write definition to %s", file)
}
