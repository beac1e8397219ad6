// Package fontload reads font files from disk, resolving bare font
// names against the platform's system font directories.
package fontload

import (
	"os"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("glyphmap")
}

// Read loads the raw bytes of a font file.
func Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Locate resolves a font name to a file path, searching the system
// font directories.
func Locate(name string) (string, error) {
	fpath, err := findfont.Find(name)
	if err != nil {
		return "", err
	}
	tracer().Debugf("found %s as system font %s", name, fpath)
	return fpath, nil
}

// Load reads a font given either a file path or a bare font name. Names
// without a path separator are resolved as system fonts first, falling
// back to the working directory.
func Load(nameOrPath string) ([]byte, error) {
	if !strings.ContainsAny(nameOrPath, `/\`) {
		if fpath, err := Locate(nameOrPath); err == nil {
			return Read(fpath)
		}
	}
	return Read(nameOrPath)
}
