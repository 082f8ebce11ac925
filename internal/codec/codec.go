// Package codec converts between on-disk bytes and LoadedFile values.
//
// The editor treats the file format as opaque: everything it needs goes
// through the Codec interface. Binary is the codec shipped with bl3edit.
package codec

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/studiowebux/bl3edit/internal/types"
)

// Codec parses and serializes save and profile files
type Codec interface {
	// Parse decodes data read from the file called name
	Parse(name string, data []byte) (types.LoadedFile, error)

	// Serialize encodes f and reports codec-computed metadata
	Serialize(f types.LoadedFile) ([]byte, Metadata, error)
}

// Metadata is computed by the codec while serializing
type Metadata struct {
	Checksum string
	Size     int
}

// CodecError wraps every parse or serialize failure
type CodecError struct {
	Op   string // "parse" or "serialize"
	Name string
	Err  error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Name, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// Recognized reports whether the scanner should try to parse name
func Recognized(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".sav")
}
