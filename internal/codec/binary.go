package codec

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/studiowebux/bl3edit/internal/types"
)

const (
	// FormatVersion is written into every file produced by Binary
	FormatVersion uint16 = 1

	headerSize  = 4 + 2 + 1 + 4 // magic + version + kind + payload length
	trailerSize = 4             // crc32
)

var magic = [4]byte{'B', 'L', '3', 'E'}

var (
	ErrBadMagic    = errors.New("not a bl3edit container")
	ErrBadVersion  = errors.New("unsupported container version")
	ErrTruncated   = errors.New("truncated file")
	ErrBadChecksum = errors.New("checksum mismatch")
	ErrUnknownKind = errors.New("unknown file kind")
)

// Binary is a length-prefixed container around a JSON model with a CRC-32 trailer
type Binary struct{}

// NewBinary creates the default codec
func NewBinary() *Binary {
	return &Binary{}
}

// Parse decodes a container
func (b *Binary) Parse(name string, data []byte) (types.LoadedFile, error) {
	f, err := b.parse(name, data)
	if err != nil {
		return types.LoadedFile{}, &CodecError{Op: "parse", Name: name, Err: err}
	}
	return f, nil
}

func (b *Binary) parse(name string, data []byte) (types.LoadedFile, error) {
	if len(data) < headerSize+trailerSize {
		return types.LoadedFile{}, ErrTruncated
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return types.LoadedFile{}, ErrBadMagic
	}

	version := binary.LittleEndian.Uint16(data[4:6])
	if version != FormatVersion {
		return types.LoadedFile{}, fmt.Errorf("%w: %d", ErrBadVersion, version)
	}

	kind := types.HeaderType(data[6])
	if !kind.Valid() {
		return types.LoadedFile{}, fmt.Errorf("%w: %d", ErrUnknownKind, data[6])
	}

	length := binary.LittleEndian.Uint32(data[7:11])
	if uint64(len(data)) != uint64(headerSize)+uint64(length)+trailerSize {
		return types.LoadedFile{}, ErrTruncated
	}

	payload := data[headerSize : headerSize+int(length)]
	want := binary.LittleEndian.Uint32(data[headerSize+int(length):])
	if got := crc32.ChecksumIEEE(payload); got != want {
		return types.LoadedFile{}, fmt.Errorf("%w: got %08x, want %08x", ErrBadChecksum, got, want)
	}

	if kind.IsSave() {
		var save types.SaveModel
		if err := json.Unmarshal(payload, &save); err != nil {
			return types.LoadedFile{}, fmt.Errorf("failed to decode save: %w", err)
		}
		save.Header = kind
		return types.NewSaveFile(name, &save)
	}

	var profile types.ProfileModel
	if err := json.Unmarshal(payload, &profile); err != nil {
		return types.LoadedFile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	profile.Header = kind
	return types.NewProfileFile(name, &profile)
}

// Serialize encodes f. The container kind comes from the model header, so
// a save whose header was switched from PC to PS4 is written as PS4.
func (b *Binary) Serialize(f types.LoadedFile) ([]byte, Metadata, error) {
	out, err := b.serialize(f)
	if err != nil {
		return nil, Metadata{}, &CodecError{Op: "serialize", Name: f.FileName, Err: err}
	}
	payload := out[headerSize : len(out)-trailerSize]
	return out, Metadata{
		Checksum: fmt.Sprintf("%08x", crc32.ChecksumIEEE(payload)),
		Size:     len(out),
	}, nil
}

func (b *Binary) serialize(f types.LoadedFile) ([]byte, error) {
	var (
		kind  types.HeaderType
		model any
	)
	switch {
	case f.Save != nil:
		kind = f.Save.Header
		if !kind.IsSave() {
			return nil, &types.UnexpectedVariantError{Want: "save", Header: kind}
		}
		model = f.Save
	case f.Profile != nil:
		kind = f.Profile.Header
		if !kind.IsProfile() {
			return nil, &types.UnexpectedVariantError{Want: "profile", Header: kind}
		}
		model = f.Profile
	default:
		return nil, errors.New("file has no model")
	}

	payload, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("failed to encode model: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + len(payload) + trailerSize)
	buf.Write(magic[:])
	binary.Write(&buf, binary.LittleEndian, FormatVersion)
	buf.WriteByte(byte(kind))
	binary.Write(&buf, binary.LittleEndian, uint32(len(payload)))
	buf.Write(payload)
	binary.Write(&buf, binary.LittleEndian, crc32.ChecksumIEEE(payload))

	return buf.Bytes(), nil
}
