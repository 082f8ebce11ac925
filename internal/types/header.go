package types

import "fmt"

// HeaderType identifies the platform and domain of a parsed file
type HeaderType uint8

const (
	HeaderPcSave HeaderType = iota + 1
	HeaderPs4Save
	HeaderPcProfile
	HeaderPs4Profile
)

// AllHeaderTypes lists every recognized header in display order
var AllHeaderTypes = []HeaderType{HeaderPcSave, HeaderPs4Save, HeaderPcProfile, HeaderPs4Profile}

// SaveHeaderTypes are the headers a save file may be written with
var SaveHeaderTypes = []HeaderType{HeaderPcSave, HeaderPs4Save}

// ProfileHeaderTypes are the headers a profile may be written with
var ProfileHeaderTypes = []HeaderType{HeaderPcProfile, HeaderPs4Profile}

func (h HeaderType) String() string {
	switch h {
	case HeaderPcSave:
		return "PC Save"
	case HeaderPs4Save:
		return "PS4 Save"
	case HeaderPcProfile:
		return "PC Profile"
	case HeaderPs4Profile:
		return "PS4 Profile"
	default:
		return fmt.Sprintf("HeaderType(%d)", uint8(h))
	}
}

// Valid reports whether h is one of the known header types
func (h HeaderType) Valid() bool {
	return h >= HeaderPcSave && h <= HeaderPs4Profile
}

// IsSave reports whether h describes a character save
func (h HeaderType) IsSave() bool {
	return h == HeaderPcSave || h == HeaderPs4Save
}

// IsProfile reports whether h describes a profile
func (h HeaderType) IsProfile() bool {
	return h == HeaderPcProfile || h == HeaderPs4Profile
}

// Domain returns "save" or "profile"
func (h HeaderType) Domain() string {
	if h.IsProfile() {
		return "profile"
	}
	return "save"
}
