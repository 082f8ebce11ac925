package types

import "fmt"

// LoadedFile is one parsed file from the saves directory.
// Exactly one of Save or Profile is set, matching Kind.
type LoadedFile struct {
	Kind     HeaderType
	FileName string
	Save     *SaveModel
	Profile  *ProfileModel
}

// UnexpectedVariantError reports a model whose header does not belong to the
// domain the caller asked for. It signals that the codec and the caller
// disagree on file kinds.
type UnexpectedVariantError struct {
	Want   string
	Header HeaderType
}

func (e *UnexpectedVariantError) Error() string {
	return fmt.Sprintf("unexpected file kind %s, expected a %s", e.Header, e.Want)
}

// NewSaveFile wraps a save model
func NewSaveFile(fileName string, save *SaveModel) (LoadedFile, error) {
	if save == nil || !save.Header.IsSave() {
		var h HeaderType
		if save != nil {
			h = save.Header
		}
		return LoadedFile{}, &UnexpectedVariantError{Want: "save", Header: h}
	}
	return LoadedFile{Kind: save.Header, FileName: fileName, Save: save}, nil
}

// NewProfileFile wraps a profile model
func NewProfileFile(fileName string, profile *ProfileModel) (LoadedFile, error) {
	if profile == nil || !profile.Header.IsProfile() {
		var h HeaderType
		if profile != nil {
			h = profile.Header
		}
		return LoadedFile{}, &UnexpectedVariantError{Want: "profile", Header: h}
	}
	return LoadedFile{Kind: profile.Header, FileName: fileName, Profile: profile}, nil
}

// IsSave reports whether the file is a character save
func (f LoadedFile) IsSave() bool { return f.Kind.IsSave() && f.Save != nil }

// IsProfile reports whether the file is a profile
func (f LoadedFile) IsProfile() bool { return f.Kind.IsProfile() && f.Profile != nil }

// IsZero reports whether f holds no file
func (f LoadedFile) IsZero() bool { return f.Kind == 0 && f.FileName == "" }

// Equal compares kind and file name only
func (f LoadedFile) Equal(other LoadedFile) bool {
	return f.Kind == other.Kind && f.FileName == other.FileName
}

// Less orders files by name, then by kind
func (f LoadedFile) Less(other LoadedFile) bool {
	if f.FileName != other.FileName {
		return f.FileName < other.FileName
	}
	return f.Kind < other.Kind
}

// Clone returns a deep copy whose models can be mutated freely
func (f LoadedFile) Clone() LoadedFile {
	c := f
	c.Save = f.Save.Clone()
	c.Profile = f.Profile.Clone()
	return c
}

// Label is the text shown in the file picker
func (f LoadedFile) Label() string {
	switch {
	case f.IsSave():
		name := f.Save.Character.Name
		if name == "" {
			name = "unnamed"
		}
		return fmt.Sprintf("%s (%s, %s)", f.FileName, name, f.Kind)
	case f.IsProfile():
		return fmt.Sprintf("%s (%s)", f.FileName, f.Kind)
	default:
		return f.FileName
	}
}

func (f LoadedFile) String() string { return f.Label() }
