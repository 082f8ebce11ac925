// Package persist turns an edited state into a file on disk.
//
// A commit runs in two halves. Prepare* is synchronous: it clones the
// selected file, maps the editable state onto the clone and serializes it.
// Nothing touches the disk until Write, which backs up the pre-edit bytes and
// only then replaces the destination.
package persist

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/studiowebux/bl3edit/internal/codec"
	"github.com/studiowebux/bl3edit/internal/editstate"
	"github.com/studiowebux/bl3edit/internal/history"
	"github.com/studiowebux/bl3edit/internal/registry"
	"github.com/studiowebux/bl3edit/internal/types"
)

// Recorder stores a ledger entry for every successful write
type Recorder interface {
	Record(history.Entry) error
}

// Pipeline runs commits against one codec
type Pipeline struct {
	codec    codec.Codec
	recorder Recorder
	now      func() time.Time
	logger   *zap.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithRecorder records every commit in the history ledger
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithClock overrides the clock used for backup names
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a pipeline
func New(c codec.Codec, opts ...Option) *Pipeline {
	p := &Pipeline{
		codec:  c,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prepared is a validated, serialized commit waiting to be written
type Prepared struct {
	// Source is the file as it was selected. It is never modified.
	Source types.LoadedFile
	// File is the mapped clone, named after the destination
	File     types.LoadedFile
	Data     []byte
	Metadata codec.Metadata
	SavesDir string

	// GuardianInjection is set for profiles whose guardian rank changed
	GuardianInjection bool
}

// SourcePath is where the pre-edit bytes are read from
func (p *Prepared) SourcePath() string {
	return filepath.Join(p.SavesDir, p.Source.FileName)
}

// DestinationPath is where the new bytes are written
func (p *Prepared) DestinationPath() string {
	return filepath.Join(p.SavesDir, p.File.FileName)
}

// PrepareSave maps state onto a clone of file and serializes it
func (p *Pipeline) PrepareSave(file types.LoadedFile, state editstate.SaveState, savesDir string) (*Prepared, error) {
	if !file.IsSave() {
		return nil, &types.UnexpectedVariantError{Want: "save", Header: file.Kind}
	}

	clone := file.Clone()
	if err := editstate.MapSave(state, clone.Save); err != nil {
		return nil, err
	}

	name, err := destinationName(state.General.FileName, file.FileName)
	if err != nil {
		return nil, err
	}
	clone.FileName = name
	clone.Kind = clone.Save.Header

	return p.serialize(file, clone, savesDir, false)
}

// PrepareProfile maps state onto a clone of file and serializes it
func (p *Pipeline) PrepareProfile(file types.LoadedFile, state editstate.ProfileState, savesDir string) (*Prepared, error) {
	if !file.IsProfile() {
		return nil, &types.UnexpectedVariantError{Want: "profile", Header: file.Kind}
	}

	clone := file.Clone()
	injection, err := editstate.MapProfile(state, clone.Profile)
	if err != nil {
		return nil, err
	}
	clone.Kind = clone.Profile.Header

	return p.serialize(file, clone, savesDir, injection)
}

func (p *Pipeline) serialize(source, clone types.LoadedFile, savesDir string, injection bool) (*Prepared, error) {
	data, meta, err := p.codec.Serialize(clone)
	if err != nil {
		return nil, err
	}
	return &Prepared{
		Source:            source,
		File:              clone,
		Data:              data,
		Metadata:          meta,
		SavesDir:          savesDir,
		GuardianInjection: injection,
	}, nil
}

// destinationName keeps renamed saves inside the saves directory
func destinationName(edited, current string) (string, error) {
	if edited == "" {
		return current, nil
	}
	if filepath.Base(edited) != edited || edited == "." || edited == ".." {
		return "", &editstate.ValidationError{Field: "general.file_name", Message: fmt.Sprintf("%q is not a plain file name", edited)}
	}
	if !codec.Recognized(edited) {
		return "", &editstate.ValidationError{Field: "general.file_name", Message: fmt.Sprintf("%q does not end in .sav", edited)}
	}
	return edited, nil
}

// Commit describes a finished write
type Commit struct {
	File        types.LoadedFile
	Destination string
	Backups     []string

	// Injected lists the saves that received the profile's guardian rank
	Injected []string
	// InjectionErr joins the failures of individual saves. The profile
	// itself was written when this is set.
	InjectionErr error
}

// Write backs up the pre-edit bytes and then writes the prepared file.
// If the backup fails the destination is not touched.
func (p *Pipeline) Write(ctx context.Context, prep *Prepared, backupDir string) (Commit, error) {
	commit := Commit{File: prep.File, Destination: prep.DestinationPath()}

	backups, err := p.backupBeforeWrite(prep, backupDir)
	if err != nil {
		return commit, err
	}
	commit.Backups = backups

	if err := ctx.Err(); err != nil {
		return commit, err
	}

	if err := writeAtomic(commit.Destination, prep.Data); err != nil {
		return commit, &registry.DirectoryError{Op: "write", Path: commit.Destination, Err: err}
	}

	p.logger.Info("file written",
		zap.String("file", prep.File.FileName),
		zap.String("kind", prep.File.Kind.String()),
		zap.Strings("backups", backups),
		zap.String("checksum", prep.Metadata.Checksum),
		zap.Int("size", prep.Metadata.Size),
	)

	if prep.GuardianInjection {
		commit.Injected, commit.InjectionErr = p.injectGuardianRank(ctx, prep, backupDir)
		if commit.InjectionErr != nil {
			p.logger.Error("guardian rank injection incomplete", zap.Error(commit.InjectionErr))
		}
	}

	p.record(prep, commit)

	return commit, nil
}

// backupBeforeWrite copies the source file, and the destination when a
// rename would overwrite another file
func (p *Pipeline) backupBeforeWrite(prep *Prepared, backupDir string) ([]string, error) {
	source := prep.SourcePath()
	backup, err := p.backupFile(source, backupDir)
	if err != nil {
		return nil, err
	}
	backups := []string{backup}

	dest := prep.DestinationPath()
	if dest != source && fileExists(dest) {
		extra, err := p.backupFile(dest, backupDir)
		if err != nil {
			return backups, err
		}
		backups = append(backups, extra)
	}
	return backups, nil
}

func (p *Pipeline) record(prep *Prepared, commit Commit) {
	if p.recorder == nil {
		return
	}
	entry := history.Entry{
		Timestamp:         p.now(),
		FileName:          prep.File.FileName,
		Kind:              prep.File.Kind,
		Destination:       commit.Destination,
		Backups:           commit.Backups,
		Checksum:          prep.Metadata.Checksum,
		Size:              prep.Metadata.Size,
		GuardianInjection: prep.GuardianInjection,
	}
	if err := p.recorder.Record(entry); err != nil {
		p.logger.Warn("failed to record commit history", zap.String("file", prep.File.FileName), zap.Error(err))
	}
}

// Reload rescans the saves directory after a write
func (p *Pipeline) Reload(ctx context.Context, savesDir string) (registry.Result, error) {
	return registry.NewScanner(p.codec, registry.Options{}).Load(ctx, savesDir)
}

// IsCommitError reports whether err came from mapping or serializing, as
// opposed to the disk
func IsCommitError(err error) bool {
	var (
		ve *editstate.ValidationError
		ce *codec.CodecError
	)
	return errors.As(err, &ve) || errors.As(err, &ce)
}
