package persist

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/studiowebux/bl3edit/internal/codec"
	"github.com/studiowebux/bl3edit/internal/editstate"
	"github.com/studiowebux/bl3edit/internal/history"
	"github.com/studiowebux/bl3edit/internal/registry"
	"github.com/studiowebux/bl3edit/internal/types"
)

var fixedTime = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

type fakeRecorder struct {
	entries []history.Entry
	err     error
}

func (r *fakeRecorder) Record(e history.Entry) error {
	r.entries = append(r.entries, e)
	return r.err
}

type failingCodec struct {
	codec.Codec
}

func (failingCodec) Serialize(f types.LoadedFile) ([]byte, codec.Metadata, error) {
	return nil, codec.Metadata{}, &codec.CodecError{Op: "serialize", Name: f.FileName, Err: errors.New("boom")}
}

func newPipeline(rec Recorder) *Pipeline {
	opts := []Option{WithClock(func() time.Time { return fixedTime })}
	if rec != nil {
		opts = append(opts, WithRecorder(rec))
	}
	return New(codec.NewBinary(), opts...)
}

func saveModel(name string, level int) *types.SaveModel {
	return &types.SaveModel{
		Header: types.HeaderPcSave,
		GUID:   "0123456789ABCDEF0123456789ABCDEF",
		Slot:   1,
		Character: types.Character{
			Name:             name,
			ExperiencePoints: types.RequiredXP(level),
			PlayerClass:      types.ClassSiren,
			HeadSkin:         "Default",
			CharacterSkin:    "Default",
			EchoTheme:        "Default",
		},
	}
}

func writeFile(t *testing.T, dir, name string, f types.LoadedFile) []byte {
	t.Helper()
	data, _, err := codec.NewBinary().Serialize(f)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		t.Fatal(err)
	}
	return data
}

func writeSave(t *testing.T, dir, name string, level int) []byte {
	t.Helper()
	f, err := types.NewSaveFile(name, saveModel(name, level))
	if err != nil {
		t.Fatal(err)
	}
	return writeFile(t, dir, name, f)
}

func loadDir(t *testing.T, dir string) *registry.Registry {
	t.Helper()
	result, err := registry.NewScanner(codec.NewBinary(), registry.Options{}).Load(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	r := registry.New()
	r.Replace(result.Files)
	return r
}

func findFile(t *testing.T, r *registry.Registry, name string) types.LoadedFile {
	t.Helper()
	for _, f := range r.Files() {
		if f.FileName == name {
			return f
		}
	}
	t.Fatalf("%s not loaded", name)
	return types.LoadedFile{}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestCommitSaveLevel(t *testing.T) {
	savesDir := t.TempDir()
	backupDir := filepath.Join(t.TempDir(), "backups")
	writeSave(t, savesDir, "save1.sav", 10)
	original := writeSave(t, savesDir, "save2.sav", 20)

	reg := loadDir(t, savesDir)
	selected := findFile(t, reg, "save2.sav")
	if err := reg.Select(selected); err != nil {
		t.Fatal(err)
	}

	state := editstate.SeedSave(selected)
	state.SetLevel(50)

	rec := &fakeRecorder{}
	p := newPipeline(rec)

	prep, err := p.PrepareSave(selected, state, savesDir)
	if err != nil {
		t.Fatalf("PrepareSave() error = %v", err)
	}
	commit, err := p.Write(context.Background(), prep, backupDir)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if len(commit.Backups) != 1 {
		t.Fatalf("Backups = %v, want one", commit.Backups)
	}
	backup, err := os.ReadFile(commit.Backups[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(backup, original) {
		t.Error("backup does not hold the pre-edit bytes")
	}
	wantBackup := BackupName("save2.sav", "20261019_093000", original)
	if filepath.Base(commit.Backups[0]) != wantBackup {
		t.Errorf("backup name = %s, want %s", filepath.Base(commit.Backups[0]), wantBackup)
	}

	result, err := p.Reload(context.Background(), savesDir)
	if err != nil {
		t.Fatal(err)
	}
	reg.Replace(result.Files)
	reselected, found := reg.Reselect(commit.File)
	if !found || reselected.FileName != "save2.sav" {
		t.Fatalf("Reselect() = %v, %v", reselected, found)
	}
	level, _ := types.LevelForXP(reselected.Save.Character.ExperiencePoints)
	if level != 50 {
		t.Errorf("written level = %d, want 50", level)
	}

	if selected.Save.Character.ExperiencePoints != types.RequiredXP(20) {
		t.Error("the previously selected file was modified")
	}

	if len(rec.entries) != 1 || rec.entries[0].FileName != "save2.sav" || rec.entries[0].Checksum != prep.Metadata.Checksum {
		t.Errorf("recorded entries = %+v", rec.entries)
	}
}

func TestPrepareSave_ValidationFailureDoesNoIO(t *testing.T) {
	savesDir := t.TempDir()
	backupDir := filepath.Join(t.TempDir(), "backups")
	original := writeSave(t, savesDir, "save1.sav", 10)

	reg := loadDir(t, savesDir)
	selected := findFile(t, reg, "save1.sav")
	state := editstate.SeedSave(selected)
	state.SetLevel(types.MaxLevel + 1)

	prep, err := newPipeline(nil).PrepareSave(selected, state, savesDir)

	var ve *editstate.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("PrepareSave() error = %v, want ValidationError", err)
	}
	if prep != nil {
		t.Error("PrepareSave returned a commit despite the error")
	}

	if got := listDir(t, backupDir); len(got) != 0 {
		t.Errorf("backup dir contents = %v, want none", got)
	}
	data, err := os.ReadFile(filepath.Join(savesDir, "save1.sav"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, original) {
		t.Error("original file changed")
	}
	level, _ := types.LevelForXP(selected.Save.Character.ExperiencePoints)
	if level != 10 {
		t.Error("loaded file was modified")
	}
}

func TestPrepareSave_SerializeFailure(t *testing.T) {
	savesDir := t.TempDir()
	writeSave(t, savesDir, "save1.sav", 10)
	selected := findFile(t, loadDir(t, savesDir), "save1.sav")

	p := New(failingCodec{codec.NewBinary()})
	_, err := p.PrepareSave(selected, editstate.SeedSave(selected), savesDir)

	var ce *codec.CodecError
	if !errors.As(err, &ce) {
		t.Fatalf("PrepareSave() error = %v, want CodecError", err)
	}
	if !IsCommitError(err) {
		t.Error("IsCommitError should accept codec errors")
	}
}

func TestPrepare_WrongVariant(t *testing.T) {
	profile, err := types.NewProfileFile("profile.sav", &types.ProfileModel{Header: types.HeaderPcProfile})
	if err != nil {
		t.Fatal(err)
	}
	p := newPipeline(nil)

	var variantErr *types.UnexpectedVariantError
	if _, err := p.PrepareSave(profile, editstate.SaveState{}, t.TempDir()); !errors.As(err, &variantErr) {
		t.Errorf("PrepareSave(profile) error = %v", err)
	}

	save, err := types.NewSaveFile("1.sav", saveModel("x", 1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.PrepareProfile(save, editstate.ProfileState{}, t.TempDir()); !errors.As(err, &variantErr) {
		t.Errorf("PrepareProfile(save) error = %v", err)
	}
}

func TestWrite_BackupFailureLeavesDestination(t *testing.T) {
	savesDir := t.TempDir()
	original := writeSave(t, savesDir, "save1.sav", 10)
	selected := findFile(t, loadDir(t, savesDir), "save1.sav")

	// A regular file where the backup directory should be
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	state := editstate.SeedSave(selected)
	state.SetLevel(40)
	p := newPipeline(nil)
	prep, err := p.PrepareSave(selected, state, savesDir)
	if err != nil {
		t.Fatal(err)
	}

	_, err = p.Write(context.Background(), prep, blocker)

	var dirErr *registry.DirectoryError
	if !errors.As(err, &dirErr) || dirErr.Op != "backup" {
		t.Fatalf("Write() error = %v, want backup DirectoryError", err)
	}
	data, err := os.ReadFile(filepath.Join(savesDir, "save1.sav"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, original) {
		t.Error("destination was written although the backup failed")
	}
}

func TestWrite_SlotChangeBacksUpBothFiles(t *testing.T) {
	savesDir := t.TempDir()
	backupDir := t.TempDir()
	writeSave(t, savesDir, "1.sav", 10)
	writeSave(t, savesDir, "a.sav", 30)

	selected := findFile(t, loadDir(t, savesDir), "1.sav")
	state := editstate.SeedSave(selected)
	state.SetSlot(10)

	p := newPipeline(nil)
	prep, err := p.PrepareSave(selected, state, savesDir)
	if err != nil {
		t.Fatal(err)
	}
	if prep.File.FileName != "a.sav" {
		t.Fatalf("destination = %s, want a.sav", prep.File.FileName)
	}

	commit, err := p.Write(context.Background(), prep, backupDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(commit.Backups) != 2 {
		t.Fatalf("Backups = %v, want source and overwritten destination", commit.Backups)
	}

	reg := loadDir(t, savesDir)
	written := findFile(t, reg, "a.sav")
	if written.Save.Slot != 10 {
		t.Errorf("slot = %d, want 10", written.Save.Slot)
	}
	if _, err := os.Stat(filepath.Join(savesDir, "1.sav")); err != nil {
		t.Error("source file should be kept when writing under a new slot")
	}
}

func TestWrite_FailureAfterBackup(t *testing.T) {
	savesDir := t.TempDir()
	backupDir := t.TempDir()
	original := writeSave(t, savesDir, "1.sav", 10)
	selected := findFile(t, loadDir(t, savesDir), "1.sav")

	// Slot 10 is written to a.sav, which is occupied by a directory
	blocker := filepath.Join(savesDir, "a.sav")
	if err := os.MkdirAll(filepath.Join(blocker, "keep"), 0755); err != nil {
		t.Fatal(err)
	}

	state := editstate.SeedSave(selected)
	state.SetSlot(10)
	rec := &fakeRecorder{}
	p := newPipeline(rec)
	prep, err := p.PrepareSave(selected, state, savesDir)
	if err != nil {
		t.Fatal(err)
	}

	commit, err := p.Write(context.Background(), prep, backupDir)

	var dirErr *registry.DirectoryError
	if !errors.As(err, &dirErr) || dirErr.Op != "write" {
		t.Fatalf("Write() error = %v, want write DirectoryError", err)
	}
	if dirErr.Path != blocker {
		t.Errorf("error path = %s, want %s", dirErr.Path, blocker)
	}
	if len(commit.Backups) != 1 || len(listDir(t, backupDir)) != 1 {
		t.Errorf("Backups = %v, backup dir = %v, want the source backup only", commit.Backups, listDir(t, backupDir))
	}
	if len(rec.entries) != 0 {
		t.Errorf("failed write was recorded: %+v", rec.entries)
	}

	data, err := os.ReadFile(filepath.Join(savesDir, "1.sav"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, original) {
		t.Error("source changed although the write failed")
	}
	names := listDir(t, savesDir)
	if len(names) != 2 {
		t.Errorf("saves dir = %v, want 1.sav and a.sav with no temp files", names)
	}
}

func TestPrepareSave_RejectsPathInFileName(t *testing.T) {
	savesDir := t.TempDir()
	writeSave(t, savesDir, "1.sav", 10)
	selected := findFile(t, loadDir(t, savesDir), "1.sav")

	state := editstate.SeedSave(selected)
	state.General.FileName = "../escape.sav"

	_, err := newPipeline(nil).PrepareSave(selected, state, savesDir)
	var ve *editstate.ValidationError
	if !errors.As(err, &ve) || ve.Field != "general.file_name" {
		t.Errorf("PrepareSave() error = %v", err)
	}
}

func TestBackupFile_CollisionGetsSuffix(t *testing.T) {
	dir := t.TempDir()
	backupDir := t.TempDir()
	writeSave(t, dir, "1.sav", 5)
	p := newPipeline(nil)

	first, err := p.backupFile(filepath.Join(dir, "1.sav"), backupDir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.backupFile(filepath.Join(dir, "1.sav"), backupDir)
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Fatal("second backup overwrote the first")
	}
	ext := filepath.Ext(first)
	if second != first[:len(first)-len(ext)]+"_1"+ext {
		t.Errorf("second backup = %s", second)
	}
}

func TestWrite_ProfileInjectsGuardianRank(t *testing.T) {
	savesDir := t.TempDir()
	backupDir := t.TempDir()
	writeSave(t, savesDir, "1.sav", 10)
	writeSave(t, savesDir, "2.sav", 20)

	profileModel := &types.ProfileModel{Header: types.HeaderPcProfile}
	profile, err := types.NewProfileFile("profile.sav", profileModel)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, savesDir, "profile.sav", profile)

	selected := findFile(t, loadDir(t, savesDir), "profile.sav")
	state := editstate.SeedProfile(selected)
	state.Profile.GuardianRewards[types.RewardGunDamage] = 15
	state.Profile.GuardianTokens = 3

	rec := &fakeRecorder{err: errors.New("database locked")}
	p := newPipeline(rec)
	prep, err := p.PrepareProfile(selected, state, savesDir)
	if err != nil {
		t.Fatal(err)
	}
	if !prep.GuardianInjection {
		t.Fatal("changing rewards should require guardian injection")
	}

	commit, err := p.Write(context.Background(), prep, backupDir)
	if err != nil {
		t.Fatalf("Write() error = %v (a ledger failure must not fail the commit)", err)
	}
	if commit.InjectionErr != nil {
		t.Fatalf("InjectionErr = %v", commit.InjectionErr)
	}
	if len(commit.Injected) != 2 {
		t.Errorf("Injected = %v, want both saves", commit.Injected)
	}

	reg := loadDir(t, savesDir)
	for _, name := range []string{"1.sav", "2.sav"} {
		f := findFile(t, reg, name)
		if f.Save.GuardianRank.Rank != 18 || f.Save.GuardianRank.Rewards[types.RewardGunDamage] != 15 {
			t.Errorf("%s guardian rank = %+v", name, f.Save.GuardianRank)
		}
	}
	// profile backup plus one per injected save
	if got := listDir(t, backupDir); len(got) != 3 {
		t.Errorf("backups = %v, want 3", got)
	}
}

func TestWrite_CancelledBeforeWrite(t *testing.T) {
	savesDir := t.TempDir()
	original := writeSave(t, savesDir, "1.sav", 10)
	selected := findFile(t, loadDir(t, savesDir), "1.sav")

	state := editstate.SeedSave(selected)
	state.SetLevel(11)
	p := newPipeline(nil)
	prep, err := p.PrepareSave(selected, state, savesDir)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Write(ctx, prep, t.TempDir()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Write() error = %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(savesDir, "1.sav"))
	if !bytes.Equal(data, original) {
		t.Error("destination written after cancellation")
	}
}
