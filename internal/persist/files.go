package persist

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/studiowebux/bl3edit/internal/codec"
	"github.com/studiowebux/bl3edit/internal/config"
	"github.com/studiowebux/bl3edit/internal/registry"
)

// maxBackupAttempts bounds the numeric suffixes tried when a backup name is taken
const maxBackupAttempts = 100

// BackupName is the file name of a backup of name taken at stamp:
// <base>_<YYYYMMDD_HHMMSS>_<crc32 of content>.sav
func BackupName(name, stamp string, content []byte) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return fmt.Sprintf("%s_%s_%08x.sav", base, stamp, crc32.ChecksumIEEE(content))
}

// backupFile copies path into backupDir without overwriting earlier backups
func (p *Pipeline) backupFile(path, backupDir string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &registry.DirectoryError{Op: "backup", Path: path, Err: err}
	}

	if err := os.MkdirAll(backupDir, config.DirPermissions); err != nil {
		return "", &registry.DirectoryError{Op: "backup", Path: backupDir, Err: err}
	}

	name := BackupName(filepath.Base(path), p.now().Format("20060102_150405"), data)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for attempt := 0; attempt < maxBackupAttempts; attempt++ {
		candidate := name
		if attempt > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, attempt, ext)
		}
		target := filepath.Join(backupDir, candidate)

		err := writeExclusive(target, data)
		if err == nil {
			return target, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", &registry.DirectoryError{Op: "backup", Path: target, Err: err}
		}
	}

	return "", &registry.DirectoryError{
		Op:   "backup",
		Path: filepath.Join(backupDir, name),
		Err:  fmt.Errorf("no free backup name after %d attempts", maxBackupAttempts),
	}
}

func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, config.FilePermissions)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// writeAtomic replaces path through a temp file in the same directory
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(config.FilePermissions); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// injectGuardianRank copies the profile's guardian rank into every save of
// the saves directory. Each save is backed up first. Failures are collected
// per save and do not stop the others.
func (p *Pipeline) injectGuardianRank(ctx context.Context, prep *Prepared, backupDir string) ([]string, error) {
	rank := prep.File.Profile.GuardianRank

	entries, err := os.ReadDir(prep.SavesDir)
	if err != nil {
		return nil, &registry.DirectoryError{Op: "scan", Path: prep.SavesDir, Err: err}
	}

	var (
		injected []string
		errs     []error
	)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if entry.IsDir() || !codec.Recognized(entry.Name()) {
			continue
		}

		path := filepath.Join(prep.SavesDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.Name(), err))
			continue
		}

		f, err := p.codec.Parse(entry.Name(), data)
		if err != nil {
			// Unparseable files were already reported by the scan
			p.logger.Debug("skipping unparseable file during guardian injection", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		if !f.IsSave() || f.Save.GuardianRank == rank {
			continue
		}

		f.Save.GuardianRank = rank
		out, _, err := p.codec.Serialize(f)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if _, err := p.backupFile(path, backupDir); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := writeAtomic(path, out); err != nil {
			errs = append(errs, &registry.DirectoryError{Op: "write", Path: path, Err: err})
			continue
		}

		injected = append(injected, entry.Name())
		p.logger.Info("guardian rank injected", zap.String("file", entry.Name()), zap.Int32("rank", rank.Rank))
	}

	return injected, errors.Join(errs...)
}
