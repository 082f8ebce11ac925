package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/studiowebux/bl3edit/internal/codec"
	"github.com/studiowebux/bl3edit/internal/types"
)

// DirectoryError reports an I/O failure on the saves or backup directory
type DirectoryError struct {
	Op   string // "scan", "backup" or "write"
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// SkippedFile is a recognized file that could not be parsed
type SkippedFile struct {
	Name string
	Err  error
}

// Result is the outcome of a directory scan
type Result struct {
	Dir     string
	Files   []types.LoadedFile // sorted by name, then kind
	Skipped []SkippedFile      // sorted by name
}

// Options tunes a Scanner
type Options struct {
	// Workers bounds concurrent parses. Zero means GOMAXPROCS.
	Workers int

	// OnParsed is called after every recognized file, parsed or not.
	// It may be called from several goroutines at once.
	OnParsed func(name string, done, total int)
}

// Scanner reads a directory and parses every recognized file
type Scanner struct {
	codec codec.Codec
	opts  Options
}

// NewScanner creates a scanner using c to parse files
func NewScanner(c codec.Codec, opts Options) *Scanner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Scanner{codec: c, opts: opts}
}

// Count returns how many recognized files dir holds
func (s *Scanner) Count(dir string) (int, error) {
	names, err := recognizedNames(dir)
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// Load scans dir. It fails as a whole only when the directory itself cannot
// be read; files that fail to parse are reported in Result.Skipped.
func (s *Scanner) Load(ctx context.Context, dir string) (Result, error) {
	names, err := recognizedNames(dir)
	if err != nil {
		return Result{}, err
	}

	files := make([]types.LoadedFile, len(names))
	errs := make([]error, len(names))

	var (
		mu   sync.Mutex
		done int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			files[i], errs[i] = s.parseFile(dir, name)

			if s.opts.OnParsed != nil {
				mu.Lock()
				done++
				n := done
				mu.Unlock()
				s.opts.OnParsed(name, n, len(names))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{Dir: dir}
	for i, name := range names {
		if errs[i] != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Name: name, Err: errs[i]})
			continue
		}
		result.Files = append(result.Files, files[i])
	}

	sort.SliceStable(result.Files, func(i, j int) bool {
		return result.Files[i].Less(result.Files[j])
	})

	return result, nil
}

func (s *Scanner) parseFile(dir, name string) (types.LoadedFile, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return types.LoadedFile{}, err
	}
	return s.codec.Parse(name, data)
}

// recognizedNames lists the files of dir the codec accepts, sorted by name
func recognizedNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DirectoryError{Op: "scan", Path: dir, Err: err}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !codec.Recognized(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
