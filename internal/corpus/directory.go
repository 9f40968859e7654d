package corpus

import (
	"context"
	"log/slog"
	"path"
	"sort"

	"github.com/hack-pad/hackpadfs"
	"golang.org/x/sync/errgroup"
)

// Directory serves every regular file directly inside dir as a document whose
// id is the file name. Subdirectories are skipped. Documents are yielded in
// file-name order; up to concurrency files are read ahead in parallel.
type Directory struct {
	fsys        hackpadfs.FS
	dir         string
	concurrency int
	logger      *slog.Logger
}

// NewDirectory reads documents from dir within fsys, typically a
// hackpadfs/os or hackpadfs/mem file system.
func NewDirectory(fsys hackpadfs.FS, dir string, concurrency int) *Directory {
	if concurrency < 1 {
		concurrency = 1
	}
	if dir == "" {
		dir = "."
	}
	return &Directory{
		fsys:        fsys,
		dir:         dir,
		concurrency: concurrency,
		logger:      slog.Default().With("component", "corpus-dir", "dir", dir),
	}
}

func (d *Directory) Walk(ctx context.Context, fn WalkFunc) error {
	names, err := d.list()
	if err != nil {
		return err
	}
	d.logger.Debug("corpus listed", "files", len(names))

	for start := 0; start < len(names); start += d.concurrency {
		end := min(start+d.concurrency, len(names))
		texts := make([]string, end-start)

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				data, err := hackpadfs.ReadFile(d.fsys, path.Join(d.dir, names[i]))
				if err != nil {
					return ioError("reading "+names[i], err)
				}
				texts[i-start] = string(data)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, text := range texts {
			if err := fn(Document{ID: names[start+i], Text: text}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Directory) list() ([]string, error) {
	entries, err := hackpadfs.ReadDir(d.fsys, d.dir)
	if err != nil {
		return nil, ioError("listing "+d.dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !entry.Type().IsRegular() {
			// Symlinks count when they resolve to a regular file.
			info, err := hackpadfs.Stat(d.fsys, path.Join(d.dir, entry.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
