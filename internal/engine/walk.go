package engine

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/redactyl/credscan/internal/ignore"
	"github.com/redactyl/credscan/internal/log"
)

// target is a file selected for scanning.
type target struct {
	abs string
	rel string // slash-separated, relative to root
}

// walk traverses the tree under root depth-first and returns the files to
// scan in traversal order. Skipped directories are pruned before descent.
func walk(ctx context.Context, root string, f filters, ign ignore.Matcher, maxBytes int64) ([]target, error) {
	var out []target
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			if p == root {
				return err
			}
			log.Warnf("unable to read %s: %v", p, err)
			return nil
		}
		if p == root {
			return nil
		}
		rel, rerr := filepath.Rel(root, p)
		if rerr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		name := d.Name()
		if d.IsDir() {
			if f.skipDir(name, rel) || ign.MatchDir(rel) {
				log.Debugf("skipping directory %s", rel)
				return filepath.SkipDir
			}
			return nil
		}
		if !f.wantFile(name, rel) || ign.Match(rel) {
			return nil
		}
		if !d.Type().IsRegular() {
			// symlinks are kept when they point at a regular file, so a
			// dangling one still surfaces as a per-file read error
			if d.Type()&fs.ModeSymlink == 0 {
				return nil
			}
			if st, serr := os.Stat(p); serr == nil && !st.Mode().IsRegular() {
				return nil
			}
		}
		if maxBytes > 0 {
			if info, ierr := d.Info(); ierr == nil && info.Size() > maxBytes {
				log.Debugf("skipping %s: %d bytes exceeds limit", rel, info.Size())
				return nil
			}
		}
		out = append(out, target{abs: p, rel: rel})
		return nil
	})
	return out, err
}

// CountTargets returns how many files a scan of cfg would read. It mirrors
// the selection logic of ScanRepository without opening files.
func CountTargets(cfg Config) (int, error) {
	cfg = cfg.withDefaults()
	if err := checkRoot(cfg.Root); err != nil {
		return 0, err
	}
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	ts, err := walk(context.Background(), cfg.Root, newFilters(cfg), ign, cfg.MaxBytes)
	return len(ts), err
}
