package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/redactyl/credscan/internal/cache"
	"github.com/redactyl/credscan/internal/config"
	"github.com/redactyl/credscan/internal/detectors"
	"github.com/redactyl/credscan/internal/ignore"
	"github.com/redactyl/credscan/internal/log"
	"github.com/redactyl/credscan/internal/types"
)

// ErrRootNotFound is returned when the scan root does not exist.
var ErrRootNotFound = errors.New("scan root does not exist")

// Config controls scanning behavior including scope, rules, and filters.
// Nil list fields fall back to the built-in defaults; a non-nil empty list
// really is empty.
type Config struct {
	Root string

	SkipDirs       []string
	SkipPaths      []string
	Extensions     []string
	FalsePositives []string
	Rules          []detectors.Rule

	IncludeGlobs string
	ExcludeGlobs string
	MaxBytes     int64 // 0 = no limit
	Threads      int   // 0 = GOMAXPROCS
	NoCache      bool
	Progress     func()
}

func (c Config) withDefaults() Config {
	if c.SkipDirs == nil {
		c.SkipDirs = config.DefaultSkipDirs()
	}
	if c.SkipPaths == nil {
		c.SkipPaths = config.DefaultSkipPaths()
	}
	if c.Extensions == nil {
		c.Extensions = config.DefaultExtensions()
	}
	if c.FalsePositives == nil {
		c.FalsePositives = detectors.DefaultFalsePositiveLiterals()
	}
	if c.Rules == nil {
		c.Rules = detectors.DefaultRules()
	}
	if c.Threads <= 0 {
		c.Threads = runtime.GOMAXPROCS(0)
	}
	return c
}

// Result contains findings and basic scan statistics.
type Result struct {
	Findings     []types.Finding
	FilesScanned int
	Duration     time.Duration

	// per-file read failures; they never abort the scan
	Errors []error
}

// Scanner walks one root and applies a compiled rule set to every selected
// file. It is constructed once and may be scanned repeatedly; each scan
// starts from a clean slate.
type Scanner struct {
	cfg     Config
	rules   *detectors.RuleSet
	filters filters

	findings     []types.Finding
	filesScanned int
}

// New validates the root and compiles the rule table.
func New(cfg Config) (*Scanner, error) {
	cfg = cfg.withDefaults()
	cfg.Root = filepath.Clean(cfg.Root)
	if err := checkRoot(cfg.Root); err != nil {
		return nil, err
	}
	rs, err := detectors.Compile(cfg.Rules, detectors.NewFalsePositives(cfg.FalsePositives))
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}
	return &Scanner{cfg: cfg, rules: rs, filters: newFilters(cfg)}, nil
}

func checkRoot(root string) error {
	st, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !st.IsDir() {
		// nothing below a plain file, so the walk selects zero targets
		log.Warnf("scan root %s is not a directory, nothing to scan", root)
	}
	return nil
}

// Rules returns the compiled rule set.
func (s *Scanner) Rules() *detectors.RuleSet { return s.rules }

// Findings returns the findings of the last scan in discovery order.
func (s *Scanner) Findings() []types.Finding { return s.findings }

// FilesScanned returns the file count of the last scan.
func (s *Scanner) FilesScanned() int { return s.filesScanned }

// ScanRepository walks the root and scans every eligible file. Findings are
// returned in traversal order regardless of Threads.
func (s *Scanner) ScanRepository(ctx context.Context) (Result, error) {
	s.findings, s.filesScanned = nil, 0
	started := time.Now()

	ign, _ := ignore.Load(filepath.Join(s.cfg.Root, ignore.FileName))
	targets, err := walk(ctx, s.cfg.Root, s.filters, ign, s.cfg.MaxBytes)
	if err != nil {
		return Result{}, err
	}

	fingerprint := s.rules.Fingerprint()
	var db cache.DB
	if !s.cfg.NoCache {
		db, _ = cache.Load(s.cfg.Root, fingerprint)
	}

	perFile := make([][]types.Finding, len(targets))
	hashes := make([]string, len(targets))
	errs := make([]error, len(targets))

	var progressMu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Threads)
	for i, t := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(t.abs)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", t.rel, err)
				log.Errorf("error scanning %s: %v", t.rel, err)
			} else {
				hashes[i] = cache.Hash(data)
				if hits, ok := db.Lookup(t.rel, hashes[i]); ok {
					perFile[i] = restore(t.rel, data, hits)
				} else {
					perFile[i] = s.rules.ScanData(t.rel, data)
				}
			}
			if s.cfg.Progress != nil {
				progressMu.Lock()
				s.cfg.Progress()
				progressMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{FilesScanned: len(targets)}
	updated := cache.DB{Fingerprint: fingerprint, Entries: map[string]cache.Entry{}}
	for i, t := range targets {
		if errs[i] != nil {
			res.Errors = append(res.Errors, errs[i])
			continue
		}
		res.Findings = append(res.Findings, perFile[i]...)
		updated.Entries[t.rel] = cache.Entry{Hash: hashes[i], Hits: cache.HitsOf(perFile[i])}
	}
	res.Duration = time.Since(started)

	if !s.cfg.NoCache {
		if err := cache.Save(s.cfg.Root, updated); err != nil {
			log.Debugf("unable to write scan cache: %v", err)
		}
	}

	s.findings = res.Findings
	s.filesScanned = res.FilesScanned
	log.Debugf("scanned %d files, %d findings", res.FilesScanned, len(res.Findings))
	return res, nil
}

// restore rebuilds cached findings from the file content they were hashed
// from. Severity is recomputed from the category.
func restore(rel string, data []byte, hits []cache.Hit) []types.Finding {
	if len(hits) == 0 {
		return nil
	}
	lines := detectors.Lines(data)
	out := make([]types.Finding, 0, len(hits))
	for _, h := range hits {
		var content string
		if h.Line >= 1 && h.Line <= len(lines) {
			content = strings.TrimSpace(lines[h.Line-1])
		}
		out = append(out, types.Finding{
			Path:     rel,
			Line:     h.Line,
			Column:   h.Column,
			Category: h.Category,
			Severity: detectors.SeverityFor(h.Category),
			Content:  content,
		})
	}
	return out
}

// ScanFile scans a single file. A read failure is logged and yields no
// findings. Paths inside the root are reported relative to it.
func (s *Scanner) ScanFile(path string) []types.Finding {
	rel := path
	if abs, err := filepath.Abs(path); err == nil {
		if rootAbs, err := filepath.Abs(s.cfg.Root); err == nil {
			if r, err := filepath.Rel(rootAbs, abs); err == nil {
				rel = r
			}
		}
	}
	rel = filepath.ToSlash(rel)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("error scanning %s: %v", path, err)
		return nil
	}
	return s.rules.ScanData(rel, data)
}

// Scan runs a scan and returns only findings (without stats).
func Scan(cfg Config) ([]types.Finding, error) {
	res, err := ScanWithStats(cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// ScanWithStats runs a scan and returns findings along with timing and counts.
func ScanWithStats(cfg Config) (Result, error) {
	return ScanContext(context.Background(), cfg)
}

// ScanContext is ScanWithStats with cancellation.
func ScanContext(ctx context.Context, cfg Config) (Result, error) {
	s, err := New(cfg)
	if err != nil {
		return Result{}, err
	}
	return s.ScanRepository(ctx)
}
