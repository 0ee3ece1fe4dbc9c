// Package engine runs the registered detectors over Java source files.
// It handles input validation, parsing, symbol indexing and fault isolation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/kudos/pkg/ast"
	"github.com/leapstack-labs/kudos/pkg/parser"
	"github.com/leapstack-labs/kudos/pkg/pattern"
	"github.com/leapstack-labs/kudos/pkg/pattern/registry"
	"github.com/leapstack-labs/kudos/pkg/resolve"
)

// DefaultExtensions are the file extensions accepted as Java sources.
var DefaultExtensions = []string{".java"}

// Engine detects pattern instances in source files.
type Engine struct {
	registry   *registry.Registry
	patterns   *pattern.Config
	extensions map[string]bool
	excludes   []string
	jobs       int

	// Structured logger
	logger *slog.Logger

	// Reference types added by IndexSources; Detect and Run read it but
	// never add to it
	index *resolve.Index

	mu          sync.Mutex
	diagnostics []Diagnostic
}

// Config holds engine configuration.
type Config struct {
	// Disabled lists pattern IDs that are never detected
	Disabled []string
	// Only restricts detection to these pattern IDs when non-empty
	Only []string
	// Extensions lists accepted source extensions (default ".java")
	Extensions []string
	// Excludes holds glob patterns skipped by Discover
	Excludes []string
	// Jobs bounds the number of files processed concurrently (default GOMAXPROCS)
	Jobs int
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Report is the outcome of a Run.
type Report struct {
	RunID       string
	Files       int
	Instances   []pattern.Instance
	Diagnostics []Diagnostic
	Duration    time.Duration
}

// New creates an engine detecting the patterns of reg.
func New(reg *registry.Registry, cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	extensions := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[ext] = true
	}

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	logger.Debug("initializing engine", "locale", reg.Locale().String(), "jobs", jobs, "disabled", cfg.Disabled)

	return &Engine{
		registry:   reg,
		patterns:   pattern.NewConfig().Disable(cfg.Disabled...).Restrict(cfg.Only...),
		extensions: extensions,
		excludes:   cfg.Excludes,
		jobs:       jobs,
		logger:     logger,
		index:      resolve.NewIndex(),
	}
}

// Registry returns the registry the engine detects with.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Index returns the reference index filled by IndexSources.
func (e *Engine) Index() *resolve.Index {
	return e.index
}

// Diagnostics returns a copy of the diagnostics accumulated by the engine.
func (e *Engine) Diagnostics() []Diagnostic {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Diagnostic, len(e.diagnostics))
	copy(out, e.diagnostics)
	return out
}

func (e *Engine) record(diags ...Diagnostic) {
	if len(diags) == 0 {
		return
	}
	e.mu.Lock()
	e.diagnostics = append(e.diagnostics, diags...)
	e.mu.Unlock()
}

// IndexSources parses paths and adds their types to the reference index
// consulted by every later Detect and Run. All paths are validated first.
// Files that do not read or parse are recorded as diagnostics and skipped.
func (e *Engine) IndexSources(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := e.Validate(path); err != nil {
			return err
		}
	}

	units, diags, err := e.loadAll(ctx, paths)
	if err != nil {
		return err
	}
	for i, unit := range units {
		e.record(diags[i]...)
		if unit != nil {
			e.index.Add(unit)
		}
	}
	e.logger.Debug("indexed reference sources", "files", len(paths), "units", e.index.Len())
	return nil
}

// Detect returns every pattern instance found in the file at path. The path
// is validated before anything is parsed; an unacceptable path fails with
// pattern.ErrInvalidInput. A file that does not parse yields no instances and
// one parse diagnostic.
//
// Names resolve against the file itself and the reference index. Detect
// leaves the index untouched, so its result does not depend on which files
// were detected before.
func (e *Engine) Detect(ctx context.Context, path string) ([]pattern.Instance, error) {
	if err := e.Validate(path); err != nil {
		return nil, err
	}

	unit, diags, err := e.load(ctx, path)
	e.record(diags...)
	if err != nil || unit == nil {
		return nil, err
	}

	instances, diags := e.detectUnit(e.index, unit)
	e.record(diags...)
	return instances, nil
}

// Run detects patterns in every path. All paths are validated first; parsing
// and detection then proceed concurrently. Every parsed unit is added to a
// run index layered over the reference index before any detector runs, so
// types declared in one file resolve from every other. The reference index
// is not changed. Instances are returned grouped by file in the order of
// paths.
func (e *Engine) Run(ctx context.Context, paths []string) (*Report, error) {
	start := time.Now()
	for _, path := range paths {
		if err := e.Validate(path); err != nil {
			return nil, err
		}
	}

	report := &Report{RunID: uuid.NewString(), Files: len(paths)}
	logger := e.logger.With("run_id", report.RunID)
	logger.Debug("starting run", "files", len(paths), "jobs", e.jobs)

	units, diags, err := e.loadAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	// Add in input order so duplicate type names resolve deterministically.
	index := e.index.Clone()
	for _, unit := range units {
		if unit != nil {
			index.Add(unit)
		}
	}
	logger.Debug("indexed units", "units", index.Len())

	results := make([][]pattern.Instance, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs)
	for i, unit := range units {
		if unit == nil {
			continue
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			instances, d := e.detectUnit(index, unit)
			results[i] = instances
			diags[i] = append(diags[i], d...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i := range paths {
		report.Instances = append(report.Instances, results[i]...)
		report.Diagnostics = append(report.Diagnostics, diags[i]...)
	}
	e.record(report.Diagnostics...)
	report.Duration = time.Since(start)

	logger.Info("run complete",
		"files", report.Files,
		"instances", len(report.Instances),
		"diagnostics", len(report.Diagnostics),
		"duration", report.Duration)
	return report, nil
}

// loadAll parses paths concurrently. Units and diagnostics are indexed like
// paths; a nil unit marks a file that did not read or parse.
func (e *Engine) loadAll(ctx context.Context, paths []string) ([]*ast.CompilationUnit, [][]Diagnostic, error) {
	units := make([]*ast.CompilationUnit, len(paths))
	diags := make([][]Diagnostic, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs)
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			unit, d, err := e.load(gctx, path)
			if err != nil {
				return err
			}
			units[i], diags[i] = unit, d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return units, diags, nil
}

// Validate checks that path names an existing regular file with an accepted
// extension. Failures wrap pattern.ErrInvalidInput.
func (e *Engine) Validate(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", pattern.ErrInvalidInput)
	}
	if !e.extensions[strings.ToLower(filepath.Ext(path))] {
		return fmt.Errorf("%w: %s is not a Java source file", pattern.ErrInvalidInput, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", pattern.ErrInvalidInput, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", pattern.ErrInvalidInput, path)
	}
	return nil
}

// load reads and parses path. Read and syntax failures become diagnostics;
// only cancellation is returned as an error.
func (e *Engine) load(ctx context.Context, path string) (*ast.CompilationUnit, []Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		e.logger.Warn("failed to read source", "path", path, "error", err)
		return nil, []Diagnostic{{Kind: KindIO, Path: path, Message: err.Error()}}, nil
	}

	unit, err := parser.Parse(ctx, path, src)
	if err == nil {
		return unit, nil, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, nil, ctxErr
	}

	d := Diagnostic{Kind: KindParse, Path: path, Message: err.Error()}
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		d.Pos = perr.Pos
		d.Message = perr.Message
	}
	e.logger.Debug("skipping unparsable source", "path", path, "error", err)
	return nil, []Diagnostic{d}, nil
}

// detectUnit runs every enabled detector once over unit, in registry order,
// resolving names against index.
func (e *Engine) detectUnit(index *resolve.Index, unit *ast.CompilationUnit) ([]pattern.Instance, []Diagnostic) {
	u := &pattern.Unit{CompilationUnit: unit, Resolver: index.ForUnit(unit)}

	var (
		instances []pattern.Instance
		diags     []Diagnostic
	)
	for _, det := range e.registry.Detectors() {
		if e.patterns.IsDisabled(det.ID()) {
			continue
		}
		found, err := runDetector(det, u)
		if err != nil {
			e.logger.Warn("detector failed", "pattern", det.ID(), "path", unit.Path, "error", err)
			diags = append(diags, Diagnostic{
				Kind:      KindDetector,
				Path:      unit.Path,
				PatternID: det.ID(),
				Message:   err.Error(),
			})
			continue
		}
		for _, inst := range found {
			if err := inst.Validate(); err != nil {
				diags = append(diags, Diagnostic{
					Kind:      KindDetector,
					Path:      unit.Path,
					PatternID: det.ID(),
					Message:   err.Error(),
				})
				continue
			}
			instances = append(instances, inst)
		}
	}
	return instances, diags
}

// runDetector calls det.Detect, converting both returned errors and panics
// into a *pattern.DetectorError.
func runDetector(det pattern.Detector, unit *pattern.Unit) (found []pattern.Instance, err error) {
	defer func() {
		if r := recover(); r != nil {
			found = nil
			err = &pattern.DetectorError{
				PatternID: det.ID(),
				Path:      unit.Path,
				Err:       fmt.Errorf("%v", r),
				Panicked:  true,
			}
		}
	}()

	found, err = det.Detect(unit)
	if err != nil {
		return nil, &pattern.DetectorError{PatternID: det.ID(), Path: unit.Path, Err: err}
	}
	return found, nil
}
