// Package registry binds the catalog's pattern definitions to detectors.
//
// A Registry is built once per run for one locale and is read-only
// afterwards, so it can be shared by concurrent detection without locking.
package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/leapstack-labs/kudos/pkg/pattern"
	"github.com/leapstack-labs/kudos/pkg/pattern/catalog"
	"github.com/leapstack-labs/kudos/pkg/pattern/detectors"
)

// Registry is the association of every definition to its bound detector.
type Registry struct {
	locale      language.Tag
	definitions []*pattern.Definition
	detectors   []pattern.Detector
	byID        map[string]pattern.Detector
}

type options struct {
	catalog *catalog.Catalog
	table   map[string]pattern.Factory
	logger  *slog.Logger
}

// Option configures Load.
type Option func(*options)

// WithCatalog replaces the embedded catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

// WithTable replaces the built-in detector factory table.
func WithTable(table map[string]pattern.Factory) Option {
	return func(o *options) { o.table = table }
}

// WithLogger sets the logger used while loading.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Load builds the registry for locale. The empty locale selects the
// catalog's default. Any definition that cannot be bound to a detector fails
// the whole load with a *pattern.BindingError.
func Load(locale string, opts ...Option) (*Registry, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.table == nil {
		o.table = detectors.Table()
	}
	if o.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		o.catalog = c
	}

	if strings.TrimSpace(locale) == "" {
		locale = o.catalog.DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	defs, err := o.catalog.Definitions(tag)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })

	r := &Registry{
		locale:      tag,
		definitions: defs,
		detectors:   make([]pattern.Detector, 0, len(defs)),
		byID:        make(map[string]pattern.Detector, len(defs)),
	}
	for _, def := range defs {
		d, err := bind(def, o.table)
		if err != nil {
			return nil, err
		}
		r.detectors = append(r.detectors, d)
		r.byID[def.ID] = d
		o.logger.Debug("bound detector", "pattern", def.ID, "binding", def.Binding)
	}

	o.logger.Debug("registry loaded", "locale", tag.String(), "patterns", len(defs))
	return r, nil
}

func bind(def *pattern.Definition, table map[string]pattern.Factory) (pattern.Detector, error) {
	fail := func(err error) error {
		return &pattern.BindingError{DefinitionID: def.ID, Binding: def.Binding, Err: err}
	}

	factory, ok := table[def.Binding]
	if !ok || factory == nil {
		return nil, fail(fmt.Errorf("no detector registered for binding"))
	}
	d, err := factory()
	if err != nil {
		return nil, fail(err)
	}
	if d == nil {
		return nil, fail(fmt.Errorf("factory returned no detector"))
	}
	if err := d.Bind(def); err != nil {
		return nil, fail(err)
	}
	return d, nil
}

// Locale returns the locale the definitions were resolved for.
func (r *Registry) Locale() language.Tag { return r.locale }

// Definitions returns every registered definition sorted by ID.
func (r *Registry) Definitions() []*pattern.Definition {
	out := make([]*pattern.Definition, len(r.definitions))
	copy(out, r.definitions)
	return out
}

// Detectors returns every bound detector sorted by definition ID.
func (r *Registry) Detectors() []pattern.Detector {
	out := make([]pattern.Detector, len(r.detectors))
	copy(out, r.detectors)
	return out
}

// Detector returns the detector bound to def.
func (r *Registry) Detector(def *pattern.Definition) (pattern.Detector, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", pattern.ErrDetectorNotFound)
	}
	d, ok := r.byID[def.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", pattern.ErrDetectorNotFound, def.ID)
	}
	return d, nil
}

// Definition returns the definition with the given ID, case-insensitively.
func (r *Registry) Definition(id string) (*pattern.Definition, bool) {
	d, ok := r.byID[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return nil, false
	}
	return d.Definition(), true
}

// Groups returns the distinct definition groups, sorted.
func (r *Registry) Groups() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range r.definitions {
		if !seen[d.Group] {
			seen[d.Group] = true
			out = append(out, d.Group)
		}
	}
	sort.Strings(out)
	return out
}
