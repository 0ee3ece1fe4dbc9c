package resolve

import (
	"strings"
	"sync"

	"github.com/leapstack-labs/kudos/pkg/ast"
)

const (
	objectType = "java.lang.Object"
	enumType   = "java.lang.Enum"
	recordType = "java.lang.Record"
	annoType   = "java.lang.annotation.Annotation"
)

// Index holds the type declarations of every unit parsed in a run.
// It is safe for concurrent use.
type Index struct {
	mu    sync.RWMutex
	units map[string]*ast.CompilationUnit
	types map[string]*Type
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		units: make(map[string]*ast.CompilationUnit),
		types: make(map[string]*Type),
	}
}

// Add indexes the types declared by unit. A unit previously added under the
// same path is replaced. When two units declare the same qualified name the
// one added first wins.
func (x *Index) Add(unit *ast.CompilationUnit) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if old, ok := x.units[unit.Path]; ok {
		for name, t := range x.types {
			if t.Unit == old {
				delete(x.types, name)
			}
		}
	}
	x.units[unit.Path] = unit

	for _, decl := range unit.AllTypes() {
		if _, exists := x.types[decl.QualifiedName]; exists {
			continue
		}
		x.types[decl.QualifiedName] = &Type{
			Name: decl.QualifiedName,
			Kind: decl.Kind,
			Decl: decl,
			Unit: unit,
		}
	}
}

// Clone returns an independent index holding the same units. Adding to the
// clone leaves x unchanged.
func (x *Index) Clone() *Index {
	x.mu.RLock()
	defer x.mu.RUnlock()

	c := &Index{
		units: make(map[string]*ast.CompilationUnit, len(x.units)),
		types: make(map[string]*Type, len(x.types)),
	}
	for path, unit := range x.units {
		c.units[path] = unit
	}
	for name, t := range x.types {
		c.types[name] = t
	}
	return c
}

// Len returns the number of indexed units.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.units)
}

func (x *Index) lookup(fqn string) *Type {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.types[fqn]
}

// ForUnit returns a Resolver answering from the point of view of unit. The
// unit's own declarations take precedence over indexed ones, so the unit need
// not have been added.
func (x *Index) ForUnit(unit *ast.CompilationUnit) Resolver {
	return x.view(unit)
}

func (x *Index) view(unit *ast.CompilationUnit) *view {
	v := &view{
		index: x,
		unit:  unit,
		local: make(map[string]*Type),
		decls: make(map[*ast.TypeDecl]*Type),
		views: make(map[*ast.CompilationUnit]*view),
	}
	for _, decl := range unit.AllTypes() {
		t := x.lookup(decl.QualifiedName)
		if t == nil || t.Decl != decl {
			t = &Type{Name: decl.QualifiedName, Kind: decl.Kind, Decl: decl, Unit: unit}
		}
		v.decls[decl] = t
		if _, exists := v.local[t.Name]; !exists {
			v.local[t.Name] = t
		}
	}
	v.views[unit] = v
	return v
}

// view implements Resolver for one unit.
type view struct {
	index *Index
	unit  *ast.CompilationUnit
	local map[string]*Type
	decls map[*ast.TypeDecl]*Type
	views map[*ast.CompilationUnit]*view
}

// viewFor returns the view used to resolve names written in unit.
func (v *view) viewFor(unit *ast.CompilationUnit) *view {
	if unit == nil {
		return v
	}
	if other, ok := v.views[unit]; ok {
		return other
	}
	other := v.index.view(unit)
	other.views = v.views
	v.views[unit] = other
	return other
}

func (v *view) ForUnit(unit *ast.CompilationUnit) Resolver {
	return v.viewFor(unit)
}

func (v *view) lookup(fqn string) *Type {
	if t, ok := v.local[fqn]; ok {
		return t
	}
	if t := v.index.lookup(fqn); t != nil {
		return t
	}
	return lookupLibrary(fqn)
}

func (v *view) Declared(decl *ast.TypeDecl) *Type {
	if t, ok := v.decls[decl]; ok {
		return t
	}
	t := &Type{Name: decl.QualifiedName, Kind: decl.Kind, Decl: decl, Unit: v.unit}
	v.decls[decl] = t
	return t
}

func (v *view) Lookup(fqn string) Result {
	if t := v.lookup(fqn); t != nil {
		return resolved(t)
	}
	return unresolved(fqn)
}

func (v *view) ResolveType(scope *ast.TypeDecl, name string) Result {
	name = strings.TrimSpace(name)
	if name == "" {
		return unresolved("")
	}
	if strings.Contains(name, ".") {
		return v.resolveQualified(scope, name)
	}
	return v.resolveSimple(scope, name)
}

func (v *view) resolveSimple(scope *ast.TypeDecl, name string) Result {
	// Enclosing types, innermost first. Type parameters shadow everything.
	for d := scope; d != nil; d = d.Outer {
		for _, tp := range d.TypeParams {
			if tp == name {
				return unresolved("")
			}
		}
		if d.Name == name && !d.Anonymous {
			return resolved(v.Declared(d))
		}
		for _, nested := range d.Nested {
			if nested.Name == name {
				return resolved(v.Declared(nested))
			}
		}
	}

	for _, decl := range v.unit.Types {
		if decl.Name == name {
			return resolved(v.Declared(decl))
		}
	}

	for _, imp := range v.unit.Imports {
		if imp.Static || imp.Wildcard || lastSegment(imp.Path) != name {
			continue
		}
		if t := v.lookup(imp.Path); t != nil {
			return resolved(t)
		}
		return unresolved(imp.Path)
	}

	if t := v.lookup(qualify(v.unit.Package, name)); t != nil {
		return resolved(t)
	}

	for _, imp := range v.unit.Imports {
		if imp.Static || !imp.Wildcard {
			continue
		}
		if t := v.lookup(imp.Path + "." + name); t != nil {
			return resolved(t)
		}
	}

	if t := v.lookup("java.lang." + name); t != nil {
		return resolved(t)
	}
	return unresolved("")
}

func (v *view) resolveQualified(scope *ast.TypeDecl, name string) Result {
	if t := v.lookup(name); t != nil {
		return resolved(t)
	}

	parts := strings.Split(name, ".")
	if head := v.resolveSimple(scope, parts[0]); head.Resolved() {
		if t := v.member(head.Type, parts[1:]); t != nil {
			return resolved(t)
		}
		return unresolved(name)
	}

	// Longest package prefix naming a known type, then member types.
	for i := len(parts) - 1; i > 0; i-- {
		if t := v.lookup(strings.Join(parts[:i], ".")); t != nil {
			if m := v.member(t, parts[i:]); m != nil {
				return resolved(m)
			}
			break
		}
	}
	return unresolved(name)
}

// member walks member types of t along path.
func (v *view) member(t *Type, path []string) *Type {
	for _, seg := range path {
		next := v.lookup(t.Name + "." + seg)
		if next == nil && t.Decl != nil {
			for _, nested := range t.Decl.Nested {
				if nested.Name == seg {
					next = v.viewFor(t.Unit).Declared(nested)
					break
				}
			}
		}
		if next == nil {
			return nil
		}
		t = next
	}
	return t
}

func (v *view) ResolveStatic(scope *ast.TypeDecl, member string) Result {
	for d := scope; d != nil; d = d.Outer {
		for _, m := range d.Methods {
			if m.Name == member {
				return resolved(v.Declared(d))
			}
		}
	}

	for _, imp := range v.unit.Imports {
		if !imp.Static || imp.Wildcard || lastSegment(imp.Path) != member || len(imp.Path) <= len(member) {
			continue
		}
		owner := imp.Path[:len(imp.Path)-len(member)-1]
		if t := v.lookup(owner); t != nil {
			return resolved(t)
		}
		return unresolved(owner)
	}

	for _, imp := range v.unit.Imports {
		if !imp.Static || !imp.Wildcard {
			continue
		}
		if t := v.lookup(imp.Path); t != nil && v.declaresMember(t, member) {
			return resolved(t)
		}
	}
	return unresolved("")
}

func (v *view) declaresMember(t *Type, member string) bool {
	for _, m := range v.Methods(t) {
		if m.Name == member {
			return true
		}
	}
	if t.Decl != nil {
		for _, f := range t.Decl.Fields {
			if f.Name == member {
				return true
			}
		}
	}
	return false
}

func (v *view) Supertypes(t *Type) []Result {
	if t == nil {
		return nil
	}
	if t.lib != nil {
		var out []Result
		if t.lib.super != "" {
			out = append(out, v.Lookup(t.lib.super))
		} else if t.Name != objectType && t.Kind != ast.KindInterface {
			out = append(out, v.Lookup(objectType))
		}
		for _, i := range t.lib.interfaces {
			out = append(out, v.Lookup(i))
		}
		return out
	}

	decl := t.Decl
	if decl == nil {
		return nil
	}
	owner := v.viewFor(t.Unit)

	var out []Result
	switch {
	case decl.Extends != nil:
		out = append(out, owner.ResolveType(decl, decl.Extends.Name))
	case decl.Kind == ast.KindClass:
		out = append(out, v.Lookup(objectType))
	case decl.Kind == ast.KindEnum:
		out = append(out, v.Lookup(enumType))
	case decl.Kind == ast.KindRecord:
		out = append(out, v.Lookup(recordType))
	case decl.Kind == ast.KindAnnotation:
		out = append(out, v.Lookup(annoType))
	}
	for _, ref := range decl.Implements {
		out = append(out, owner.ResolveType(decl, ref.Name))
	}
	return out
}

func (v *view) Ancestors(t *Type) ([]*Type, bool) {
	var out []*Type
	complete := true
	seen := map[string]bool{t.Name: true}
	queue := []*Type{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, r := range v.Supertypes(cur) {
			if !r.Resolved() {
				complete = false
				continue
			}
			if seen[r.Type.Name] {
				continue
			}
			seen[r.Type.Name] = true
			out = append(out, r.Type)
			queue = append(queue, r.Type)
		}
	}
	return out, complete
}

func (v *view) IsSubtype(t *Type, fqn string) Truth {
	if t == nil {
		return Unknown
	}
	if t.Name == fqn {
		return Yes
	}
	ancestors, complete := v.Ancestors(t)
	for _, a := range ancestors {
		if a.Name == fqn {
			return Yes
		}
	}
	if complete {
		return No
	}
	return Unknown
}

func (v *view) Fields(t *Type) ([]*ast.FieldDecl, bool) {
	var out []*ast.FieldDecl
	seen := make(map[string]bool)
	for cur := t; cur != nil; {
		if seen[cur.Name] {
			break
		}
		seen[cur.Name] = true

		if cur.Decl == nil {
			// Library types expose no fields we know of; only Object is
			// known to have none.
			return out, cur.Name == objectType
		}
		out = append(out, cur.Decl.Fields...)

		supers := v.Supertypes(cur)
		if len(supers) == 0 || cur.Decl.Kind == ast.KindInterface {
			return out, true
		}
		if !supers[0].Resolved() {
			return out, false
		}
		cur = supers[0].Type
	}
	return out, true
}

func (v *view) Methods(t *Type) []Method {
	if t == nil {
		return nil
	}
	var out []Method
	if t.lib != nil {
		for _, sig := range t.lib.methods {
			name, params := parseSignature(sig)
			out = append(out, Method{Name: name, Params: params, Owner: t})
		}
		return out
	}
	if t.Decl == nil {
		return nil
	}
	for _, m := range t.Decl.Methods {
		params := make([]string, 0, len(m.Params))
		for _, p := range m.Params {
			params = append(params, p.Type.String())
		}
		out = append(out, Method{Name: m.Name, Params: params, Owner: t, Decl: m})
	}
	return out
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}
