package detectors

import (
	"math"

	"github.com/leapstack-labs/kudos/pkg/ast"
	"github.com/leapstack-labs/kudos/pkg/pattern"
	"github.com/leapstack-labs/kudos/pkg/resolve"
)

// CopyConstructor (OB02) detects constructors that take one instance of the
// declaring type, or of one of its supertypes, and copy every instance field
// from it.
//
// A field counts as copied when a top-level statement of the constructor
// assigns it from the same field of the parameter, either directly or through
// one recognized copying call:
//
//	this.name = other.name;
//	this.tags = new ArrayList<>(other.tags);
//	this.items = other.items.clone();
//	this.range = List.copyOf(other.range);
//
// Static fields and final fields with an initializer do not need copying. A
// class without any other fields is reported as long as the constructor has
// the copy shape. Constructors delegating with this(...) are not reported.
type CopyConstructor struct {
	pattern.Base
}

// Detect implements pattern.Detector.
func (d *CopyConstructor) Detect(unit *pattern.Unit) ([]pattern.Instance, error) {
	if err := d.Bound(); err != nil {
		return nil, err
	}

	c := newCopyChecker(unit.Resolver)
	var out []pattern.Instance
	for _, t := range namedTypes(unit) {
		if t.Kind != ast.KindClass {
			continue
		}
		for _, ctor := range t.Constructors {
			if c.isCopyConstructor(t, ctor) {
				out = append(out, d.Instance(unit, t, ctor))
			}
		}
	}
	return out, nil
}

// copyUtilities are static methods returning a copy of their first argument.
var copyUtilities = set(
	"java.util.Arrays.copyOf",
	"java.util.Arrays.copyOfRange",
	"java.util.List.copyOf",
	"java.util.Set.copyOf",
	"java.util.Map.copyOf",
	"java.util.EnumSet.copyOf",
	"com.google.common.collect.ImmutableList.copyOf",
	"com.google.common.collect.ImmutableSet.copyOf",
	"com.google.common.collect.ImmutableSortedSet.copyOf",
	"com.google.common.collect.ImmutableMap.copyOf",
	"com.google.common.collect.ImmutableSortedMap.copyOf",
	"com.google.common.collect.Lists.newArrayList",
	"com.google.common.collect.Sets.newHashSet",
	"com.google.common.collect.Maps.newHashMap",
	"org.apache.commons.lang3.SerializationUtils.clone",
	"org.apache.commons.lang3.ArrayUtils.clone",
)

type copyState int

const (
	copyUnknown copyState = iota
	copyPending
	copyYes
	copyNo
)

// copyChecker decides copy constructors. A constructor still being checked
// is assumed to copy, so mutually recursive types can confirm each other.
// A "yes" that leaned on an unfinished check further up the stack is not
// memoized: it only holds if that outer check succeeds too. A "no" reached
// under those optimistic assumptions is final.
type copyChecker struct {
	res resolve.Resolver
	*copyMemo
}

// copyMemo is shared by every checker of one Detect call.
type copyMemo struct {
	state map[*ast.ConstructorDecl]copyState
	depth map[*ast.ConstructorDecl]int // stack depth of pending constructors
	level int                          // current stack depth
	low   int                          // shallowest pending depth assumed by the current check
}

func newCopyChecker(res resolve.Resolver) *copyChecker {
	return &copyChecker{res: res, copyMemo: &copyMemo{
		state: make(map[*ast.ConstructorDecl]copyState),
		depth: make(map[*ast.ConstructorDecl]int),
		low:   math.MaxInt,
	}}
}

func (c *copyChecker) forUnit(unit *ast.CompilationUnit) *copyChecker {
	return &copyChecker{res: c.res.ForUnit(unit), copyMemo: c.copyMemo}
}

func (c *copyChecker) isCopyConstructor(t *ast.TypeDecl, ctor *ast.ConstructorDecl) bool {
	switch c.state[ctor] {
	case copyPending:
		c.low = min(c.low, c.depth[ctor])
		return true
	case copyYes:
		return true
	case copyNo:
		return false
	}

	outerLow := c.low
	d := c.level
	c.level++
	c.low = math.MaxInt
	c.state[ctor] = copyPending
	c.depth[ctor] = d

	ok := c.check(t, ctor)

	low := c.low
	c.level--
	delete(c.depth, ctor)
	switch {
	case !ok:
		c.state[ctor] = copyNo
	case low >= d:
		c.state[ctor] = copyYes
	default:
		delete(c.state, ctor)
	}
	if ok && low < d {
		c.low = min(outerLow, low)
	} else {
		c.low = outerLow
	}
	return ok
}

func (c *copyChecker) check(t *ast.TypeDecl, ctor *ast.ConstructorDecl) bool {
	if len(ctor.Params) != 1 || ctor.Body == nil {
		return false
	}
	param := ctor.Params[0]
	if param.Varargs || param.Type == nil || param.Type.IsPrimitive() || param.Type.IsArray() {
		return false
	}
	if len(ctor.Body.Stmts) > 0 {
		if call, ok := ctor.Body.Stmts[0].(*ast.ExplicitCtorCall); ok && call.Kind == "this" {
			return false
		}
	}

	source, ok := c.sourceType(t, param.Type)
	if !ok {
		return false
	}
	sourceFields := make(map[string]bool)
	fields, _ := c.res.Fields(source)
	for _, f := range fields {
		if !f.IsStatic() {
			sourceFields[f.Name] = true
		}
	}

	pending := make(map[string]*ast.FieldDecl)
	for _, f := range t.Fields {
		if f.IsStatic() || (f.IsFinal() && f.Init != nil) {
			continue
		}
		pending[f.Name] = f
	}
	if len(pending) == 0 {
		return true
	}

	locals := make(map[string]bool)
	for _, s := range ctor.Body.Stmts {
		switch s := s.(type) {
		case *ast.LocalVarStmt:
			for _, v := range s.Vars {
				locals[v.Name] = true
			}
		case *ast.ExprStmt:
			assign, ok := s.X.(*ast.Assign)
			if !ok || assign.Op != "=" {
				continue
			}
			name, ok := assignedField(assign.Left, param.Name, locals)
			if !ok {
				continue
			}
			f := pending[name]
			if f == nil || !sourceFields[name] {
				continue
			}
			if c.copies(t, f, assign.Right, param.Name) {
				delete(pending, name)
			}
		}
	}
	return len(pending) == 0
}

// sourceType resolves the parameter type, accepting the declaring type or any
// resolvable proper supertype other than Object.
func (c *copyChecker) sourceType(t *ast.TypeDecl, ref *ast.TypeRef) (*resolve.Type, bool) {
	r := c.res.ResolveType(t, ref.Name)
	if !r.Resolved() {
		return nil, false
	}
	self := c.res.Declared(t)
	if r.Type.Name == self.Name {
		return r.Type, true
	}
	if r.Type.Name == objectType {
		return nil, false
	}
	ancestors, _ := c.res.Ancestors(self)
	for _, a := range ancestors {
		if a.Name == r.Type.Name {
			return r.Type, true
		}
	}
	return nil, false
}

// assignedField returns the field written by an assignment target: this.f, or
// a bare f not shadowed by the parameter or a local.
func assignedField(left ast.Expr, param string, locals map[string]bool) (string, bool) {
	if name, ok := ast.FieldOf(ast.Unparen(left), "this"); ok {
		return name, true
	}
	if id, ok := ast.Unparen(left).(*ast.Ident); ok && id.Name != param && !locals[id.Name] {
		return id.Name, true
	}
	return "", false
}

// copies reports whether value copies field f of the parameter named param.
func (c *copyChecker) copies(t *ast.TypeDecl, f *ast.FieldDecl, value ast.Expr, param string) bool {
	isSource := func(e ast.Expr) bool {
		if e == nil {
			return false
		}
		name, ok := ast.FieldOf(ast.Uncast(e), param)
		return ok && name == f.Name
	}

	value = ast.Uncast(value)
	if isSource(value) {
		return true
	}

	switch v := value.(type) {
	case *ast.MethodCall:
		if len(v.Args) == 0 && isSource(v.X) {
			switch v.Name {
			case "clone":
				return true
			case "copy":
				return c.declaresCopy(t, f.Type)
			}
			return false
		}
		if len(v.Args) > 0 && isSource(v.Args[0]) {
			return copyUtilities[c.staticOwner(t, v)+"."+v.Name]
		}

	case *ast.New:
		if v.Body != nil || len(v.Args) != 1 || !isSource(v.Args[0]) {
			return false
		}
		return c.copyConstructs(t, v.Type, f.Type)
	}
	return false
}

// staticOwner returns the qualified name of the type owning a static call,
// whether written Owner.m(...) or brought in by a static import.
func (c *copyChecker) staticOwner(t *ast.TypeDecl, call *ast.MethodCall) string {
	var r resolve.Result
	if call.X == nil {
		r = c.res.ResolveStatic(t, call.Name)
	} else {
		name := ast.DottedName(call.X)
		if name == "" {
			return ""
		}
		r = c.res.ResolveType(t, name)
	}
	if !r.Resolved() {
		return ""
	}
	return r.Type.Name
}

func (c *copyChecker) declaresCopy(t *ast.TypeDecl, ref *ast.TypeRef) bool {
	if ref == nil || ref.IsPrimitive() || ref.IsArray() {
		return false
	}
	r := c.res.ResolveType(t, ref.Name)
	if !r.Resolved() {
		return false
	}
	_, ok := findMethod(c.res, r.Type, "copy", 0)
	return ok
}

// copyConstructs reports whether new created(src) copies into a field of
// type fieldRef: created must be the field type or a subtype of it, and must
// have a copy constructor.
func (c *copyChecker) copyConstructs(t *ast.TypeDecl, created, fieldRef *ast.TypeRef) bool {
	if created == nil || fieldRef == nil || fieldRef.IsPrimitive() || fieldRef.IsArray() {
		return false
	}
	x := c.res.ResolveType(t, created.Name)
	ft := c.res.ResolveType(t, fieldRef.Name)
	if !x.Resolved() || !ft.Resolved() {
		return false
	}
	if x.Type.Name != ft.Type.Name && c.res.IsSubtype(x.Type, ft.Type.Name) != resolve.Yes {
		return false
	}
	return c.hasCopyConstructor(x.Type)
}

func (c *copyChecker) hasCopyConstructor(t *resolve.Type) bool {
	if t.IsLibrary() {
		return t.LibraryCopyConstructor()
	}
	if t.Decl == nil {
		return false
	}
	other := c.forUnit(t.Unit)
	for _, ctor := range t.Decl.Constructors {
		if other.isCopyConstructor(t.Decl, ctor) {
			return true
		}
	}
	return false
}
