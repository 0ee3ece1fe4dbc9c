package resolve

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/kudos/pkg/ast"
	"github.com/leapstack-labs/kudos/pkg/parser"
)

func mustParse(t *testing.T, path, src string) *ast.CompilationUnit {
	t.Helper()
	unit, err := parser.Parse(context.Background(), path, []byte(src))
	require.NoError(t, err)
	return unit
}

// fixture indexes a small two-package project and returns the index and
// the unit declaring app.Child.
func fixture(t *testing.T) (*Index, *ast.CompilationUnit) {
	t.Helper()
	x := NewIndex()
	x.Add(mustParse(t, "model/Base.java", `package model;

public abstract class Base implements Cloneable {
    protected int id;

    public static Base of(int id) { return null; }

    public static class Key {}
}
`))
	x.Add(mustParse(t, "model/Named.java", `package model;

public interface Named extends Comparable<Named> {
    String name();
}
`))
	child := mustParse(t, "app/Child.java", `package app;

import model.Base;
import model.*;
import static model.Base.of;
import external.Missing;

class Child extends Base implements Named {
    private String label;
    private Base.Key key;

    public String name() { return label; }

    class Inner<T> {}
}
`)
	x.Add(child)
	return x, child
}

func TestIndexAdd(t *testing.T) {
	x, child := fixture(t)
	assert.Equal(t, 3, x.Len())

	res := x.ForUnit(child)
	assert.True(t, res.Lookup("model.Base").Resolved())
	assert.True(t, res.Lookup("model.Base.Key").Resolved())
	assert.True(t, res.Lookup("app.Child.Inner").Resolved())

	// Re-adding a path replaces the previous declarations.
	x.Add(mustParse(t, "model/Base.java", "package model;\n\nclass Renamed {}\n"))
	assert.Equal(t, 3, x.Len())
	assert.False(t, res.Lookup("model.Base").Resolved())
	assert.True(t, res.Lookup("model.Renamed").Resolved())
}

func TestIndexFirstDeclarationWins(t *testing.T) {
	x := NewIndex()
	first := mustParse(t, "a/Dup.java", "package p;\nclass Dup { int a; }\n")
	second := mustParse(t, "b/Dup.java", "package p;\nclass Dup { int b; }\n")
	x.Add(first)
	x.Add(second)

	r := NewIndex().ForUnit(first)
	assert.True(t, r.Lookup("p.Dup").Resolved(), "a unit's own declarations resolve without indexing")

	got := x.ForUnit(mustParse(t, "c/User.java", "package p;\nclass User {}\n")).Lookup("p.Dup")
	require.True(t, got.Resolved())
	assert.Same(t, first, got.Type.Unit)
}

func TestIndexClone(t *testing.T) {
	x, child := fixture(t)
	c := x.Clone()
	assert.Equal(t, x.Len(), c.Len())
	assert.True(t, c.ForUnit(child).Lookup("model.Base").Resolved())

	c.Add(mustParse(t, "extra/Extra.java", "package extra;\nclass Extra {}\n"))
	c.Add(mustParse(t, "model/Base.java", "package model;\nclass Renamed {}\n"))
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 3, x.Len())

	res := x.ForUnit(child)
	assert.True(t, res.Lookup("model.Base").Resolved())
	assert.False(t, res.Lookup("extra.Extra").Resolved())
	assert.False(t, res.Lookup("model.Renamed").Resolved())
}

func TestResolveType(t *testing.T) {
	x, child := fixture(t)
	res := x.ForUnit(child)
	scope := child.Types[0]
	inner := scope.Nested[0]

	tests := []struct {
		name     string
		scope    *ast.TypeDecl
		ref      string
		resolved bool
		want     string
	}{
		{"single-type import", scope, "Base", true, "model.Base"},
		{"wildcard import", scope, "Named", true, "model.Named"},
		{"member type through import", scope, "Base.Key", true, "model.Base.Key"},
		{"fully qualified", scope, "model.Base.Key", true, "model.Base.Key"},
		{"own member type", scope, "Inner", true, "app.Child.Inner"},
		{"enclosing type", inner, "Child", true, "app.Child"},
		{"java.lang", scope, "String", true, "java.lang.String"},
		{"type parameter", inner, "T", false, ""},
		{"unresolvable import keeps name", scope, "Missing", false, "external.Missing"},
		{"unknown", scope, "Nowhere", false, ""},
		{"blank", scope, " ", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := res.ResolveType(tt.scope, tt.ref)
			assert.Equal(t, tt.resolved, got.Resolved())
			assert.Equal(t, tt.want, got.Name)
			if tt.resolved {
				assert.Equal(t, StatusResolved, got.Status)
			} else {
				assert.Equal(t, StatusUnresolved, got.Status)
			}
		})
	}
}

func TestResolveStatic(t *testing.T) {
	x, child := fixture(t)
	res := x.ForUnit(child)
	scope := child.Types[0]

	got := res.ResolveStatic(scope, "of")
	require.True(t, got.Resolved())
	assert.Equal(t, "model.Base", got.Name)

	got = res.ResolveStatic(scope, "name")
	require.True(t, got.Resolved(), "declared methods shadow static imports")
	assert.Equal(t, "app.Child", got.Name)

	assert.False(t, res.ResolveStatic(scope, "missing").Resolved())
}

func TestHierarchy(t *testing.T) {
	x, child := fixture(t)
	res := x.ForUnit(child)
	self := res.Declared(child.Types[0])

	supers := res.Supertypes(self)
	require.Len(t, supers, 2)
	assert.Equal(t, "model.Base", supers[0].Name)
	assert.Equal(t, "model.Named", supers[1].Name)

	ancestors, complete := res.Ancestors(self)
	assert.True(t, complete)
	var names []string
	for _, a := range ancestors {
		names = append(names, a.Name)
	}
	assert.ElementsMatch(t, []string{
		"model.Base", "model.Named", "java.lang.Object", "java.lang.Cloneable", "java.lang.Comparable",
	}, names)

	assert.Equal(t, Yes, res.IsSubtype(self, "java.lang.Cloneable"))
	assert.Equal(t, Yes, res.IsSubtype(self, "java.lang.Comparable"))
	assert.Equal(t, No, res.IsSubtype(self, "java.lang.Runnable"))
	assert.Equal(t, Unknown, res.IsSubtype(nil, "java.lang.Object"))
}

func TestIsSubtypeUnknown(t *testing.T) {
	unit := mustParse(t, "A.java", "import lib.Remote;\nclass A extends Remote {}\n")
	res := NewIndex().ForUnit(unit)
	self := res.Declared(unit.Types[0])

	_, complete := res.Ancestors(self)
	assert.False(t, complete)
	assert.Equal(t, Unknown, res.IsSubtype(self, "java.lang.Cloneable"))
	assert.Equal(t, "unknown", Unknown.String())
}

func TestFields(t *testing.T) {
	x, child := fixture(t)
	res := x.ForUnit(child)

	fields, complete := res.Fields(res.Declared(child.Types[0]))
	assert.True(t, complete)
	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"label", "key", "id"}, names)

	remote := mustParse(t, "R.java", "class R extends lib.Remote { int a; }\n")
	rres := NewIndex().ForUnit(remote)
	fields, complete = rres.Fields(rres.Declared(remote.Types[0]))
	assert.False(t, complete)
	assert.Len(t, fields, 1)
}

func TestMethods(t *testing.T) {
	x, child := fixture(t)
	res := x.ForUnit(child)

	methods := res.Methods(res.Declared(child.Types[0]))
	require.Len(t, methods, 1)
	assert.Equal(t, "name", methods[0].Name)
	assert.Equal(t, 0, methods[0].Arity())
	assert.False(t, methods[0].Abstract())

	named := res.Lookup("model.Named").Type
	methods = res.Methods(named)
	require.Len(t, methods, 1)
	assert.True(t, methods[0].Abstract())

	comparable := res.Lookup("java.lang.Comparable").Type
	require.NotNil(t, comparable)
	assert.True(t, comparable.IsLibrary())
	methods = res.Methods(comparable)
	require.Len(t, methods, 1)
	assert.Equal(t, []string{"java.lang.Object"}, methods[0].Params)
	assert.True(t, methods[0].Abstract(), "library interface methods are abstract")

	object := res.Lookup("java.lang.Object").Type
	assert.False(t, res.Methods(object)[0].Abstract())
}

func TestLibraryTypes(t *testing.T) {
	res := NewIndex().ForUnit(ast.NewCompilationUnit("Empty.java", nil))

	str := res.Lookup("java.lang.String")
	require.True(t, str.Resolved())
	assert.True(t, str.Type.LibraryCopyConstructor())
	assert.Equal(t, "String", str.Type.SimpleName())

	object := res.Lookup("java.lang.Object").Type
	assert.Empty(t, res.Supertypes(object))
	fields, complete := res.Fields(object)
	assert.Empty(t, fields)
	assert.True(t, complete)

	assert.False(t, res.Lookup("com.example.Unknown").Resolved())
	assert.Equal(t, "com.example.Unknown", res.Lookup("com.example.Unknown").Name)
}

func TestParseSignature(t *testing.T) {
	name, params := parseSignature("arraycopy(java.lang.Object,int,java.lang.Object,int,int)")
	assert.Equal(t, "arraycopy", name)
	assert.Len(t, params, 5)

	name, params = parseSignature("hashCode()")
	assert.Equal(t, "hashCode", name)
	assert.Empty(t, params)
}

func TestForUnitFollowsDeclaringUnit(t *testing.T) {
	x, child := fixture(t)
	res := x.ForUnit(child)

	base := res.Lookup("model.Base").Type
	require.NotNil(t, base)

	// Names written in Base.java resolve against its own imports and package.
	other := res.ForUnit(base.Unit)
	got := other.ResolveType(base.Decl, "Key")
	require.True(t, got.Resolved())
	assert.Equal(t, "model.Base.Key", got.Name)
}

func TestIndexConcurrentUse(t *testing.T) {
	x, child := fixture(t)
	extra := mustParse(t, "extra/E.java", "package extra;\nclass E {}\n")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := x.ForUnit(child)
			assert.True(t, res.Lookup("model.Base").Resolved())
			x.Add(extra)
		}()
	}
	wg.Wait()
	assert.Equal(t, 4, x.Len())
}
