package detectors

import (
	"github.com/leapstack-labs/kudos/pkg/ast"
	"github.com/leapstack-labs/kudos/pkg/pattern"
)

// lifecycleAnnotations are the fixture annotations of JUnit 4, JUnit 5 and
// TestNG.
var lifecycleAnnotations = set(
	"org.junit.Before",
	"org.junit.After",
	"org.junit.BeforeClass",
	"org.junit.AfterClass",
	"org.junit.jupiter.api.BeforeEach",
	"org.junit.jupiter.api.AfterEach",
	"org.junit.jupiter.api.BeforeAll",
	"org.junit.jupiter.api.AfterAll",
	"org.testng.annotations.BeforeMethod",
	"org.testng.annotations.AfterMethod",
	"org.testng.annotations.BeforeClass",
	"org.testng.annotations.AfterClass",
	"org.testng.annotations.BeforeSuite",
	"org.testng.annotations.AfterSuite",
	"org.testng.annotations.BeforeTest",
	"org.testng.annotations.AfterTest",
	"org.testng.annotations.BeforeGroups",
	"org.testng.annotations.AfterGroups",
)

// SetupTeardown (TS02) detects test fixture methods run before or after
// tests. A method carrying several lifecycle annotations is reported once.
type SetupTeardown struct {
	pattern.Base
}

// Detect implements pattern.Detector.
func (d *SetupTeardown) Detect(unit *pattern.Unit) ([]pattern.Instance, error) {
	if err := d.Bound(); err != nil {
		return nil, err
	}

	var out []pattern.Instance
	ast.Inspect(unit.CompilationUnit, func(owner *ast.TypeDecl, n ast.Node) {
		m, ok := n.(*ast.MethodDecl)
		if !ok {
			return
		}
		if annotatedWith(unit.Resolver, owner, m.Modifiers, lifecycleAnnotations) != nil {
			out = append(out, d.Instance(unit, owner, m))
		}
	})
	return out, nil
}
