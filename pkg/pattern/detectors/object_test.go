package detectors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOB01_CloneBlueprint(t *testing.T) {
	tests := []detectorCase{
		{
			name: "try wrapper with covariant return",
			src: `class Point implements Cloneable {
    int x;
    @Override
    public Point clone() {
        try {
            return (Point) super.clone();
        } catch (CloneNotSupportedException e) {
            throw new AssertionError(e);
        }
    }
}`,
			want: 1,
		},
		{
			name: "bare delegation",
			src: `class Point implements Cloneable {
    protected Object clone() throws CloneNotSupportedException {
        return super.clone();
    }
}`,
			want: 1,
		},
		{
			name: "local returned unmodified",
			src: `class Point implements Cloneable {
    public Point clone() throws CloneNotSupportedException {
        Point copy = (Point) super.clone();
        return copy;
    }
}`,
			want: 1,
		},
		{
			name: "local modified before return",
			src: `class Point implements Cloneable {
    int x;
    public Point clone() throws CloneNotSupportedException {
        Point copy = (Point) super.clone();
        copy.x = 0;
        return copy;
    }
}`,
			want: 0,
		},
		{
			name: "copy created with a constructor",
			src: `class Point implements Cloneable {
    public Point clone() {
        return new Point();
    }
}`,
			want: 0,
		},
		{
			name: "handler swallows the exception",
			src: `class Point implements Cloneable {
    public Point clone() {
        try {
            return (Point) super.clone();
        } catch (CloneNotSupportedException e) {
            return null;
        }
    }
}`,
			want: 0,
		},
		{
			name: "not cloneable",
			src: `class Point {
    public Object clone() throws CloneNotSupportedException {
        return super.clone();
    }
}`,
			want: 0,
		},
		{
			name: "cloneable through project superclass",
			src: `class Child extends Base {
    public Child clone() throws CloneNotSupportedException {
        return (Child) super.clone();
    }
}`,
			support: []string{`class Base implements Cloneable {}`},
			want:    1,
		},
		{
			name: "unresolved superclass",
			src: `class Child extends Missing {
    public Child clone() throws CloneNotSupportedException {
        return (Child) super.clone();
    }
}`,
			want: 0,
		},
		{
			name: "static clone helper",
			src: `class Point implements Cloneable {
    static Point clone(Point p) {
        return p;
    }
}`,
			want: 0,
		},
	}
	runCases(t, "OB01", tests)
}

func TestOB02_CopyConstructor(t *testing.T) {
	tests := []detectorCase{
		{
			name: "all fields copied",
			src: `class Point {
    private int x;
    private int y;
    Point(Point other) {
        this.x = other.x;
        this.y = other.y;
    }
}`,
			want: 1,
		},
		{
			name: "field missing",
			src: `class Point {
    private int x;
    private int y;
    Point(Point other) {
        this.x = other.x;
    }
}`,
			want: 0,
		},
		{
			name: "field copied from another field",
			src: `class Point {
    private int x;
    private int y;
    Point(Point other) {
        this.x = other.y;
        this.y = other.x;
    }
}`,
			want: 0,
		},
		{
			name: "container copy constructor and copy utility",
			src: `import java.util.ArrayList;
import java.util.Arrays;
import java.util.List;

class Bag {
    private static int created;
    private final String label = "bag";
    private List<String> items;
    private int[] counts;

    Bag(Bag other) {
        items = new ArrayList<>(other.items);
        counts = Arrays.copyOf(other.counts, other.counts.length);
    }
}`,
			want: 1,
		},
		{
			name: "clone and declared copy method",
			src: `class Holder {
    private int[] data;
    private Part part;
    Holder(Holder src) {
        this.data = src.data.clone();
        this.part = src.part.copy();
    }
}`,
			support: []string{`class Part {
    Part copy() {
        return new Part();
    }
}`},
			want: 1,
		},
		{
			name: "copy method not declared",
			src: `class Holder {
    private Part part;
    Holder(Holder src) {
        this.part = src.part.copy();
    }
}`,
			support: []string{`class Part {}`},
			want:    0,
		},
		{
			name: "static import of copy utility",
			src: `import static java.util.List.copyOf;
import java.util.List;

class Roster {
    private List<String> names;
    Roster(Roster r) {
        this.names = copyOf(r.names);
    }
}`,
			want: 1,
		},
		{
			name: "delegates with this",
			src: `class Point {
    private int x;
    Point(int x) {
        this.x = x;
    }
    Point(Point other) {
        this(other.x);
    }
}`,
			want: 0,
		},
		{
			name: "nested project copy constructors",
			src: `class Line {
    private Point start;
    private Point end;
    Line(Line other) {
        this.start = new Point(other.start);
        this.end = new Point(other.end);
    }
}

class Point {
    private int x;
    Point(Point other) {
        this.x = other.x;
    }
}`,
			want: 2,
		},
		{
			name: "nested type without copy constructor",
			src: `class Line {
    private Point start;
    Line(Line other) {
        this.start = new Point(other.start);
    }
}

class Point {
    private int x;
    Point(int x) {
        this.x = x;
    }
}`,
			want: 0,
		},
		{
			name: "self referential type",
			src: `class Node {
    private int value;
    private Node next;
    Node(Node other) {
        this.value = other.value;
        this.next = new Node(other.next);
    }
}`,
			want: 1,
		},
		{
			name: "no fields to copy",
			src: `class Marker {
    Marker(Marker m) {}
}`,
			want: 1,
		},
		{
			name: "object parameter",
			src: `class Marker {
    Marker(Object m) {}
}`,
			want: 0,
		},
		{
			name: "unrelated parameter type",
			src: `class Point {
    private int x;
    Point(Line l) {
        this.x = l.x;
    }
}`,
			support: []string{`class Line { int x; }`},
			want:    0,
		},
		{
			name: "unresolved parameter type",
			src: `class Point {
    Point(Missing m) {}
}`,
			want: 0,
		},
		{
			name: "varargs parameter",
			src: `class Point {
    Point(Point... others) {}
}`,
			want: 0,
		},
		{
			name: "second parameter",
			src: `class P {
    private int x;
    P(P o, int k) {
        this.x = o.x;
    }
}`,
			want: 0,
		},
		{
			name: "field copied through unrecognized call",
			src: `import java.util.List;

class P {
    private int x;
    private List<String> l;
    P(P o) {
        this.x = o.x;
        this.l = helper(o.l);
    }
    static List<String> helper(List<String> v) { return v; }
}`,
			want: 0,
		},
		{
			name: "mutually recursive copy constructors",
			src: mutualA + "\n" + mutualB,
			want: 2,
		},
		{
			name: "cycle through failing constructor declared first",
			src:  brokenA + "\n" + mutualB,
			want: 0,
		},
		{
			name: "cycle through failing constructor declared last",
			src:  mutualB + "\n" + brokenA,
			want: 0,
		},
	}
	runCases(t, "OB02", tests)
}

// Copy constructors of A and B each rely on the other's.
const (
	mutualA = `class A {
    private B b;
    A(A o) {
        this.b = new B(o.b);
    }
}`
	mutualB = `class B {
    private A a;
    B(B o) {
        this.a = new A(o.a);
    }
}`
	brokenA = `class A {
    private B b;
    private int q;
    A(A o) {
        this.b = new B(o.b);
        this.q = bad(o.q);
    }
    static int bad(int v) { return v; }
}`
)

func TestOB02_SupertypeParameter(t *testing.T) {
	src := `class Square extends Shape {
    private int side;
    Square(Shape other) {
        this.side = other.side;
    }
}`
	shape := `class Shape {
    protected int side;
}`
	got := runDetector(t, "OB02", src, shape)
	require.Len(t, got, 1)
	assert.Equal(t, "Square", got[0].TypeName)
	assert.Equal(t, 3, got[0].Pos.Line)
}

func TestOB03_CompareToAndEquals(t *testing.T) {
	tests := []detectorCase{
		{
			name: "both declared",
			src: `class Version implements Comparable<Version> {
    private int major;

    @Override
    public int compareTo(Version o) {
        return Integer.compare(major, o.major);
    }

    @Override
    public boolean equals(Object o) {
        return o instanceof Version && ((Version) o).major == major;
    }

    @Override
    public int hashCode() {
        return major;
    }
}`,
			want: 1,
		},
		{
			name: "equals only from Object",
			src: `class Version implements Comparable<Version> {
    public int compareTo(Version o) {
        return 0;
    }
}`,
			want: 0,
		},
		{
			name: "equals inherited from project superclass",
			src: `class Derived extends Base implements Comparable<Derived> {
    public int compareTo(Derived d) {
        return 0;
    }
}

class Base {
    public boolean equals(Object o) {
        return true;
    }
}`,
			want: 1,
		},
		{
			name: "subclass inheriting both",
			src:  `class Child extends Version {}`,
			support: []string{`class Version implements Comparable<Version> {
    public int compareTo(Version o) {
        return 0;
    }
    public boolean equals(Object o) {
        return true;
    }
}`},
			want: 0,
		},
		{
			name: "not comparable",
			src: `class Money {
    public int compareTo(Money m) {
        return 0;
    }
    public boolean equals(Object o) {
        return true;
    }
}`,
			want: 0,
		},
		{
			name: "comparability unknown",
			src: `class Money extends Missing {
    public int compareTo(Money m) {
        return 0;
    }
    public boolean equals(Object o) {
        return true;
    }
}`,
			want: 0,
		},
		{
			name: "abstract compareTo only",
			src: `class B extends A {
    public boolean equals(Object o) {
        return true;
    }
}

abstract class A implements Comparable<A> {
    public abstract int compareTo(A a);
}`,
			want: 0,
		},
		{
			name: "equals overload is not equals",
			src: `class Version implements Comparable<Version> {
    public int compareTo(Version o) {
        return 0;
    }
    public boolean equals(Version o) {
        return true;
    }
}`,
			want: 0,
		},
		{
			name: "record",
			src: `record Pair(int a, int b) implements Comparable<Pair> {
    public int compareTo(Pair o) {
        return Integer.compare(a, o.a);
    }
    public boolean equals(Object o) {
        return o instanceof Pair && ((Pair) o).a == a;
    }
}`,
			want: 1,
		},
	}
	runCases(t, "OB03", tests)
}
