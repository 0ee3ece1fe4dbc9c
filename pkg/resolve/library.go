package resolve

import (
	"strings"

	"github.com/leapstack-labs/kudos/pkg/ast"
)

// libraryType describes a type whose sources are not part of the run.
type libraryType struct {
	kind       ast.TypeKind
	super      string
	interfaces []string
	copyCtor   bool
	methods    []string // "name(ParamType,...)"
}

const (
	class      = ast.KindClass
	iface      = ast.KindInterface
	enum       = ast.KindEnum
	annotation = ast.KindAnnotation
)

var objectMethods = []string{
	"equals(java.lang.Object)",
	"hashCode()",
	"toString()",
	"clone()",
	"finalize()",
	"getClass()",
}

// library lists the well-known external types, keyed by qualified name.
// Method lists name what detectors and static imports need, not the full API.
var library = map[string]libraryType{
	// java.lang
	"java.lang.Object":                        {kind: class, methods: objectMethods},
	"java.lang.Cloneable":                     {kind: iface},
	"java.lang.Comparable":                    {kind: iface, methods: []string{"compareTo(java.lang.Object)"}},
	"java.lang.Iterable":                      {kind: iface},
	"java.lang.CharSequence":                  {kind: iface},
	"java.lang.Runnable":                      {kind: iface, methods: []string{"run()"}},
	"java.lang.AutoCloseable":                 {kind: iface},
	"java.lang.String":                        {kind: class, interfaces: []string{"java.io.Serializable", "java.lang.Comparable", "java.lang.CharSequence"}, copyCtor: true, methods: []string{"equals(java.lang.Object)", "compareTo(java.lang.String)", "hashCode()"}},
	"java.lang.Number":                        {kind: class, interfaces: []string{"java.io.Serializable"}},
	"java.lang.Integer":                       {kind: class, super: "java.lang.Number", interfaces: []string{"java.lang.Comparable"}, methods: []string{"equals(java.lang.Object)", "compareTo(java.lang.Integer)"}},
	"java.lang.Long":                          {kind: class, super: "java.lang.Number", interfaces: []string{"java.lang.Comparable"}, methods: []string{"equals(java.lang.Object)", "compareTo(java.lang.Long)"}},
	"java.lang.Short":                         {kind: class, super: "java.lang.Number", interfaces: []string{"java.lang.Comparable"}, methods: []string{"equals(java.lang.Object)", "compareTo(java.lang.Short)"}},
	"java.lang.Byte":                          {kind: class, super: "java.lang.Number", interfaces: []string{"java.lang.Comparable"}, methods: []string{"equals(java.lang.Object)", "compareTo(java.lang.Byte)"}},
	"java.lang.Double":                        {kind: class, super: "java.lang.Number", interfaces: []string{"java.lang.Comparable"}, methods: []string{"equals(java.lang.Object)", "compareTo(java.lang.Double)"}},
	"java.lang.Float":                         {kind: class, super: "java.lang.Number", interfaces: []string{"java.lang.Comparable"}, methods: []string{"equals(java.lang.Object)", "compareTo(java.lang.Float)"}},
	"java.lang.Boolean":                       {kind: class, interfaces: []string{"java.io.Serializable", "java.lang.Comparable"}, methods: []string{"equals(java.lang.Object)", "compareTo(java.lang.Boolean)"}},
	"java.lang.Character":                     {kind: class, interfaces: []string{"java.io.Serializable", "java.lang.Comparable"}, methods: []string{"equals(java.lang.Object)", "compareTo(java.lang.Character)"}},
	"java.lang.Enum":                          {kind: class, interfaces: []string{"java.lang.Comparable", "java.io.Serializable"}, methods: []string{"equals(java.lang.Object)", "compareTo(java.lang.Enum)", "hashCode()", "clone()"}},
	"java.lang.Record":                        {kind: class},
	"java.lang.Math":                          {kind: class},
	"java.lang.System":                        {kind: class, methods: []string{"arraycopy(java.lang.Object,int,java.lang.Object,int,int)"}},
	"java.lang.StringBuilder":                 {kind: class, interfaces: []string{"java.lang.CharSequence"}},
	"java.lang.Thread":                        {kind: class, interfaces: []string{"java.lang.Runnable"}},
	"java.lang.Throwable":                     {kind: class, interfaces: []string{"java.io.Serializable"}},
	"java.lang.Exception":                     {kind: class, super: "java.lang.Throwable"},
	"java.lang.Error":                         {kind: class, super: "java.lang.Throwable"},
	"java.lang.AssertionError":                {kind: class, super: "java.lang.Error"},
	"java.lang.RuntimeException":              {kind: class, super: "java.lang.Exception"},
	"java.lang.CloneNotSupportedException":    {kind: class, super: "java.lang.Exception"},
	"java.lang.IllegalArgumentException":      {kind: class, super: "java.lang.RuntimeException"},
	"java.lang.IllegalStateException":         {kind: class, super: "java.lang.RuntimeException"},
	"java.lang.NullPointerException":          {kind: class, super: "java.lang.RuntimeException"},
	"java.lang.UnsupportedOperationException": {kind: class, super: "java.lang.RuntimeException"},
	"java.lang.Override":                      {kind: annotation},
	"java.lang.Deprecated":                    {kind: annotation},
	"java.lang.SuppressWarnings":              {kind: annotation},
	"java.lang.SafeVarargs":                   {kind: annotation},
	"java.lang.FunctionalInterface":           {kind: annotation},
	"java.lang.annotation.Annotation":         {kind: iface},
	"java.io.Serializable":                    {kind: iface},
	"java.math.BigDecimal":                    {kind: class, super: "java.lang.Number", interfaces: []string{"java.lang.Comparable"}, methods: []string{"equals(java.lang.Object)", "compareTo(java.math.BigDecimal)"}},
	"java.math.BigInteger":                    {kind: class, super: "java.lang.Number", interfaces: []string{"java.lang.Comparable"}, methods: []string{"equals(java.lang.Object)", "compareTo(java.math.BigInteger)"}},

	// java.util
	"java.util.Collection":      {kind: iface, interfaces: []string{"java.lang.Iterable"}},
	"java.util.List":            {kind: iface, interfaces: []string{"java.util.Collection"}, methods: []string{"copyOf(java.util.Collection)", "of()"}},
	"java.util.Set":             {kind: iface, interfaces: []string{"java.util.Collection"}, methods: []string{"copyOf(java.util.Collection)", "of()"}},
	"java.util.SortedSet":       {kind: iface, interfaces: []string{"java.util.Set"}},
	"java.util.NavigableSet":    {kind: iface, interfaces: []string{"java.util.SortedSet"}},
	"java.util.Queue":           {kind: iface, interfaces: []string{"java.util.Collection"}},
	"java.util.Deque":           {kind: iface, interfaces: []string{"java.util.Queue"}},
	"java.util.Map":             {kind: iface, methods: []string{"copyOf(java.util.Map)", "of()"}},
	"java.util.SortedMap":       {kind: iface, interfaces: []string{"java.util.Map"}},
	"java.util.NavigableMap":    {kind: iface, interfaces: []string{"java.util.SortedMap"}},
	"java.util.RandomAccess":    {kind: iface},
	"java.util.ArrayList":       {kind: class, interfaces: []string{"java.util.List", "java.util.RandomAccess", "java.lang.Cloneable", "java.io.Serializable"}, copyCtor: true},
	"java.util.LinkedList":      {kind: class, interfaces: []string{"java.util.List", "java.util.Deque", "java.lang.Cloneable", "java.io.Serializable"}, copyCtor: true},
	"java.util.Vector":          {kind: class, interfaces: []string{"java.util.List", "java.util.RandomAccess", "java.lang.Cloneable", "java.io.Serializable"}, copyCtor: true},
	"java.util.Stack":           {kind: class, super: "java.util.Vector"},
	"java.util.HashSet":         {kind: class, interfaces: []string{"java.util.Set", "java.lang.Cloneable", "java.io.Serializable"}, copyCtor: true},
	"java.util.LinkedHashSet":   {kind: class, super: "java.util.HashSet", copyCtor: true},
	"java.util.TreeSet":         {kind: class, interfaces: []string{"java.util.NavigableSet", "java.lang.Cloneable", "java.io.Serializable"}, copyCtor: true},
	"java.util.HashMap":         {kind: class, interfaces: []string{"java.util.Map", "java.lang.Cloneable", "java.io.Serializable"}, copyCtor: true},
	"java.util.LinkedHashMap":   {kind: class, super: "java.util.HashMap", copyCtor: true},
	"java.util.TreeMap":         {kind: class, interfaces: []string{"java.util.NavigableMap", "java.lang.Cloneable", "java.io.Serializable"}, copyCtor: true},
	"java.util.Hashtable":       {kind: class, interfaces: []string{"java.util.Map", "java.lang.Cloneable", "java.io.Serializable"}, copyCtor: true},
	"java.util.IdentityHashMap": {kind: class, interfaces: []string{"java.util.Map", "java.lang.Cloneable", "java.io.Serializable"}, copyCtor: true},
	"java.util.WeakHashMap":     {kind: class, interfaces: []string{"java.util.Map"}, copyCtor: true},
	"java.util.EnumMap":         {kind: class, interfaces: []string{"java.util.Map", "java.lang.Cloneable", "java.io.Serializable"}, copyCtor: true},
	"java.util.ArrayDeque":      {kind: class, interfaces: []string{"java.util.Deque", "java.lang.Cloneable", "java.io.Serializable"}, copyCtor: true},
	"java.util.PriorityQueue":   {kind: class, interfaces: []string{"java.util.Queue", "java.io.Serializable"}, copyCtor: true},
	"java.util.EnumSet":         {kind: class, interfaces: []string{"java.util.Set", "java.lang.Cloneable", "java.io.Serializable"}, methods: []string{"copyOf(java.util.Collection)", "noneOf(java.lang.Class)", "allOf(java.lang.Class)"}},
	"java.util.Arrays":          {kind: class, methods: []string{"copyOf(java.lang.Object,int)", "copyOfRange(java.lang.Object,int,int)", "asList(java.lang.Object)", "fill(java.lang.Object,java.lang.Object)", "sort(java.lang.Object)"}},
	"java.util.Collections":     {kind: class, methods: []string{"unmodifiableList(java.util.List)", "unmodifiableSet(java.util.Set)", "unmodifiableMap(java.util.Map)", "emptyList()", "sort(java.util.List)"}},
	"java.util.Objects":         {kind: class, methods: []string{"equals(java.lang.Object,java.lang.Object)", "hash(java.lang.Object)", "requireNonNull(java.lang.Object)"}},
	"java.util.Optional":        {kind: class},
	"java.util.Date":            {kind: class, interfaces: []string{"java.io.Serializable", "java.lang.Cloneable", "java.lang.Comparable"}, methods: []string{"equals(java.lang.Object)", "compareTo(java.util.Date)", "clone()"}},

	"java.util.concurrent.ConcurrentHashMap":     {kind: class, interfaces: []string{"java.util.Map", "java.io.Serializable"}, copyCtor: true},
	"java.util.concurrent.ConcurrentSkipListMap": {kind: class, interfaces: []string{"java.util.NavigableMap", "java.lang.Cloneable", "java.io.Serializable"}, copyCtor: true},
	"java.util.concurrent.ConcurrentSkipListSet": {kind: class, interfaces: []string{"java.util.NavigableSet", "java.lang.Cloneable", "java.io.Serializable"}, copyCtor: true},
	"java.util.concurrent.CopyOnWriteArrayList":  {kind: class, interfaces: []string{"java.util.List", "java.util.RandomAccess", "java.lang.Cloneable", "java.io.Serializable"}, copyCtor: true},
	"java.util.concurrent.CopyOnWriteArraySet":   {kind: class, interfaces: []string{"java.util.Set", "java.io.Serializable"}, copyCtor: true},
	"java.util.concurrent.ConcurrentLinkedQueue": {kind: class, interfaces: []string{"java.util.Queue", "java.io.Serializable"}, copyCtor: true},
	"java.util.concurrent.ConcurrentLinkedDeque": {kind: class, interfaces: []string{"java.util.Deque", "java.io.Serializable"}, copyCtor: true},

	// UI toolkits
	"javax.swing.SwingUtilities":     {kind: class, methods: []string{"invokeLater(java.lang.Runnable)", "invokeAndWait(java.lang.Runnable)", "isEventDispatchThread()"}},
	"java.awt.EventQueue":            {kind: class, methods: []string{"invokeLater(java.lang.Runnable)", "invokeAndWait(java.lang.Runnable)", "isDispatchThread()"}},
	"javafx.application.Platform":    {kind: class, methods: []string{"runLater(java.lang.Runnable)", "isFxApplicationThread()", "exit()"}},
	"javax.swing.JComponent":         {kind: class},
	"javax.swing.SwingWorker":        {kind: class, interfaces: []string{"java.lang.Runnable"}},
	"javafx.application.Application": {kind: class},

	// JUnit 4
	"org.junit.Test":                             {kind: annotation},
	"org.junit.Before":                           {kind: annotation},
	"org.junit.After":                            {kind: annotation},
	"org.junit.BeforeClass":                      {kind: annotation},
	"org.junit.AfterClass":                       {kind: annotation},
	"org.junit.Ignore":                           {kind: annotation},
	"org.junit.Assert":                           {kind: class, methods: []string{"assertEquals(java.lang.Object,java.lang.Object)", "assertTrue(boolean)", "assertFalse(boolean)", "assertNull(java.lang.Object)", "assertNotNull(java.lang.Object)"}},
	"org.junit.runner.RunWith":                   {kind: annotation},
	"org.junit.runners.Parameterized":            {kind: class},
	"org.junit.runners.Parameterized.Parameters": {kind: annotation},
	"org.junit.runners.Parameterized.Parameter":  {kind: annotation},
	"org.junit.runners.JUnit4":                   {kind: class},

	// JUnit 5
	"org.junit.jupiter.api.Test":                     {kind: annotation},
	"org.junit.jupiter.api.BeforeEach":               {kind: annotation},
	"org.junit.jupiter.api.AfterEach":                {kind: annotation},
	"org.junit.jupiter.api.BeforeAll":                {kind: annotation},
	"org.junit.jupiter.api.AfterAll":                 {kind: annotation},
	"org.junit.jupiter.api.Disabled":                 {kind: annotation},
	"org.junit.jupiter.api.DisplayName":              {kind: annotation},
	"org.junit.jupiter.api.Nested":                   {kind: annotation},
	"org.junit.jupiter.api.Assertions":               {kind: class, methods: []string{"assertEquals(java.lang.Object,java.lang.Object)", "assertTrue(boolean)", "assertFalse(boolean)", "assertThrows(java.lang.Class,java.lang.Object)"}},
	"org.junit.jupiter.params.ParameterizedTest":     {kind: annotation},
	"org.junit.jupiter.params.provider.ValueSource":  {kind: annotation},
	"org.junit.jupiter.params.provider.MethodSource": {kind: annotation},
	"org.junit.jupiter.params.provider.CsvSource":    {kind: annotation},
	"org.junit.jupiter.params.provider.EnumSource":   {kind: annotation},
	"org.junit.jupiter.params.provider.Arguments":    {kind: iface},

	// TestNG
	"org.testng.annotations.Test":         {kind: annotation},
	"org.testng.annotations.BeforeMethod": {kind: annotation},
	"org.testng.annotations.AfterMethod":  {kind: annotation},
	"org.testng.annotations.BeforeClass":  {kind: annotation},
	"org.testng.annotations.AfterClass":   {kind: annotation},
	"org.testng.annotations.BeforeSuite":  {kind: annotation},
	"org.testng.annotations.AfterSuite":   {kind: annotation},
	"org.testng.annotations.BeforeTest":   {kind: annotation},
	"org.testng.annotations.AfterTest":    {kind: annotation},
	"org.testng.annotations.BeforeGroups": {kind: annotation},
	"org.testng.annotations.AfterGroups":  {kind: annotation},
	"org.testng.annotations.DataProvider": {kind: annotation},

	// Copy utilities
	"org.apache.commons.lang3.SerializationUtils":   {kind: class, methods: []string{"clone(java.io.Serializable)"}},
	"org.apache.commons.lang3.ArrayUtils":           {kind: class, methods: []string{"clone(java.lang.Object)"}},
	"com.google.common.collect.ImmutableCollection": {kind: class, interfaces: []string{"java.util.Collection"}},
	"com.google.common.collect.ImmutableList":       {kind: class, super: "com.google.common.collect.ImmutableCollection", interfaces: []string{"java.util.List"}, methods: []string{"copyOf(java.util.Collection)", "of()"}},
	"com.google.common.collect.ImmutableSet":        {kind: class, super: "com.google.common.collect.ImmutableCollection", interfaces: []string{"java.util.Set"}, methods: []string{"copyOf(java.util.Collection)", "of()"}},
	"com.google.common.collect.ImmutableSortedSet":  {kind: class, super: "com.google.common.collect.ImmutableSet", interfaces: []string{"java.util.NavigableSet"}, methods: []string{"copyOf(java.util.Collection)"}},
	"com.google.common.collect.ImmutableMap":        {kind: class, interfaces: []string{"java.util.Map"}, methods: []string{"copyOf(java.util.Map)", "of()"}},
	"com.google.common.collect.ImmutableSortedMap":  {kind: class, super: "com.google.common.collect.ImmutableMap", interfaces: []string{"java.util.NavigableMap"}, methods: []string{"copyOf(java.util.Map)"}},
	"com.google.common.collect.Lists":               {kind: class, methods: []string{"newArrayList(java.lang.Iterable)", "newLinkedList(java.lang.Iterable)"}},
	"com.google.common.collect.Sets":                {kind: class, methods: []string{"newHashSet(java.lang.Iterable)", "newTreeSet(java.lang.Iterable)"}},
	"com.google.common.collect.Maps":                {kind: class, methods: []string{"newHashMap(java.util.Map)", "newTreeMap(java.util.SortedMap)"}},

	// Misc
	"java.lang.annotation.Retention":       {kind: annotation},
	"java.lang.annotation.Target":          {kind: annotation},
	"java.lang.annotation.ElementType":     {kind: enum},
	"java.lang.annotation.RetentionPolicy": {kind: enum},
}

// libraryTypes holds one shared Type per library entry.
var libraryTypes = func() map[string]*Type {
	out := make(map[string]*Type, len(library))
	for name, entry := range library {
		entry := entry
		out[name] = &Type{Name: name, Kind: entry.kind, lib: &entry}
	}
	return out
}()

func lookupLibrary(fqn string) *Type {
	return libraryTypes[fqn]
}

// parseSignature splits "name(A,B)" into its name and parameter types.
func parseSignature(sig string) (string, []string) {
	open := strings.IndexByte(sig, '(')
	if open < 0 {
		return sig, nil
	}
	name := sig[:open]
	inner := strings.TrimSuffix(sig[open+1:], ")")
	if inner == "" {
		return name, nil
	}
	return name, strings.Split(inner, ",")
}
