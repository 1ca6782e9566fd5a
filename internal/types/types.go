// Package types defines the type graph the Unboxing Lowering Pass rewrites,
// and the pure predicates the pass uses to decide whether a type needs
// rewriting. It mirrors go-dws's internal/types package in spirit (a shared,
// identity-based type graph consumed by semantic analysis) but models a
// language with boxed-primitive wrappers instead of DWScript's Variant-based
// dynamic typing.
package types

import "strings"

// PrimitiveKind enumerates the primitive kinds a boxed wrapper can wrap.
type PrimitiveKind int

const (
	Bool PrimitiveKind = iota
	Char
	Byte
	Short
	Int
	Long
	Float
	Double
)

func (k PrimitiveKind) String() string {
	switch k {
	case Bool:
		return "boolean"
	case Char:
		return "char"
	case Byte:
		return "byte"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return "<unknown-primitive>"
	}
}

// WideningChain is the standard numeric promotion order, byte -> short ->
// int -> long -> float -> double (spec.md §4.5 / GLOSSARY).
var WideningChain = []PrimitiveKind{Byte, Short, Int, Long, Float, Double}

// BoxedName returns the conventional wrapper class name for a primitive kind
// ("Int" for Int, "Double" for Double, ...). Wrapper types are looked up by
// this name in a Checker's global scope.
func (k PrimitiveKind) BoxedName() string {
	switch k {
	case Bool:
		return "Boolean"
	case Char:
		return "Char"
	case Byte:
		return "Byte"
	case Short:
		return "Short"
	case Int:
		return "Int"
	case Long:
		return "Long"
	case Float:
		return "Float"
	case Double:
		return "Double"
	default:
		return "<unknown-boxed>"
	}
}

// Type is the common interface implemented by every type-graph node.
type Type interface {
	typeNode()
	String() string
}

// Primitive is a value type with no object identity.
type Primitive struct {
	Kind PrimitiveKind
}

func (*Primitive) typeNode()        {}
func (p *Primitive) String() string { return p.Kind.String() }

// Method describes a single (non-overloaded) method or constructor signature
// on an Object type. The Unboxing pass only ever needs the method's shape
// (parameter/return types), never its body.
type Method struct {
	Name     string
	Params   []Type
	Return   Type // nil for constructors
	IsStatic bool
}

// Object is a reference type: a class/interface instance, including the
// builtin boxed-primitive wrappers. BoxedPrimitive (spec.md §3) is realized
// as an Object whose Boxed field is non-nil, not as a separate variant.
type Object struct {
	Name          string
	TypeArgs      []Type
	InstanceMethods map[string]*Method
	StaticMethods   map[string]*Method
	Constructors    []*Method

	// Boxed is non-nil when this Object is a boxed-primitive wrapper; its
	// value is the primitive kind it wraps.
	Boxed *PrimitiveKind

	// Supertypes lists the direct ancestor Object types, used by the
	// Checker's IsSupertypeOf to walk the hierarchy. Boxed wrappers have no
	// supertypes of interest to this pass.
	Supertypes []*Object
}

func (*Object) typeNode() {}
func (o *Object) String() string {
	if len(o.TypeArgs) == 0 {
		return o.Name
	}
	parts := make([]string, len(o.TypeArgs))
	for i, a := range o.TypeArgs {
		parts[i] = a.String()
	}
	return o.Name + "<" + strings.Join(parts, ", ") + ">"
}

// IsBoxedPrimitive reports whether o wraps a primitive (spec.md §4.1).
func (o *Object) IsBoxedPrimitive() bool { return o != nil && o.Boxed != nil }

// UnboxedKind returns the wrapped primitive kind; only valid when
// IsBoxedPrimitive() is true.
func (o *Object) UnboxedKind() PrimitiveKind { return *o.Boxed }

// Array is a fixed-size array type; its element may be unboxed all the way
// down (spec.md §4.2, "rewrite the element as a top-level type").
type Array struct {
	Elem Type
}

func (*Array) typeNode()        {}
func (a *Array) String() string { return a.Elem.String() + "[]" }

// ResizableArray holds references: its element is rewritten in
// "reference-only" mode and never collapses to a bare primitive.
type ResizableArray struct {
	Elem Type
}

func (*ResizableArray) typeNode()        {}
func (a *ResizableArray) String() string { return "Array<" + a.Elem.String() + ">" }

// Tuple is an ordered, fixed-arity sequence of element types.
type Tuple struct {
	Elems []Type
}

func (*Tuple) typeNode() {}
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Union is an unordered set of constituent types.
type Union struct {
	Members []Type
}

func (*Union) typeNode() {}
func (u *Union) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// TypeParameter is a generic type parameter; ID is stable for the lifetime
// of the declaring generic and is what cycle detection keys on (spec.md §4.2
// "Cycle protection").
type TypeParameter struct {
	ID         int
	Name       string
	Constraint Type
}

func (*TypeParameter) typeNode()        {}
func (p *TypeParameter) String() string { return p.Name }

// Enum is a leaf type; enum constants are never boxed-primitive wrappers, so
// the rewriter always treats it as opaque.
type Enum struct {
	Name string
}

func (*Enum) typeNode()        {}
func (e *Enum) String() string { return e.Name }

// Leaf singleton types.
type (
	StringType    struct{}
	NullType      struct{}
	UndefinedType struct{}
	AnyType       struct{}
	NeverType     struct{}
)

func (*StringType) typeNode()    {}
func (*NullType) typeNode()      {}
func (*UndefinedType) typeNode() {}
func (*AnyType) typeNode()       {}
func (*NeverType) typeNode()     {}

func (*StringType) String() string    { return "string" }
func (*NullType) String() string      { return "null" }
func (*UndefinedType) String() string { return "undefined" }
func (*AnyType) String() string       { return "any" }
func (*NeverType) String() string     { return "never" }

// Singleton instances; the type graph shares leaves by identity.
var (
	StringSingleton    = &StringType{}
	NullSingleton      = &NullType{}
	UndefinedSingleton = &UndefinedType{}
	AnySingleton       = &AnyType{}
	NeverSingleton     = &NeverType{}
)
