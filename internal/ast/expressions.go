package ast

import (
	"strconv"
	"strings"

	"github.com/corvidlang/unboxlower/internal/token"
	"github.com/corvidlang/unboxlower/internal/types"
)

// base holds the fields common to every expression node: its token,
// computed type, and parent back-reference. go-dws's own ast package
// repeats Token/Type/Pos()/String() per struct rather than embedding a
// common base; we embed one shared `base` here to avoid an otherwise
// ~20-way repetition of identical plumbing, while every semantically
// meaningful field (Value, Left/Right, Callee/Args, ...) still lives on
// the concrete struct exactly as go-dws does it.
type base struct {
	Token  token.Token
	Type   types.Type
	parent Node
}

func (b *base) TokenLiteral() string { return b.Token.Literal }
func (b *base) Pos() token.Position  { return b.Token.Pos }
func (b *base) Parent() Node         { return b.parent }
func (b *base) SetParent(p Node)     { b.parent = p }
func (b *base) GetType() types.Type  { return b.Type }
func (b *base) SetType(t types.Type) { b.Type = t }

// Identifier is a name reference: a variable, parameter, or property use.
type Identifier struct {
	base
	Value string
	Ref   *Variable // the declaration this identifier resolves to, nil for type/class names
}

func (*Identifier) expressionNode() {}
func (i *Identifier) String() string { return i.Value }

// BoolLiteral is a `true`/`false` literal.
type BoolLiteral struct {
	base
	Value bool
}

func (*BoolLiteral) expressionNode() {}
func (l *BoolLiteral) String() string {
	if l.Value {
		return "true"
	}
	return "false"
}

// CharLiteral is a single-character literal, e.g. 'x'.
type CharLiteral struct {
	base
	Value rune
}

func (*CharLiteral) expressionNode()  {}
func (l *CharLiteral) String() string { return "'" + string(l.Value) + "'" }

// NumberLiteral is an integer or floating-point literal. IsFloat
// distinguishes the two storage forms; performLiteralConversion (spec.md
// §4.4.4) leaves the original literal untouched and builds a fresh
// NumberLiteral with the converted IntValue/FloatValue/IsFloat/Kind.
type NumberLiteral struct {
	base
	IntValue   int64
	FloatValue float64
	IsFloat    bool
	Kind       types.PrimitiveKind
}

func (*NumberLiteral) expressionNode() {}
func (l *NumberLiteral) String() string {
	if l.IsFloat {
		return strconv.FormatFloat(l.FloatValue, 'g', -1, 64)
	}
	return strconv.FormatInt(l.IntValue, 10)
}

// StringLiteral is a string literal.
type StringLiteral struct {
	base
	Value string
}

func (*StringLiteral) expressionNode()  {}
func (l *StringLiteral) String() string { return strconv.Quote(l.Value) }

// NilLiteral is the `null` literal.
type NilLiteral struct{ base }

func (*NilLiteral) expressionNode()  {}
func (*NilLiteral) String() string   { return "null" }

// BinaryOp enumerates the operator families the visitor's binary-expression
// handler (spec.md §4.6) dispatches on.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpLt
	OpLe
	OpGt
	OpGe
	OpStrictEq
	OpStrictNe
	OpLooseEq
	OpLooseNe
	OpNullish
	OpLogicalAnd
	OpLogicalOr
	OpInstanceOf
)

var binaryOpText = map[BinaryOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
	OpBitAnd: "&", OpBitOr: "|", OpBitXor: "^", OpShl: "<<", OpShr: ">>",
	OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpStrictEq: "===", OpStrictNe: "!==", OpLooseEq: "==", OpLooseNe: "!=",
	OpNullish: "??", OpLogicalAnd: "&&", OpLogicalOr: "||", OpInstanceOf: "instanceof",
}

// BinaryExpression is a binary operation, e.g. `a + b`, `x instanceof Y`.
type BinaryExpression struct {
	base
	Left     Expression
	Operator BinaryOp
	Right    Expression
	// OperationType is the type the operator itself computed at (e.g. the
	// common numeric type for arithmetic), which may differ from Type when
	// the result is later boxed back up (spec.md §4.6 "Arithmetic... set the
	// expression's type and operation type to the unboxed form").
	OperationType types.Type
}

func (*BinaryExpression) expressionNode() {}
func (e *BinaryExpression) String() string {
	return "(" + e.Left.String() + " " + binaryOpText[e.Operator] + " " + e.Right.String() + ")"
}

// UnaryOp enumerates unary operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpPos
	OpNot
	OpBitNot
)

// UnaryExpression is a unary operation, e.g. `-x`, `~b`.
type UnaryExpression struct {
	base
	Operator UnaryOp
	Operand  Expression
}

func (*UnaryExpression) expressionNode() {}
func (e *UnaryExpression) String() string {
	text := map[UnaryOp]string{OpNeg: "-", OpPos: "+", OpNot: "!", OpBitNot: "~"}[e.Operator]
	return "(" + text + e.Operand.String() + ")"
}

// ConditionalExpression is `test ? then : else`.
type ConditionalExpression struct {
	base
	Test Expression
	Then Expression
	Else Expression
}

func (*ConditionalExpression) expressionNode() {}
func (e *ConditionalExpression) String() string {
	return "(" + e.Test.String() + " ? " + e.Then.String() + " : " + e.Else.String() + ")"
}

// AssignmentExpression is `target = value`.
type AssignmentExpression struct {
	base
	Target Expression
	Value  Expression
}

func (*AssignmentExpression) expressionNode() {}
func (e *AssignmentExpression) String() string {
	return e.Target.String() + " = " + e.Value.String()
}

// CallExpression is a function/method call. Spreads[i] is true when
// argument i is a spread element (`...xs`); spec.md §9 directs that spread
// arguments passed into a rest parameter are never unboxed.
type CallExpression struct {
	base
	Callee    Expression
	Args      []Expression
	Spreads   []bool
	Signature *types.Method
	// IsNativeCall marks a call to a foreign/native function (spec.md §4.6
	// Call expression: "if the callee is a native/foreign function... box
	// every argument").
	IsNativeCall bool
	// ThisReturn is true when the referenced signature returns the receiver
	// type (fluent/builder methods); the visitor propagates the receiver's
	// type onto the call result in that case.
	ThisReturn bool
}

func (*CallExpression) expressionNode() {}
func (e *CallExpression) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// NewExpression is a constructor call, `new C(...)`.
type NewExpression struct {
	base
	ClassName string
	Args      []Expression
	Signature *types.Method
}

func (*NewExpression) expressionNode() {}
func (e *NewExpression) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return "new " + e.ClassName + "(" + strings.Join(parts, ", ") + ")"
}

// PropertyAccessExpression is `obj.name`, covering plain field access as
// well as getter/setter-backed properties.
type PropertyAccessExpression struct {
	base
	Object   Expression
	Name     string
	IsStatic bool
	// Property is the declaration this access resolves to, nil when Name
	// is not a class property (e.g. `array.length`, a static method
	// reference). Consulted by visitPropertyAccess to find a Getter/Setter
	// pair (spec.md §4.6, Member expression).
	Property *ClassProperty
	// IsAssignmentTarget is set by the AssignmentExpression handler before
	// descending into its Target, so the getter/setter pair can be
	// resolved correctly: a setter's parameter type on the LHS of an
	// assignment, a getter's return type everywhere else (spec.md §4.6,
	// Member expression).
	IsAssignmentTarget bool
}

func (*PropertyAccessExpression) expressionNode() {}
func (e *PropertyAccessExpression) String() string {
	return e.Object.String() + "." + e.Name
}

// ElementAccessExpression is `obj[index]`.
type ElementAccessExpression struct {
	base
	Object Expression
	Index  Expression
}

func (*ElementAccessExpression) expressionNode() {}
func (e *ElementAccessExpression) String() string {
	return e.Object.String() + "[" + e.Index.String() + "]"
}

// ArrayExpression is an array or tuple literal, `[a, b, c]`. Whether its
// elements adjust against a tuple's per-position component type or a single
// array element type depends on Type's concrete variant once normalised.
type ArrayExpression struct {
	base
	Elements []Expression
}

func (*ArrayExpression) expressionNode() {}
func (e *ArrayExpression) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ArrayCreationExpression is `new T[n]` or `new T[n][m]` (MultiDimArray).
type ArrayCreationExpression struct {
	base
	ElementType types.Type
	Dimensions  []Expression
	Signature   *types.Method
}

func (*ArrayCreationExpression) expressionNode() {}
func (e *ArrayCreationExpression) String() string {
	var sb strings.Builder
	sb.WriteString("new ")
	sb.WriteString(e.ElementType.String())
	for _, d := range e.Dimensions {
		sb.WriteString("[")
		sb.WriteString(d.String())
		sb.WriteString("]")
	}
	return sb.String()
}

// TSAsExpression is a cast, `e as T`.
type TSAsExpression struct {
	base
	Expr       Expression
	TargetType types.Type
}

func (*TSAsExpression) expressionNode() {}
func (e *TSAsExpression) String() string {
	return "(" + e.Expr.String() + " as " + e.TargetType.String() + ")"
}

// NonNullExpression is `e!`.
type NonNullExpression struct {
	base
	Expr Expression
}

func (*NonNullExpression) expressionNode() {}
func (e *NonNullExpression) String() string { return e.Expr.String() + "!" }

// SequenceExpression is a comma/block expression whose value is its last
// element's value.
type SequenceExpression struct {
	base
	Exprs []Expression
}

func (*SequenceExpression) expressionNode() {}
func (e *SequenceExpression) String() string {
	parts := make([]string, len(e.Exprs))
	for i, x := range e.Exprs {
		parts[i] = x.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ReplaceChild relinks a parent's reference to oldChild so that it points
// at newChild instead, and updates newChild's parent pointer. This is the
// single relinking primitive the Conversion Synthesiser and peephole rules
// use to splice a freshly built subtree into the tree in place of an
// existing one (spec.md §3: "never deletes, only replaces via parent
// re-link").
func ReplaceChild(parent Node, oldChild, newChild Expression) {
	if newChild != nil {
		newChild.SetParent(parent)
	}
	switch p := parent.(type) {
	case *BinaryExpression:
		if p.Left == oldChild {
			p.Left = newChild
		} else if p.Right == oldChild {
			p.Right = newChild
		}
	case *UnaryExpression:
		if p.Operand == oldChild {
			p.Operand = newChild
		}
	case *ConditionalExpression:
		switch oldChild {
		case p.Test:
			p.Test = newChild
		case p.Then:
			p.Then = newChild
		case p.Else:
			p.Else = newChild
		}
	case *AssignmentExpression:
		if p.Target == oldChild {
			p.Target = newChild
		} else if p.Value == oldChild {
			p.Value = newChild
		}
	case *CallExpression:
		if p.Callee == oldChild {
			p.Callee = newChild
			return
		}
		for i, a := range p.Args {
			if a == oldChild {
				p.Args[i] = newChild
				return
			}
		}
	case *NewExpression:
		for i, a := range p.Args {
			if a == oldChild {
				p.Args[i] = newChild
				return
			}
		}
	case *PropertyAccessExpression:
		if p.Object == oldChild {
			p.Object = newChild
		}
	case *ElementAccessExpression:
		if p.Object == oldChild {
			p.Object = newChild
		} else if p.Index == oldChild {
			p.Index = newChild
		}
	case *ArrayExpression:
		for i, el := range p.Elements {
			if el == oldChild {
				p.Elements[i] = newChild
				return
			}
		}
	case *TSAsExpression:
		if p.Expr == oldChild {
			p.Expr = newChild
		}
	case *NonNullExpression:
		if p.Expr == oldChild {
			p.Expr = newChild
		}
	case *SequenceExpression:
		for i, x := range p.Exprs {
			if x == oldChild {
				p.Exprs[i] = newChild
				return
			}
		}
	case *ReturnStatement:
		if p.Arg == oldChild {
			p.Arg = newChild
		}
	case *ExpressionStatement:
		if p.Expr == oldChild {
			p.Expr = newChild
		}
	case *VariableDeclarator:
		if p.Init == oldChild {
			p.Init = newChild
		}
	case *ClassProperty:
		if p.Init == oldChild {
			p.Init = newChild
		}
	case *IfStatement:
		if p.Test == oldChild {
			p.Test = newChild
		}
	case *WhileStatement:
		if p.Test == oldChild {
			p.Test = newChild
		}
	case *DoWhileStatement:
		if p.Test == oldChild {
			p.Test = newChild
		}
	case *ForStatement:
		switch oldChild {
		case p.Test:
			p.Test = newChild
		case p.Update:
			p.Update = newChild
		}
	case *SwitchStatement:
		if p.Discriminant == oldChild {
			p.Discriminant = newChild
			return
		}
		for _, c := range p.Cases {
			if c.Test == oldChild {
				c.Test = newChild
				return
			}
		}
	}
}
