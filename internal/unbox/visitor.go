package unbox

import (
	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/types"
)

// The AST Visitor (spec.md §4.6): a postorder walk over statements and
// expressions. Every handler assumes its children have already been
// processed — adjustChild enforces that by recursing before relinking.

// VisitProgram walks every top-level statement of prog.
func VisitProgram(ctx *Context, prog *ast.Program) {
	for _, stmt := range prog.Statements {
		VisitStatement(ctx, stmt)
	}
}

// adjustChild recurses into child, then relinks parent's reference to it if
// the child handler spliced in a different node (peephole fusion, a boxed
// non-null assertion, a synthesised conversion replacing a literal, ...).
func adjustChild(ctx *Context, parent ast.Node, child ast.Expression) ast.Expression {
	if child == nil {
		return nil
	}
	visited := VisitExpression(ctx, child)
	if visited != child {
		ast.ReplaceChild(parent, child, visited)
	}
	return visited
}

// adjustOnly applies AdjustType to an already-visited child and relinks it
// if AdjustType spliced in a different node, without re-running
// VisitExpression (used where the child was visited earlier in the same
// handler, e.g. the nullish-coalescing operands).
func adjustOnly(ctx *Context, parent ast.Node, child ast.Expression, expected types.Type) ast.Expression {
	adjusted := AdjustType(ctx, child, expected)
	if adjusted != child {
		ast.ReplaceChild(parent, child, adjusted)
	}
	return adjusted
}

// coerceChild is adjustChild followed by an AdjustType call against
// expected, the shape every statement/expression handler that "adjusts X to
// type T" below is built from.
func coerceChild(ctx *Context, parent ast.Node, child ast.Expression, expected types.Type) ast.Expression {
	visited := adjustChild(ctx, parent, child)
	if expected == nil {
		return visited
	}
	adjusted := AdjustType(ctx, visited, expected)
	if adjusted != visited {
		ast.ReplaceChild(parent, visited, adjusted)
	}
	return adjusted
}

// VisitStatement dispatches on stmt's concrete kind.
func VisitStatement(ctx *Context, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		s.Expr = adjustChild(ctx, s, s.Expr)

	case *ast.ReturnStatement:
		if s.Arg != nil && ctx.CurrentFunction != nil {
			s.Arg = coerceChild(ctx, s, s.Arg, ctx.CurrentFunction.ReturnType)
		}

	case *ast.BlockStatement:
		for _, child := range s.Statements {
			VisitStatement(ctx, child)
		}

	case *ast.IfStatement:
		s.Test = unboxTest(ctx, s, s.Test)
		VisitStatement(ctx, s.Then)
		if s.Else != nil {
			VisitStatement(ctx, s.Else)
		}

	case *ast.WhileStatement:
		s.Test = unboxTest(ctx, s, s.Test)
		VisitStatement(ctx, s.Body)

	case *ast.DoWhileStatement:
		VisitStatement(ctx, s.Body)
		s.Test = unboxTest(ctx, s, s.Test)

	case *ast.ForStatement:
		if s.Init != nil {
			VisitStatement(ctx, s.Init)
		}
		if s.Test != nil {
			s.Test = unboxTest(ctx, s, s.Test)
		}
		if s.Update != nil {
			s.Update = adjustChild(ctx, s, s.Update)
		}
		VisitStatement(ctx, s.Body)

	case *ast.ForOfStatement:
		// The iteration variable's type is resolved before this pass's
		// visitor runs (spec.md §4.6, "For-of statement"); see HandleForOf,
		// invoked by the driver's preorder type-normalisation sweep. Here we
		// only need to descend into the body.
		VisitStatement(ctx, s.Body)

	case *ast.SwitchStatement:
		visitSwitch(ctx, s)

	case *ast.VarDeclStatement:
		for _, d := range s.Declarators {
			if d.Init != nil {
				d.Init = coerceChild(ctx, d, d.Init, d.GetType())
			}
		}

	case *ast.FunctionDecl:
		prevFn := ctx.CurrentFunction
		ctx.CurrentFunction = s
		if s.Body != nil {
			VisitStatement(ctx, s.Body)
		}
		ctx.CurrentFunction = prevFn

	case *ast.ClassDecl:
		for _, prop := range s.Properties {
			if prop.Init != nil {
				prop.Init = coerceChild(ctx, prop, prop.Init, prop.GetType())
			}
		}
		for _, m := range s.Methods {
			VisitStatement(ctx, m)
		}
		for _, c := range s.Constructors {
			VisitStatement(ctx, c)
		}
	}
}

func unboxTest(ctx *Context, parent ast.Node, test ast.Expression) ast.Expression {
	visited := adjustChild(ctx, parent, test)
	if types.IsBoxedPrimitive(visited.GetType()) {
		unboxed := InsertUnboxing(ctx, visited)
		ast.ReplaceChild(parent, visited, unboxed)
		return unboxed
	}
	return visited
}

// HandleForOf resolves a for-of loop's iteration-variable type: the array
// element type when the (already-normalised) iterable is an array, Char
// when it's a string, or left unchanged when the iterable type is a union
// (spec.md §4.6, "For-of statement"). Called by the driver before the main
// visitor pass.
func HandleForOf(ctx *Context, s *ast.ForOfStatement) {
	iterType := s.Iterable.GetType()
	switch it := iterType.(type) {
	case *types.Array:
		s.VarDecl.Type = it.Elem
	case *types.ResizableArray:
		s.VarDecl.Type = it.Elem
	case *types.StringType:
		s.VarDecl.Type = &types.Primitive{Kind: types.Char}
	case *types.Union:
		// unchanged
	}
}

func visitSwitch(ctx *Context, s *ast.SwitchStatement) {
	s.Discriminant = adjustChild(ctx, s, s.Discriminant)
	unboxedKind, isPrim := primKind(ctx.Checker.MaybeUnboxType(s.Discriminant.GetType()))
	if !isPrim {
		for _, c := range s.Cases {
			if c.Test != nil {
				c.Test = VisitExpression(ctx, c.Test)
			}
		}
		return
	}
	target := &types.Primitive{Kind: unboxedKind}
	s.Discriminant = AdjustType(ctx, s.Discriminant, target)
	for _, c := range s.Cases {
		if c.Test != nil {
			adjusted := AdjustType(ctx, VisitExpression(ctx, c.Test), target)
			c.Test = adjusted
		}
	}
}

// VisitExpression recurses into expr's children, applies expr's own
// handler, and returns the (possibly replaced) expression. Callers are
// responsible for relinking the result into their own parent reference.
func VisitExpression(ctx *Context, expr ast.Expression) ast.Expression {
	switch e := expr.(type) {
	case *ast.Identifier:
		return visitIdentifier(ctx, e)

	case *ast.BoolLiteral:
		unboxLiteralType(e)
		return e
	case *ast.CharLiteral:
		unboxLiteralType(e)
		return e
	case *ast.NumberLiteral:
		unboxLiteralType(e)
		return e
	case *ast.StringLiteral, *ast.NilLiteral:
		return e

	case *ast.BinaryExpression:
		return visitBinary(ctx, e)

	case *ast.UnaryExpression:
		return visitUnary(ctx, e)

	case *ast.ConditionalExpression:
		e.Test = unboxTest(ctx, e, e.Test)
		e.Then = coerceChild(ctx, e, e.Then, e.GetType())
		e.Else = coerceChild(ctx, e, e.Else, e.GetType())
		return e

	case *ast.AssignmentExpression:
		if pa, ok := e.Target.(*ast.PropertyAccessExpression); ok {
			pa.IsAssignmentTarget = true
		}
		e.Target = adjustChild(ctx, e, e.Target)
		e.Value = coerceChild(ctx, e, e.Value, e.Target.GetType())
		e.SetType(e.Target.GetType())
		return e

	case *ast.CallExpression:
		return visitCall(ctx, e)

	case *ast.NewExpression:
		return visitNew(ctx, e)

	case *ast.PropertyAccessExpression:
		return visitPropertyAccess(ctx, e)

	case *ast.ElementAccessExpression:
		return visitElementAccess(ctx, e)

	case *ast.ArrayExpression:
		return visitArrayLiteral(ctx, e)

	case *ast.ArrayCreationExpression:
		return visitArrayCreation(ctx, e)

	case *ast.TSAsExpression:
		return visitAs(ctx, e)

	case *ast.NonNullExpression:
		return visitNonNull(ctx, e)

	case *ast.SequenceExpression:
		var last ast.Expression
		for i, x := range e.Exprs {
			visited := adjustChild(ctx, e, x)
			e.Exprs[i] = visited
			last = visited
		}
		if last != nil {
			e.SetType(last.GetType())
		}
		return e

	default:
		return expr
	}
}

func unboxLiteralType(lit ast.Typed) {
	if o, ok := lit.GetType().(*types.Object); ok && o.IsBoxedPrimitive() {
		lit.SetType(&types.Primitive{Kind: o.UnboxedKind()})
	}
}

func visitIdentifier(ctx *Context, id *ast.Identifier) ast.Expression {
	if id.Ref == nil {
		return id
	}
	if _, isClass := id.Ref.Decl.(*ast.ClassDecl); isClass {
		return id
	}
	if types.IsPrimitive(id.Ref.Type) {
		id.SetType(id.Ref.Type)
		return id
	}
	if types.IsPrimitive(id.GetType()) {
		prim := id.GetType().(*types.Primitive)
		return InsertBoxing(ctx, id, prim.Kind)
	}
	id.SetType(Normalize(ctx.Checker, id.GetType()))
	return id
}

func visitBinary(ctx *Context, e *ast.BinaryExpression) ast.Expression {
	e.Left = adjustChild(ctx, e, e.Left)
	e.Right = adjustChild(ctx, e, e.Right)

	switch e.Operator {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod,
		ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShl, ast.OpShr,
		ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		e.Left = unboxIfBoxed(ctx, e, e.Left)
		e.Right = unboxIfBoxed(ctx, e, e.Right)
		if kind, ok := primKind(e.Left.GetType()); ok {
			e.SetType(&types.Primitive{Kind: kind})
			e.OperationType = e.GetType()
			if rightKind, ok := primKind(e.Right.GetType()); ok {
				e.OperationType = &types.Primitive{Kind: commonWideningKind(kind, rightKind)}
			}
		}

	case ast.OpStrictEq, ast.OpStrictNe, ast.OpLooseEq, ast.OpLooseNe:
		visitEquality(ctx, e)

	case ast.OpNullish:
		t := e.GetType()
		nullable := ctx.Checker.CreateUnionType(t, types.NullSingleton, types.UndefinedSingleton)
		e.Left = adjustOnly(ctx, e, e.Left, nullable)
		e.Right = adjustOnly(ctx, e, e.Right, t)

	case ast.OpLogicalAnd, ast.OpLogicalOr:
		visitLogical(ctx, e)

	case ast.OpInstanceOf:
		if kind, ok := primKind(e.Left.GetType()); ok {
			e.Left = InsertBoxing(ctx, e.Left, kind)
		}
		e.SetType(&types.Primitive{Kind: types.Bool})
	}
	return e
}

func unboxIfBoxed(ctx *Context, parent ast.Node, expr ast.Expression) ast.Expression {
	if !types.IsBoxedPrimitive(expr.GetType()) {
		return expr
	}
	unboxed := InsertUnboxing(ctx, expr)
	ast.ReplaceChild(parent, expr, unboxed)
	return unboxed
}

func visitEquality(ctx *Context, e *ast.BinaryExpression) {
	leftKind, leftOK := primOrBoxedKind(e.Left.GetType())
	rightKind, rightOK := primOrBoxedKind(e.Right.GetType())
	if leftOK && rightOK {
		e.Left = unboxIfBoxed(ctx, e, e.Left)
		e.Right = unboxIfBoxed(ctx, e, e.Right)
		common := commonWideningKind(leftKind, rightKind)
		if leftKind != common {
			e.Left = replaceWith(e, e.Left, convertPrimitive(ctx, e.Left, leftKind, common))
		}
		if rightKind != common {
			e.Right = replaceWith(e, e.Right, convertPrimitive(ctx, e.Right, rightKind, common))
		}
	} else if leftOK != rightOK {
		// one primitive/boxed side, one reference side: box the numeric side
		// (to its own wrapper) when it is a bare primitive.
		if leftOK {
			if types.IsPrimitive(e.Left.GetType()) {
				e.Left = replaceWith(e, e.Left, InsertBoxing(ctx, e.Left, leftKind))
			}
		} else if rightOK {
			if types.IsPrimitive(e.Right.GetType()) {
				e.Right = replaceWith(e, e.Right, InsertBoxing(ctx, e.Right, rightKind))
			}
		}
	}
	e.SetType(&types.Primitive{Kind: types.Bool})
}

func visitLogical(ctx *Context, e *ast.BinaryExpression) {
	if ctx.Checker.IsIdenticalTo(e.Left.GetType(), e.Right.GetType()) {
		e.SetType(e.Left.GetType())
		return
	}
	// Bias toward the non-literal operand (spec.md §4.5/§9): literals are
	// polymorphic, so prefer the other side's boxed type as the result.
	if _, ok := e.Left.(*ast.NumberLiteral); ok {
		e.SetType(Normalize(ctx.Checker, ctx.Checker.MaybeBoxType(e.Right.GetType())))
		return
	}
	if _, ok := e.Right.(*ast.NumberLiteral); ok {
		e.SetType(Normalize(ctx.Checker, ctx.Checker.MaybeBoxType(e.Left.GetType())))
		return
	}
	union := ctx.Checker.CreateUnionType(ctx.Checker.MaybeBoxType(e.Left.GetType()), ctx.Checker.MaybeBoxType(e.Right.GetType()))
	e.SetType(Normalize(ctx.Checker, union))
}

func replaceWith(parent ast.Node, old, repl ast.Expression) ast.Expression {
	if repl != old {
		ast.ReplaceChild(parent, old, repl)
	}
	return repl
}

func visitUnary(ctx *Context, e *ast.UnaryExpression) ast.Expression {
	e.Operand = adjustChild(ctx, e, e.Operand)
	if e.Operator == ast.OpBitNot {
		e.Operand = adjustOnly(ctx, e, e.Operand, e.GetType())
	}
	e.Operand = unboxIfBoxed(ctx, e, e.Operand)
	if kind, ok := primKind(e.Operand.GetType()); ok {
		e.SetType(&types.Primitive{Kind: kind})
	}
	return e
}

func visitCall(ctx *Context, call *ast.CallExpression) ast.Expression {
	call.Callee = adjustChild(ctx, call, call.Callee)
	for i, a := range call.Args {
		call.Args[i] = adjustChild(ctx, call, a)
	}

	if call.IsNativeCall {
		for i, a := range call.Args {
			if i < len(call.Spreads) && call.Spreads[i] {
				continue
			}
			if kind, ok := primKind(a.GetType()); ok {
				call.Args[i] = replaceWith(call, a, InsertBoxing(ctx, a, kind))
			}
		}
		return call
	}

	sig := call.Signature
	if sig == nil {
		return call
	}
	for i, a := range call.Args {
		if i >= len(sig.Params) {
			continue
		}
		call.Args[i] = replaceWith(call, a, AdjustType(ctx, a, sig.Params[i]))
	}

	retType := sig.Return
	if retType != nil {
		call.SetType(retType)
	}
	if call.ThisReturn {
		if pa, ok := call.Callee.(*ast.PropertyAccessExpression); ok {
			call.SetType(pa.Object.GetType())
		}
	}
	return call
}

func visitNew(ctx *Context, ne *ast.NewExpression) ast.Expression {
	for i, a := range ne.Args {
		ne.Args[i] = adjustChild(ctx, ne, a)
	}
	if sig := ne.Signature; sig != nil {
		for i, a := range ne.Args {
			if i >= len(sig.Params) {
				continue
			}
			ne.Args[i] = replaceWith(ne, a, AdjustType(ctx, a, sig.Params[i]))
		}
	}
	ne.SetType(Normalize(ctx.Checker, ne.GetType()))
	return ne
}

func visitPropertyAccess(ctx *Context, pa *ast.PropertyAccessExpression) ast.Expression {
	pa.Object = adjustChild(ctx, pa, pa.Object)

	if pa.Name == "length" {
		if _, ok := pa.Object.GetType().(*types.Array); ok {
			pa.SetType(&types.Primitive{Kind: types.Int})
			return pa
		}
	}

	if pa.Property != nil {
		// Normalise the property's declaring node so its type is current
		// (spec.md §4.6, Member expression) before reading it back.
		HandleDeclaration(ctx, pa.Property, false)
		resolved := pa.Property.GetType()
		if pa.Property.Getter != nil || pa.Property.Setter != nil {
			if pa.Property.Getter != nil {
				HandleDeclaration(ctx, pa.Property.Getter, false)
			}
			if pa.Property.Setter != nil {
				HandleDeclaration(ctx, pa.Property.Setter, false)
			}
			resolved = resolveAccessorType(pa)
		}
		pa.SetType(resolved)
		if pa.Property.Variable != nil && types.IsRecursivelyUnboxed(resolved) {
			pa.Property.Variable.Type = resolved
		}
	}

	if kind, ok := primKind(pa.Object.GetType()); ok && !pa.IsStatic {
		pa.Object = replaceWith(pa, pa.Object, InsertBoxing(ctx, pa.Object, kind))
	}
	if types.IsRecursivelyUnboxed(pa.GetType()) {
		pa.SetType(Normalize(ctx.Checker, pa.GetType()))
	}
	return pa
}

// resolveAccessorType picks the getter's return type or the setter's sole
// parameter type depending on whether pa currently sits on the LHS of an
// assignment (spec.md §4.6, Member expression: "pick getter return type or
// setter parameter type based on whether the member appears on the LHS of
// an assignment"). Falls back to whichever accessor exists when only one
// of the pair is present.
func resolveAccessorType(pa *ast.PropertyAccessExpression) types.Type {
	prop := pa.Property
	if pa.IsAssignmentTarget && prop.Setter != nil && len(prop.Setter.Params) > 0 {
		return prop.Setter.Params[0].Type
	}
	if prop.Getter != nil {
		return prop.Getter.ReturnType
	}
	if prop.Setter != nil && len(prop.Setter.Params) > 0 {
		return prop.Setter.Params[0].Type
	}
	return prop.GetType()
}

func visitElementAccess(ctx *Context, ea *ast.ElementAccessExpression) ast.Expression {
	ea.Object = adjustChild(ctx, ea, ea.Object)
	ea.Index = adjustChild(ctx, ea, ea.Index)
	ea.Index = unboxIfBoxed(ctx, ea, ea.Index)

	switch ot := ea.Object.GetType().(type) {
	case *types.Tuple:
		if idx, ok := constantIndex(ea.Index); ok && idx >= 0 && idx < len(ot.Elems) {
			ea.SetType(ot.Elems[idx])
		}
	case *types.Array:
		ea.SetType(ot.Elem)
	case *types.ResizableArray:
		ea.SetType(ot.Elem)
	}
	return ea
}

// constantIndex resolves an element-access index to a compile-time integer,
// looking through any number of nested `as` casts (spec.md §4.6, "resolved via a constant-
// expression probe that can look through `as` casts").
func constantIndex(expr ast.Expression) (int, bool) {
	if as, ok := expr.(*ast.TSAsExpression); ok {
		return constantIndex(as.Expr)
	}
	if n, ok := expr.(*ast.NumberLiteral); ok && !n.IsFloat {
		return int(n.IntValue), true
	}
	return 0, false
}

func visitArrayLiteral(ctx *Context, e *ast.ArrayExpression) ast.Expression {
	e.SetType(Normalize(ctx.Checker, e.GetType()))
	switch t := e.GetType().(type) {
	case *types.Tuple:
		for i, el := range e.Elements {
			if i >= len(t.Elems) {
				continue
			}
			e.Elements[i] = coerceChild(ctx, e, el, t.Elems[i])
		}
	case *types.Array:
		for i, el := range e.Elements {
			e.Elements[i] = coerceChild(ctx, e, el, t.Elem)
		}
	case *types.ResizableArray:
		for i, el := range e.Elements {
			e.Elements[i] = coerceChild(ctx, e, el, t.Elem)
		}
	}
	return e
}

func visitArrayCreation(ctx *Context, e *ast.ArrayCreationExpression) ast.Expression {
	e.ElementType = Normalize(ctx.Checker, e.ElementType)
	e.SetType(Normalize(ctx.Checker, e.GetType()))
	intType := &types.Primitive{Kind: types.Int}
	for i, d := range e.Dimensions {
		e.Dimensions[i] = coerceChild(ctx, e, d, intType)
	}
	return e
}

func visitAs(ctx *Context, e *ast.TSAsExpression) ast.Expression {
	e.Expr = adjustChild(ctx, e, e.Expr)
	target := e.TargetType
	srcActual := e.Expr.GetType()

	srcPrim, srcIsPrim := primKind(srcActual)
	srcBoxed, srcIsBoxed := boxedKindOf(srcActual)
	tgtPrim, tgtIsPrim := primKind(target)
	tgtBoxed, tgtIsBoxed := boxedKindOf(target)

	result := e.Expr
	switch {
	case srcIsPrim && tgtIsPrim:
		if srcPrim != tgtPrim {
			result = convertPrimitive(ctx, result, srcPrim, tgtPrim)
		}
	case srcIsPrim && tgtIsBoxed:
		if srcPrim != tgtBoxed {
			result = convertPrimitive(ctx, result, srcPrim, tgtBoxed)
		}
		result = InsertBoxing(ctx, result, tgtBoxed)
	case srcIsBoxed && tgtIsPrim:
		result = InsertUnboxing(ctx, result)
		if srcBoxed != tgtPrim {
			result = convertPrimitive(ctx, result, srcBoxed, tgtPrim)
		}
	case srcIsBoxed && tgtIsBoxed:
		if srcBoxed != tgtBoxed {
			result = InsertUnboxing(ctx, result)
			result = convertPrimitive(ctx, result, srcBoxed, tgtBoxed)
			result = InsertBoxing(ctx, result, tgtBoxed)
		}
	}
	if result != e.Expr {
		ast.ReplaceChild(e, e.Expr, result)
		e.Expr = result
	}
	e.SetType(target)
	return e
}

func visitNonNull(ctx *Context, e *ast.NonNullExpression) ast.Expression {
	e.Expr = adjustChild(ctx, e, e.Expr)
	if types.IsPrimitive(e.Expr.GetType()) {
		result := e.Expr
		result.SetParent(e.Parent())
		return result
	}
	e.SetType(ctx.Checker.GetNonNullishType(e.Expr.GetType()))
	return e
}

func primKind(t types.Type) (types.PrimitiveKind, bool) {
	p, ok := t.(*types.Primitive)
	if !ok {
		return 0, false
	}
	return p.Kind, true
}

// primOrBoxedKind returns a type's primitive kind whether it is a bare
// Primitive or a boxed-primitive Object (spec.md §4.6, equality sub-case).
func primOrBoxedKind(t types.Type) (types.PrimitiveKind, bool) {
	if k, ok := primKind(t); ok {
		return k, true
	}
	return boxedKindOf(t)
}

// commonWideningKind picks the wider of two primitive kinds along the
// standard numeric promotion chain; kinds outside the chain (Bool, Char)
// are treated as already-common when equal.
func commonWideningKind(a, b types.PrimitiveKind) types.PrimitiveKind {
	if a == b {
		return a
	}
	ia, ib := chainIndex(a), chainIndex(b)
	if ia < 0 || ib < 0 {
		return a
	}
	if ib > ia {
		return b
	}
	return a
}

func chainIndex(k types.PrimitiveKind) int {
	for i, c := range types.WideningChain {
		if c == k {
			return i
		}
	}
	return -1
}
