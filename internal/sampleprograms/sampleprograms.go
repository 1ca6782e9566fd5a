// Package sampleprograms hand-builds the seven end-to-end AST fixtures
// spec.md §8 describes (E1-E7), since this repository has no parser of its
// own (spec.md §1 lists the parser as an out-of-scope external
// collaborator). Each builder returns a *ast.Program already in its
// "before" shape, ready to be handed to unbox.Run.
package sampleprograms

import (
	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/checker"
	"github.com/corvidlang/unboxlower/internal/config"
	"github.com/corvidlang/unboxlower/internal/types"
)

// NewChecker builds the checker.Standard every sample program is written
// against, seeded from the repository's default wrapper manifest.
func NewChecker() *checker.Standard {
	m, err := config.ParseManifest([]byte(config.DefaultManifestYAML))
	if err != nil {
		panic(err)
	}
	wrappers, err := config.BuildWrappers(m)
	if err != nil {
		panic(err)
	}
	return checker.NewStandard(wrappers)
}

func prim(k types.PrimitiveKind) *types.Primitive { return &types.Primitive{Kind: k} }

func ident(name string, v *ast.Variable, t types.Type) *ast.Identifier {
	id := &ast.Identifier{Value: name, Ref: v}
	id.SetType(t)
	return id
}

func numLit(v int64, k types.PrimitiveKind, t types.Type) *ast.NumberLiteral {
	n := &ast.NumberLiteral{IntValue: v, Kind: k}
	n.SetType(t)
	return n
}

func varDecl(name string, declaredType types.Type, varType types.Type, init ast.Expression) (*ast.VarDeclStatement, *ast.Variable) {
	v := &ast.Variable{Name: name, Type: varType}
	d := &ast.VariableDeclarator{Name: name, Variable: v, Init: init}
	d.SetType(declaredType)
	v.Decl = d
	return &ast.VarDeclStatement{Declarators: []*ast.VariableDeclarator{d}}, v
}

// E1 is "Box-unbox fusion": let x: int = new Integer(3).unboxed();
func E1(c checker.Checker) *ast.Program {
	intWrapper := c.Wrapper(types.Int)
	literal := numLit(3, types.Int, prim(types.Int))
	boxed := &ast.NewExpression{ClassName: intWrapper.Name, Args: []ast.Expression{literal}, Signature: intWrapper.Constructors[0]}
	boxed.SetType(intWrapper)
	unboxed := &ast.CallExpression{
		Callee:    &ast.PropertyAccessExpression{Object: boxed, Name: "unboxed"},
		Signature: intWrapper.InstanceMethods["unboxed"],
	}
	unboxed.SetType(prim(types.Int))

	stmt, _ := varDecl("x", prim(types.Int), prim(types.Int), unboxed)
	return &ast.Program{Name: "E1_BoxUnboxFusion", Statements: []ast.Statement{stmt}}
}

// E2 is "Arithmetic on mixed boxed/primitive":
// let a: Integer = 1; let b: int = 2; let c = a + b;
func E2(c checker.Checker) *ast.Program {
	intWrapper := c.Wrapper(types.Int)
	aStmt, aVar := varDecl("a", intWrapper, intWrapper, numLit(1, types.Int, prim(types.Int)))
	bStmt, bVar := varDecl("b", prim(types.Int), prim(types.Int), numLit(2, types.Int, prim(types.Int)))

	sum := &ast.BinaryExpression{
		Left:     ident("a", aVar, intWrapper),
		Operator: ast.OpAdd,
		Right:    ident("b", bVar, prim(types.Int)),
	}
	sum.SetType(intWrapper)
	cStmt, _ := varDecl("c", intWrapper, intWrapper, sum)

	return &ast.Program{Name: "E2_MixedArithmetic", Statements: []ast.Statement{aStmt, bStmt, cStmt}}
}

// E3 is "Generic-instance retention":
// let xs: Array<Integer> = [1, 2, 3]; let y: int = xs[0];
// contrasted with a fixed array `int[]`.
func E3(c checker.Checker) *ast.Program {
	intWrapper := c.Wrapper(types.Int)
	resizable := &types.ResizableArray{Elem: intWrapper}

	elems := []ast.Expression{
		numLit(1, types.Int, intWrapper),
		numLit(2, types.Int, intWrapper),
		numLit(3, types.Int, intWrapper),
	}
	lit := &ast.ArrayExpression{Elements: elems}
	lit.SetType(resizable)
	xsStmt, xsVar := varDecl("xs", resizable, resizable, lit)

	access := &ast.ElementAccessExpression{Object: ident("xs", xsVar, resizable), Index: numLit(0, types.Int, prim(types.Int))}
	access.SetType(intWrapper)
	yStmt, _ := varDecl("y", prim(types.Int), prim(types.Int), access)

	fixed := &types.Array{Elem: intWrapper}
	fixedLit := &ast.ArrayExpression{Elements: []ast.Expression{
		numLit(1, types.Int, intWrapper), numLit(2, types.Int, intWrapper), numLit(3, types.Int, intWrapper),
	}}
	fixedLit.SetType(fixed)
	zsStmt, _ := varDecl("zs", fixed, fixed, fixedLit)

	return &ast.Program{Name: "E3_GenericInstanceRetention", Statements: []ast.Statement{xsStmt, yStmt, zsStmt}}
}

// E4 is "Switch on a boxed char": switch (b: Character) { case 'x': ... }
func E4(c checker.Checker) *ast.Program {
	charWrapper := c.Wrapper(types.Char)
	bStmt, bVar := varDecl("b", charWrapper, charWrapper, nil)

	discriminant := ident("b", bVar, charWrapper)
	caseTest := &ast.CharLiteral{Value: 'x'}
	caseTest.SetType(charWrapper)
	sw := &ast.SwitchStatement{
		Discriminant: discriminant,
		Cases:        []*ast.SwitchCase{{Test: caseTest, Body: nil}},
	}

	return &ast.Program{Name: "E4_SwitchOnBoxedChar", Statements: []ast.Statement{bStmt, sw}}
}

// E5 is "Overloaded widening": let d: double = (b: byte) | (s: short);
func E5(c checker.Checker) *ast.Program {
	bStmt, bVar := varDecl("b", prim(types.Byte), prim(types.Byte), nil)
	sStmt, sVar := varDecl("s", prim(types.Short), prim(types.Short), nil)

	or := &ast.BinaryExpression{
		Left:     ident("b", bVar, prim(types.Byte)),
		Operator: ast.OpBitOr,
		Right:    ident("s", sVar, prim(types.Short)),
	}
	or.SetType(prim(types.Int))

	dStmt, _ := varDecl("d", prim(types.Double), prim(types.Double), or)
	return &ast.Program{Name: "E5_OverloadedWidening", Statements: []ast.Statement{bStmt, sStmt, dStmt}}
}

// E6 is "Nullish coalescing with boxed numeric":
// let v: int = (maybe: Integer | null) ?? 0;
func E6(c checker.Checker) *ast.Program {
	intWrapper := c.Wrapper(types.Int)
	nullable := &types.Union{Members: []types.Type{intWrapper, types.NullSingleton}}
	maybeStmt, maybeVar := varDecl("maybe", nullable, nullable, nil)

	coalesce := &ast.BinaryExpression{
		Left:     ident("maybe", maybeVar, nullable),
		Operator: ast.OpNullish,
		Right:    numLit(0, types.Int, intWrapper),
	}
	coalesce.SetType(intWrapper)

	vStmt, _ := varDecl("v", prim(types.Int), prim(types.Int), coalesce)
	return &ast.Program{Name: "E6_NullishCoalescing", Statements: []ast.Statement{maybeStmt, vStmt}}
}

// registry maps each sample's short name to its builder, in spec order.
var registry = map[string]func(checker.Checker) *ast.Program{
	"E1": E1, "E2": E2, "E3": E3, "E4": E4, "E5": E5, "E6": E6, "E7": E7,
}

var order = []string{"E1", "E2", "E3", "E4", "E5", "E6", "E7"}

// Names returns the sample names in a stable, spec-matching order.
func Names() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Build looks up a sample by name and constructs it against c. It reports
// ok=false for an unknown name.
func Build(c checker.Checker, name string) (prog *ast.Program, ok bool) {
	fn, found := registry[name]
	if !found {
		return nil, false
	}
	return fn(c), true
}

// E7 is "For-of over a string": for (const c of "abc") { ... }
func E7(c checker.Checker) *ast.Program {
	iterable := &ast.StringLiteral{Value: "abc"}
	iterable.SetType(types.StringSingleton)

	cVar := &ast.Variable{Name: "c", Type: c.Wrapper(types.Char)}
	forOf := &ast.ForOfStatement{
		VarName:  "c",
		VarDecl:  cVar,
		Iterable: iterable,
		Body:     &ast.BlockStatement{},
	}

	return &ast.Program{Name: "E7_ForOfOverString", Statements: []ast.Statement{forOf}}
}
