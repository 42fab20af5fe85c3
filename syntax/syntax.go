// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax defines the abstract syntax tree of ECMAScript programs,
// including the TypeScript extension, as consumed by the resolver.
//
// The tree follows the shape of ESTree. Nodes are identified by pointer:
// the resolver keys its results on node identity, so a tree must not be
// mutated or copied between analysis and queries.
package syntax

import "fmt"

// A Position describes the location of a rune of input.
type Position struct {
	Line int32 // 1-based line number; 0 if line unknown
	Col  int32 // 1-based column (rune) number; 0 if column unknown
}

// MakePosition returns a position with the specified components.
func MakePosition(line, col int32) Position { return Position{line, col} }

// IsValid reports whether the position is valid.
func (p Position) IsValid() bool { return p.Line >= 1 }

// Before reports whether p precedes q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	if p.Col > 0 {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%d", p.Line)
}

// A Node is a node in an ECMAScript syntax tree.
type Node interface {
	// Span returns the start and end position of the node.
	Span() (start, end Position)
}

// Start returns the start position of the node.
func Start(n Node) Position {
	start, _ := n.Span()
	return start
}

// End returns the end position of the node.
func End(n Node) Position {
	_, end := n.Span()
	return end
}

// A Range records the extent of a node in the source.
// It is embedded in every node type.
type Range struct {
	From, To Position
}

func (r Range) Span() (start, end Position) { return r.From, r.To }

// A Program is the root of a syntax tree.
type Program struct {
	Range
	Path string
	Body []Stmt
}

// A Stmt is a statement or a declaration.
type Stmt interface {
	Node
	stmt()
}

func (*BlockStmt) stmt()         {}
func (*BranchStmt) stmt()        {}
func (*ClassDecl) stmt()         {}
func (*DebuggerStmt) stmt()      {}
func (*DoWhileStmt) stmt()       {}
func (*EmptyStmt) stmt()         {}
func (*EnumDecl) stmt()          {}
func (*ExportAllDecl) stmt()     {}
func (*ExportAssignment) stmt()  {}
func (*ExportDefaultDecl) stmt() {}
func (*ExportNamedDecl) stmt()   {}
func (*ExprStmt) stmt()          {}
func (*ForInStmt) stmt()         {}
func (*ForStmt) stmt()           {}
func (*FuncDecl) stmt()          {}
func (*IfStmt) stmt()            {}
func (*ImportDecl) stmt()        {}
func (*ImportEqualsDecl) stmt()  {}
func (*InterfaceDecl) stmt()     {}
func (*LabeledStmt) stmt()       {}
func (*ModuleDecl) stmt()        {}
func (*ReturnStmt) stmt()        {}
func (*SwitchStmt) stmt()        {}
func (*ThrowStmt) stmt()         {}
func (*TryStmt) stmt()           {}
func (*TypeAliasDecl) stmt()     {}
func (*VarDecl) stmt()           {}
func (*WhileStmt) stmt()         {}
func (*WithStmt) stmt()          {}

// An ExprStmt is an expression evaluated for side effects.
//
// Directive holds the raw text, without quotes, of a directive prologue
// entry such as "use strict". It is empty for any other statement,
// including a parenthesized string literal.
type ExprStmt struct {
	Range
	X         Expr
	Directive string
}

// A BlockStmt is a braced statement list.
type BlockStmt struct {
	Range
	List []Stmt
}

type EmptyStmt struct{ Range }

type DebuggerStmt struct{ Range }

// A VarKind is the keyword of a variable declaration.
type VarKind uint8

const (
	Var VarKind = iota
	Let
	Const
)

var varKindNames = [...]string{Var: "var", Let: "let", Const: "const"}

func (k VarKind) String() string { return varKindNames[k] }

// A VarDecl is a variable declaration: var, let or const.
// It appears as a statement and as the head of for loops.
type VarDecl struct {
	Range
	Kind    VarKind
	Declare bool // TypeScript 'declare'
	List    []*VarDeclarator
}

// A VarDeclarator is one binding of a VarDecl: ID = Init.
// ID is a binding pattern.
type VarDeclarator struct {
	Range
	ID   Expr
	Init Expr // may be nil
}

// A Function represents the common parts of function declarations,
// function expressions, arrow functions and methods.
type Function struct {
	Range
	Name       *Ident // nil for anonymous functions, methods and arrows
	TypeParams *TypeParamList
	Params     []Expr // binding patterns, possibly *ParamProp
	ReturnType TypeNode
	Body       *BlockStmt // nil for an arrow with an expression body or a bodiless signature
	ExprBody   Expr       // arrow function expression body
	Async      bool
	Generator  bool
}

// A FuncDecl is a function declaration.
// A TypeScript overload signature or 'declare function' has a nil Body.
type FuncDecl struct {
	Function
	Declare bool
}

// A Class represents the common parts of class declarations and expressions.
type Class struct {
	Range
	Name          *Ident // nil for anonymous class expressions
	TypeParams    *TypeParamList
	SuperClass    Expr
	SuperTypeArgs []TypeNode
	Implements    []*TypeRef
	Body          []ClassMember
	Decorators    []*Decorator
	Abstract      bool
	Declare       bool
}

// A ClassDecl is a class declaration.
type ClassDecl struct {
	Class
}

// An IfStmt is a conditional: if (Test) Cons else Alt.
type IfStmt struct {
	Range
	Test Expr
	Cons Stmt
	Alt  Stmt // may be nil
}

// A ForStmt is a three-clause loop: for (Init; Test; Update) Body.
type ForStmt struct {
	Range
	Init   Node // *VarDecl, Expr, or nil
	Test   Expr // may be nil
	Update Expr // may be nil
	Body   Stmt
}

// A ForInStmt is a for-in or for-of loop: for (Left in/of Right) Body.
type ForInStmt struct {
	Range
	Of    bool
	Await bool
	Left  Node // *VarDecl with a single declarator, or an assignment target
	Right Expr
	Body  Stmt
}

type WhileStmt struct {
	Range
	Test Expr
	Body Stmt
}

type DoWhileStmt struct {
	Range
	Body Stmt
	Test Expr
}

// A Token is the keyword of a BranchStmt.
type Token uint8

const (
	BREAK Token = iota
	CONTINUE
)

func (t Token) String() string {
	if t == CONTINUE {
		return "continue"
	}
	return "break"
}

// A BranchStmt changes the flow of control: break or continue.
// The label, if any, is not a variable reference.
type BranchStmt struct {
	Range
	Token Token
	Label *Ident // may be nil
}

// A LabeledStmt is a statement with a label: Label: Body.
type LabeledStmt struct {
	Range
	Label *Ident
	Body  Stmt
}

type ReturnStmt struct {
	Range
	Result Expr // may be nil
}

type ThrowStmt struct {
	Range
	X Expr
}

// A TryStmt is try Block catch Handler finally Finalizer.
type TryStmt struct {
	Range
	Block     *BlockStmt
	Handler   *CatchClause // may be nil
	Finalizer *BlockStmt   // may be nil
}

// A CatchClause is catch (Param) Body.
type CatchClause struct {
	Range
	Param Expr // binding pattern, may be nil
	Body  *BlockStmt
}

// A SwitchStmt is switch (Discriminant) { Cases }.
type SwitchStmt struct {
	Range
	Discriminant Expr
	Cases        []*SwitchCase
}

// A SwitchCase is case Test: Body, or default: Body if Test is nil.
type SwitchCase struct {
	Range
	Test Expr
	Body []Stmt
}

// A WithStmt is with (Object) Body.
type WithStmt struct {
	Range
	Object Expr
	Body   Stmt
}

// An ImportKind distinguishes the forms of import specifier.
type ImportKind uint8

const (
	ImportNamed     ImportKind = iota // import { Imported as Local }
	ImportDefault                     // import Local from
	ImportNamespace                   // import * as Local from
)

// An ImportDecl is an import declaration.
type ImportDecl struct {
	Range
	Specifiers []*ImportSpec
	Source     *Literal
	TypeOnly   bool // import type { ... }
}

// An ImportSpec binds one local name of an ImportDecl.
type ImportSpec struct {
	Range
	Kind     ImportKind
	Imported *Ident // for ImportNamed; not a reference
	Local    *Ident
	TypeOnly bool // import { type T }
}

// An ExportNamedDecl is export Decl, or export { Specifiers } [from Source].
type ExportNamedDecl struct {
	Range
	Decl       Stmt // may be nil
	Specifiers []*ExportSpec
	Source     *Literal // may be nil
	TypeOnly   bool
}

// An ExportSpec is Local as Exported inside an export list.
// Local is a reference only if the enclosing declaration has no Source.
type ExportSpec struct {
	Range
	Local    *Ident
	Exported *Ident
	TypeOnly bool
}

// An ExportDefaultDecl is export default Decl.
// Decl is a *FuncDecl, *ClassDecl, *InterfaceDecl, or an Expr.
type ExportDefaultDecl struct {
	Range
	Decl Node
}

// An ExportAllDecl is export * [as Exported] from Source.
type ExportAllDecl struct {
	Range
	Exported *Ident // may be nil
	Source   *Literal
	TypeOnly bool
}

// An ExportAssignment is the TypeScript export = X.
type ExportAssignment struct {
	Range
	X Expr
}
