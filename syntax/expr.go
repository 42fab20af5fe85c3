// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// An Expr is an expression or a binding pattern.
type Expr interface {
	Node
	expr()
}

func (*ArrayLit) expr()          {}
func (*ArrayPattern) expr()      {}
func (*ArrowFunc) expr()         {}
func (*AsExpr) expr()            {}
func (*AssignExpr) expr()        {}
func (*AssignPattern) expr()     {}
func (*AwaitExpr) expr()         {}
func (*BinaryExpr) expr()        {}
func (*CallExpr) expr()          {}
func (*ChainExpr) expr()         {}
func (*ClassExpr) expr()         {}
func (*CondExpr) expr()          {}
func (*ExternalModuleRef) expr() {}
func (*FuncExpr) expr()          {}
func (*Ident) expr()             {}
func (*ImportExpr) expr()        {}
func (*Instantiation) expr()     {}
func (*Literal) expr()           {}
func (*MemberExpr) expr()        {}
func (*MetaProperty) expr()      {}
func (*NewExpr) expr()           {}
func (*NonNullExpr) expr()       {}
func (*ObjectLit) expr()         {}
func (*ObjectPattern) expr()     {}
func (*ParamProp) expr()         {}
func (*PrivateName) expr()       {}
func (*QualifiedName) expr()     {}
func (*RestElement) expr()       {}
func (*SequenceExpr) expr()      {}
func (*SpreadElement) expr()     {}
func (*SuperExpr) expr()         {}
func (*TaggedTemplate) expr()    {}
func (*TemplateLit) expr()       {}
func (*ThisExpr) expr()          {}
func (*TypeAssertion) expr()     {}
func (*UnaryExpr) expr()         {}
func (*UpdateExpr) expr()        {}
func (*YieldExpr) expr()         {}

// An Ident represents an identifier.
// In binding position it may carry a TypeScript type annotation.
type Ident struct {
	Range
	Name     string
	Type     TypeNode // optional annotation
	Optional bool     // x?: T
}

// A PrivateName is a class private name such as #x.
// It never refers to a variable.
type PrivateName struct {
	Range
	Name string
}

// A LitKind identifies the kind of a Literal.
type LitKind uint8

const (
	STRING LitKind = iota
	NUMBER
	BIGINT
	BOOL
	NULL
	REGEXP
)

// A Literal represents a literal string, number, boolean, null or regexp.
type Literal struct {
	Range
	Kind  LitKind
	Raw   string // uninterpreted text
	Value string // decoded string value, for STRING
}

// A TemplateLit is a template literal `a${x}b`.
type TemplateLit struct {
	Range
	Quasis []string
	Exprs  []Expr
}

// A TaggedTemplate is Tag`...`.
type TaggedTemplate struct {
	Range
	Tag      Expr
	TypeArgs []TypeNode
	Quasi    *TemplateLit
}

type ThisExpr struct{ Range }

type SuperExpr struct{ Range }

// An ArrayLit is [Elems]. A nil element denotes a hole.
type ArrayLit struct {
	Range
	Elems []Expr
}

// An ObjectLit is { Props }.
// Each element is a *Property or a *SpreadElement.
type ObjectLit struct {
	Range
	Props []Node
}

// A PropKind is the kind of an object literal property.
type PropKind uint8

const (
	PropInit PropKind = iota
	PropGet
	PropSet
)

// A Property is Key: Value inside an object literal or object pattern.
//
// A non-computed Key is never a reference. In a shorthand property {x}
// Value is the same *Ident as Key, or an *AssignPattern whose Left is
// Key for {x = 1} in a pattern.
type Property struct {
	Range
	Key       Expr
	Value     Expr
	Kind      PropKind
	Computed  bool
	Shorthand bool
	Method    bool
}

// A SpreadElement is ...X in an array, object or argument list.
type SpreadElement struct {
	Range
	X Expr
}

// A FuncExpr is a function expression.
type FuncExpr struct {
	Function
}

// An ArrowFunc is an arrow function.
type ArrowFunc struct {
	Function
}

// A ClassExpr is a class expression.
type ClassExpr struct {
	Class
}

// A UnaryExpr is Op X, for the operators ! ~ + - typeof void delete.
type UnaryExpr struct {
	Range
	Op string
	X  Expr
}

// An UpdateExpr is ++X, --X, X++ or X--.
type UpdateExpr struct {
	Range
	Op     string
	Prefix bool
	X      Expr
}

// A BinaryExpr is X Op Y, including the logical operators.
type BinaryExpr struct {
	Range
	Op string
	X  Expr
	Y  Expr
}

// An AssignExpr is Left Op Right where Op is = or a compound operator.
// For Op "=" Left may be a pattern.
type AssignExpr struct {
	Range
	Op    string
	Left  Expr
	Right Expr
}

// A CondExpr is Test ? Cons : Alt.
type CondExpr struct {
	Range
	Test Expr
	Cons Expr
	Alt  Expr
}

// A CallExpr is Callee<TypeArgs>(Args).
type CallExpr struct {
	Range
	Callee   Expr
	TypeArgs []TypeNode
	Args     []Expr
	Optional bool
}

// A NewExpr is new Callee<TypeArgs>(Args).
type NewExpr struct {
	Range
	Callee   Expr
	TypeArgs []TypeNode
	Args     []Expr
}

// A MemberExpr is Object.Property or Object[Property].
// A non-computed Property is an *Ident or *PrivateName and is not a reference.
type MemberExpr struct {
	Range
	Object   Expr
	Property Expr
	Computed bool
	Optional bool
}

// A ChainExpr wraps an optional chain a?.b.c.
type ChainExpr struct {
	Range
	X Expr
}

// A SequenceExpr is a comma-separated list of expressions.
type SequenceExpr struct {
	Range
	List []Expr
}

type YieldExpr struct {
	Range
	X        Expr // may be nil
	Delegate bool
}

type AwaitExpr struct {
	Range
	X Expr
}

// A MetaProperty is new.target or import.meta.
type MetaProperty struct {
	Range
	Meta     *Ident
	Property *Ident
}

// An ImportExpr is a dynamic import(Source).
type ImportExpr struct {
	Range
	Source Expr
}

// An ObjectPattern is a destructuring pattern { Props }.
// Each element is a *Property whose Value is a pattern, or a *RestElement.
type ObjectPattern struct {
	Range
	Props []Node
	Type  TypeNode
}

// An ArrayPattern is a destructuring pattern [Elems]. Nil elements are holes.
type ArrayPattern struct {
	Range
	Elems []Expr
	Type  TypeNode
}

// A RestElement is ...Arg in a pattern or parameter list.
type RestElement struct {
	Range
	Arg  Expr
	Type TypeNode
}

// An AssignPattern is Left = Right inside a pattern or parameter list.
type AssignPattern struct {
	Range
	Left  Expr
	Right Expr
}

// An AsExpr is X as Type, or X satisfies Type.
type AsExpr struct {
	Range
	X         Expr
	Type      TypeNode
	Satisfies bool
}

// A TypeAssertion is the angle-bracket cast <Type>X.
type TypeAssertion struct {
	Range
	Type TypeNode
	X    Expr
}

// A NonNullExpr is X!.
type NonNullExpr struct {
	Range
	X Expr
}

// An Instantiation is an instantiation expression X<TypeArgs>.
type Instantiation struct {
	Range
	X        Expr
	TypeArgs []TypeNode
}

// A ParamProp is a TypeScript constructor parameter property,
// such as 'private readonly x: number'.
type ParamProp struct {
	Range
	Accessibility string
	Readonly      bool
	Param         Expr // *Ident or *AssignPattern
}

// A QualifiedName is Left.Right in a type or entity name.
// Only the leftmost identifier is a reference.
type QualifiedName struct {
	Range
	Left  Expr // *Ident or *QualifiedName
	Right *Ident
}

// An ExternalModuleRef is require("Module") in import x = require(...).
type ExternalModuleRef struct {
	Range
	Module *Literal
}

// A Decorator is @X applied to a class, member or parameter.
type Decorator struct {
	Range
	X Expr
}
