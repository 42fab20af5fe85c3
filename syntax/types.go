// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// This file defines class members and the TypeScript-only nodes:
// declarations, type expressions and type members.

// A ClassMember is an element of a class body.
type ClassMember interface {
	Node
	classMember()
}

func (*IndexSig) classMember()    {}
func (*MethodDef) classMember()   {}
func (*PropertyDef) classMember() {}
func (*StaticBlock) classMember() {}

// A MethodKind is the kind of a class method.
type MethodKind uint8

const (
	Method MethodKind = iota
	Constructor
	Getter
	Setter
)

// A MethodDef is a method, accessor or constructor of a class.
// An abstract method or overload signature has a nil Value.Body.
type MethodDef struct {
	Range
	Key        Expr
	Value      *FuncExpr
	Kind       MethodKind
	Computed   bool
	Static     bool
	Decorators []*Decorator
}

// A PropertyDef is a class field: Key: Type = Value.
type PropertyDef struct {
	Range
	Key        Expr
	Value      Expr // initializer, may be nil
	Type       TypeNode
	Computed   bool
	Static     bool
	Declare    bool
	Decorators []*Decorator
}

// A StaticBlock is static { Body } inside a class.
type StaticBlock struct {
	Range
	Body []Stmt
}

// A TypeAliasDecl is type Name<TypeParams> = Type.
type TypeAliasDecl struct {
	Range
	Name       *Ident
	TypeParams *TypeParamList
	Type       TypeNode
	Declare    bool
}

// An InterfaceDecl is interface Name<TypeParams> extends Extends { Body }.
type InterfaceDecl struct {
	Range
	Name       *Ident
	TypeParams *TypeParamList
	Extends    []*TypeRef
	Body       []TypeMember
	Declare    bool
}

// An EnumDecl is [const] enum Name { Members }.
type EnumDecl struct {
	Range
	Name    *Ident
	Members []*EnumMember
	Const   bool
	Declare bool
}

// An EnumMember is ID = Init inside an enum. ID is an *Ident or a
// string *Literal.
type EnumMember struct {
	Range
	ID   Expr
	Init Expr // may be nil
}

// A ModuleDecl is namespace Name { Body }, declare module "Name" { Body },
// or declare global { Body }.
//
// A dotted namespace A.B { } is represented as nested ModuleDecls whose
// inner declaration is the sole statement of the outer Body.
type ModuleDecl struct {
	Range
	Name    Expr // *Ident or string *Literal; nil for 'declare global'
	Body    *BlockStmt
	Global  bool
	Declare bool
}

// An ImportEqualsDecl is import ID = Ref, where Ref is an entity name
// (*Ident or *QualifiedName) or an *ExternalModuleRef.
type ImportEqualsDecl struct {
	Range
	ID       *Ident
	Ref      Expr
	TypeOnly bool
	Export   bool
}

// A TypeParamList is <Params>.
type TypeParamList struct {
	Range
	Params []*TypeParam
}

// A TypeParam is Name extends Constraint = Default.
type TypeParam struct {
	Range
	Name       *Ident
	Constraint TypeNode // may be nil
	Default    TypeNode // may be nil
	In, Out    bool
	Const      bool
}

// A TypeNode is a TypeScript type expression.
type TypeNode interface {
	Node
	typeNode()
}

func (*ArrayType) typeNode()         {}
func (*ConditionalType) typeNode()   {}
func (*FuncType) typeNode()          {}
func (*ImportType) typeNode()        {}
func (*IndexedAccessType) typeNode() {}
func (*InferType) typeNode()         {}
func (*IntersectionType) typeNode()  {}
func (*KeywordType) typeNode()       {}
func (*LiteralType) typeNode()       {}
func (*MappedType) typeNode()        {}
func (*NamedTupleMember) typeNode()  {}
func (*OptionalType) typeNode()      {}
func (*ParenType) typeNode()         {}
func (*RestType) typeNode()          {}
func (*TemplateLitType) typeNode()   {}
func (*ThisType) typeNode()          {}
func (*TupleType) typeNode()         {}
func (*TypeLit) typeNode()           {}
func (*TypeOperator) typeNode()      {}
func (*TypePredicate) typeNode()     {}
func (*TypeQuery) typeNode()         {}
func (*TypeRef) typeNode()           {}
func (*UnionType) typeNode()         {}

// A KeywordType is a predefined type such as number, string or any.
type KeywordType struct {
	Range
	Name string
}

type ThisType struct{ Range }

// A TypeRef is a reference to a named type: Name<TypeArgs>.
// In a heritage clause (implements, interface extends) Name may be any
// entity name expression.
type TypeRef struct {
	Range
	Name     Expr // *Ident or *QualifiedName
	TypeArgs []TypeNode
}

// A TypeQuery is typeof X<TypeArgs> in a type position.
// X refers to a value even though it appears inside a type.
type TypeQuery struct {
	Range
	X        Expr // *Ident, *QualifiedName, or *ThisExpr
	TypeArgs []TypeNode
}

// An ImportType is import("Arg").Qualifier<TypeArgs>.
type ImportType struct {
	Range
	Arg       *Literal
	Qualifier Expr // may be nil; never a reference
	TypeArgs  []TypeNode
}

// A TypeLit is an object type literal { Members }.
type TypeLit struct {
	Range
	Members []TypeMember
}

type ArrayType struct {
	Range
	Elem TypeNode
}

type TupleType struct {
	Range
	Elems []TypeNode
}

// A NamedTupleMember is Label: Elem inside a tuple type.
// Label is not a reference.
type NamedTupleMember struct {
	Range
	Label    *Ident
	Elem     TypeNode
	Optional bool
}

type OptionalType struct {
	Range
	Elem TypeNode
}

type RestType struct {
	Range
	Elem TypeNode
}

type ParenType struct {
	Range
	Elem TypeNode
}

type UnionType struct {
	Range
	Types []TypeNode
}

type IntersectionType struct {
	Range
	Types []TypeNode
}

// A FuncType is (Params) => Return, or new (Params) => Return.
// Parameter names are not bindings.
type FuncType struct {
	Range
	TypeParams  *TypeParamList
	Params      []Expr
	Return      TypeNode
	Constructor bool
	Abstract    bool
}

// A ConditionalType is Check extends Extends ? True : False.
type ConditionalType struct {
	Range
	Check   TypeNode
	Extends TypeNode
	True    TypeNode
	False   TypeNode
}

// An InferType is infer Param inside the Extends clause of a conditional type.
type InferType struct {
	Range
	Param *TypeParam
}

// A MappedType is { [Param in Constraint as NameType]: Type }.
type MappedType struct {
	Range
	Param    *TypeParam
	NameType TypeNode // may be nil
	Type     TypeNode // may be nil
	Readonly string   // "", "+", "-" or "readonly"
	Optional string
}

type IndexedAccessType struct {
	Range
	Object TypeNode
	Index  TypeNode
}

// A TypeOperator is Op Type for the operators keyof, unique, readonly.
type TypeOperator struct {
	Range
	Op   string
	Type TypeNode
}

// A LiteralType is a literal used as a type: "a", 1, -1, true.
type LiteralType struct {
	Range
	Lit Expr // *Literal, *UnaryExpr or *TemplateLit
}

// A TemplateLitType is a template literal type `a${T}b`.
type TemplateLitType struct {
	Range
	Quasis []string
	Types  []TypeNode
}

// A TypePredicate is [asserts] Param is Type as a function return type.
// Param is the name of a parameter (or this) and is not a reference.
type TypePredicate struct {
	Range
	Param   Node // *Ident or *ThisType
	Type    TypeNode
	Asserts bool
}

// A TypeMember is an element of an interface body or a type literal.
type TypeMember interface {
	Node
	typeMember()
}

func (*CallSig) typeMember()     {}
func (*IndexSig) typeMember()    {}
func (*MethodSig) typeMember()   {}
func (*PropertySig) typeMember() {}

// A PropertySig is Key?: Type inside a type.
type PropertySig struct {
	Range
	Key      Expr
	Type     TypeNode
	Computed bool
	Optional bool
	Readonly bool
}

// A MethodSig is Key<TypeParams>(Params): Return inside a type.
type MethodSig struct {
	Range
	Key        Expr
	TypeParams *TypeParamList
	Params     []Expr
	Return     TypeNode
	Computed   bool
	Optional   bool
	Kind       MethodKind
}

// A CallSig is <TypeParams>(Params): Return, or a construct signature
// new (Params): Return.
type CallSig struct {
	Range
	TypeParams *TypeParamList
	Params     []Expr
	Return     TypeNode
	Construct  bool
}

// An IndexSig is [Params]: Type. It may also appear in a class body.
type IndexSig struct {
	Range
	Params   []Expr
	Type     TypeNode
	Static   bool
	Readonly bool
}
