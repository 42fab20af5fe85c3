// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

// This file defines the traversal of TypeScript declarations and types.
//
// Identifiers in type positions are type references. The exceptions
// are the operand of a type query (typeof x), which is a value
// reference, and the computed keys of type members, which are
// ordinary expressions.

import "go.esscope.net/syntax"

func (r *resolver) typeAlias(decl *syntax.TypeAliasDecl) {
	r.define(r.scope, decl.Name, &Definition{Kind: TypeDef, Capability: Type, Node: decl})
	if decl.TypeParams != nil {
		r.push(TypeAliasScope, decl, false)
		r.typeParams(decl.TypeParams)
	}
	r.typ(decl.Type)
	if decl.TypeParams != nil {
		r.pop()
	}
}

func (r *resolver) interfaceDecl(decl *syntax.InterfaceDecl) {
	r.define(r.scope, decl.Name, &Definition{Kind: TypeDef, Capability: Type, Node: decl})
	r.push(TypeParametersScope, decl, false)
	if decl.TypeParams != nil {
		r.typeParams(decl.TypeParams)
	}
	for _, ext := range decl.Extends {
		r.typ(ext)
	}
	r.typeMembers(decl.Body)
	r.pop()
}

func (r *resolver) enumDecl(decl *syntax.EnumDecl) {
	r.define(r.scope, decl.Name, &Definition{Kind: TSEnumNameDef, Capability: Both, Node: decl})
	r.push(EnumScope, decl, false)
	for _, m := range decl.Members {
		// String-named members ("a-b") cannot be referred to by name.
		if id, ok := m.ID.(*syntax.Ident); ok {
			r.define(r.scope, id, &Definition{Kind: TSEnumMemberDef, Capability: Value, Node: m, Parent: decl})
		}
		if m.Init != nil {
			r.expr(m.Init)
		}
	}
	r.pop()
}

// moduleDecl resolves a namespace, an ambient module declaration, or
// a global augmentation. Only an identifier-named namespace binds a name.
func (r *resolver) moduleDecl(decl *syntax.ModuleDecl) {
	switch name := decl.Name.(type) {
	case *syntax.Ident:
		r.define(r.scope, name, &Definition{Kind: TSModuleNameDef, Capability: Both, Node: decl})
	case *syntax.Literal, nil:
		if name == nil && !decl.Global {
			r.errorf(decl, "namespace has no name")
		}
	default:
		r.errorf(decl.Name, "unexpected %T as namespace name", decl.Name)
	}
	if decl.Body == nil {
		return // declare module "m";
	}
	r.push(NamespaceScope, decl, false)
	r.stmts(decl.Body.List)
	r.pop()
}

// importEquals resolves import x = require("m") and import x = A.B.C.
func (r *resolver) importEquals(decl *syntax.ImportEqualsDecl) {
	capability := Both
	if decl.TypeOnly {
		capability = Type
	}
	r.define(r.scope, decl.ID, &Definition{Kind: ImportBindingDef, Capability: capability, Node: decl})
	switch ref := decl.Ref.(type) {
	case *syntax.ExternalModuleRef:
		// refers to another module
	case *syntax.Ident, *syntax.QualifiedName:
		r.use(leftmost(ref), Read, true, true)
	default:
		r.errorf(decl, "unexpected %T in import-equals declaration", decl.Ref)
	}
}

// leftmost returns the first identifier of an entity name A.B.C.
func leftmost(x syntax.Expr) *syntax.Ident {
	for {
		switch e := x.(type) {
		case *syntax.Ident:
			return e
		case *syntax.QualifiedName:
			x = e.Left
		case *syntax.MemberExpr:
			x = e.Object
		default:
			return nil
		}
	}
}

// conditionalScope returns the scope of the innermost conditional type
// whose extends clause contains the infer type t.
func (r *resolver) conditionalScope(t *syntax.InferType) *Scope {
	for s := r.scope; s != nil && s.Kind == TypeParametersScope; s = s.Upper {
		if _, ok := s.Block.(*syntax.ConditionalType); ok {
			return s
		}
	}
	r.errorf(t, "infer outside the extends clause of a conditional type")
	return nil
}

// typeParams binds a type parameter list in the current scope.
// Every parameter is bound before any constraint or default is
// visited, since they may refer to one another.
func (r *resolver) typeParams(list *syntax.TypeParamList) {
	for _, tp := range list.Params {
		r.define(r.scope, tp.Name, &Definition{Kind: TypeDef, Capability: Type, Node: tp, Parent: list})
	}
	for _, tp := range list.Params {
		r.typeParamBounds(tp)
	}
}

func (r *resolver) typeParamBounds(tp *syntax.TypeParam) {
	if tp.Constraint != nil {
		r.typ(tp.Constraint)
	}
	if tp.Default != nil {
		r.typ(tp.Default)
	}
}

func (r *resolver) types(list []syntax.TypeNode) {
	for _, t := range list {
		r.typ(t)
	}
}

// typeName records a reference to the entity name x in a type position.
func (r *resolver) typeName(x syntax.Expr) {
	id := leftmost(x)
	if id == nil {
		r.errorf(x, "unexpected %T as type name", x)
	}
	r.use(id, Read, false, true)
}

func (r *resolver) typ(t syntax.TypeNode) {
	switch t := t.(type) {
	case *syntax.KeywordType, *syntax.ThisType, *syntax.LiteralType:
		// no references

	case *syntax.TypeRef:
		r.typeName(t.Name)
		r.types(t.TypeArgs)

	case *syntax.TypeQuery:
		switch x := t.X.(type) {
		case *syntax.ThisExpr:
		default:
			id := leftmost(x)
			if id == nil {
				r.errorf(t, "unexpected %T in type query", x)
			}
			ref := r.use(id, Read, true, false)
			ref.FromTypeQuery = true
		}
		r.types(t.TypeArgs)

	case *syntax.ImportType:
		r.types(t.TypeArgs)

	case *syntax.TypeLit:
		r.typeMembers(t.Members)

	case *syntax.ArrayType:
		r.typ(t.Elem)

	case *syntax.TupleType:
		r.types(t.Elems)

	case *syntax.NamedTupleMember:
		r.typ(t.Elem)

	case *syntax.OptionalType:
		r.typ(t.Elem)

	case *syntax.RestType:
		r.typ(t.Elem)

	case *syntax.ParenType:
		r.typ(t.Elem)

	case *syntax.UnionType:
		r.types(t.Types)

	case *syntax.IntersectionType:
		r.types(t.Types)

	case *syntax.FuncType:
		r.signature(t, t.TypeParams, t.Params, t.Return)

	case *syntax.ConditionalType:
		// infer declarations in the extends clause are visible in the
		// true branch only.
		r.typ(t.Check)
		r.push(TypeParametersScope, t, false)
		r.typ(t.Extends)
		r.typ(t.True)
		r.pop()
		r.typ(t.False)

	case *syntax.InferType:
		tp := t.Param
		if tp == nil {
			r.errorf(t, "infer type has no parameter")
		}
		r.define(r.conditionalScope(t), tp.Name, &Definition{Kind: TypeDef, Capability: Type, Node: tp, Parent: t})
		r.typeParamBounds(tp)

	case *syntax.MappedType:
		if t.Param == nil {
			r.errorf(t, "mapped type has no parameter")
		}
		r.push(TypeParametersScope, t, false)
		r.define(r.scope, t.Param.Name, &Definition{Kind: TypeDef, Capability: Type, Node: t.Param, Parent: t})
		r.typeParamBounds(t.Param)
		if t.NameType != nil {
			r.typ(t.NameType)
		}
		if t.Type != nil {
			r.typ(t.Type)
		}
		r.pop()

	case *syntax.IndexedAccessType:
		r.typ(t.Object)
		r.typ(t.Index)

	case *syntax.TypeOperator:
		r.typ(t.Type)

	case *syntax.TemplateLitType:
		r.types(t.Types)

	case *syntax.TypePredicate:
		if t.Type != nil {
			r.typ(t.Type)
		}

	case nil:
		r.errorf(nil, "missing type")

	default:
		r.errorf(t, "unexpected type %T", t)
	}
}

// signature resolves a function type or a call, construct or method
// signature. Parameter names of a signature are not bindings, but
// their annotations and defaults are visited. Type parameters get a
// scope of their own.
func (r *resolver) signature(node syntax.Node, tps *syntax.TypeParamList, params []syntax.Expr, ret syntax.TypeNode) {
	if tps != nil {
		r.push(TypeParametersScope, node, false)
		r.typeParams(tps)
	}
	for _, p := range params {
		_, evaluated := r.pattern(p, false)
		r.visit(evaluated)
	}
	if ret != nil {
		r.typ(ret)
	}
	if tps != nil {
		r.pop()
	}
}

func (r *resolver) typeMembers(members []syntax.TypeMember) {
	for _, m := range members {
		switch m := m.(type) {
		case *syntax.PropertySig:
			if m.Computed {
				r.expr(m.Key)
			}
			if m.Type != nil {
				r.typ(m.Type)
			}
		case *syntax.MethodSig:
			if m.Computed {
				r.expr(m.Key)
			}
			r.signature(m, m.TypeParams, m.Params, m.Return)
		case *syntax.CallSig:
			r.signature(m, m.TypeParams, m.Params, m.Return)
		case *syntax.IndexSig:
			r.indexSig(m)
		default:
			r.errorf(m, "unexpected type member %T", m)
		}
	}
}

func (r *resolver) indexSig(sig *syntax.IndexSig) {
	for _, p := range sig.Params {
		_, evaluated := r.pattern(p, false)
		r.visit(evaluated)
	}
	if sig.Type != nil {
		r.typ(sig.Type)
	}
}
