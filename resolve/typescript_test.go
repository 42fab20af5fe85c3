// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve_test

// The JavaScript parser does not accept TypeScript, so the trees in
// this file are built by hand.

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.esscope.net/resolve"
	"go.esscope.net/syntax"
)

// A builder makes syntax nodes with distinct, increasing positions.
type builder struct{ col int32 }

func (b *builder) at() syntax.Range {
	b.col++
	p := syntax.MakePosition(1, b.col)
	return syntax.Range{From: p, To: p}
}

func (b *builder) id(name string) *syntax.Ident {
	return &syntax.Ident{Range: b.at(), Name: name}
}

func (b *builder) num() *syntax.Literal {
	return &syntax.Literal{Range: b.at(), Kind: syntax.NUMBER, Raw: "1"}
}

func (b *builder) typeRef(id *syntax.Ident) *syntax.TypeRef {
	return &syntax.TypeRef{Range: id.Range, Name: id}
}

func (b *builder) keyword(name string) *syntax.KeywordType {
	return &syntax.KeywordType{Range: b.at(), Name: name}
}

func (b *builder) decl(kind syntax.VarKind, id syntax.Expr, init syntax.Expr) *syntax.VarDecl {
	r := b.at()
	return &syntax.VarDecl{Range: r, Kind: kind, List: []*syntax.VarDeclarator{{Range: r, ID: id, Init: init}}}
}

func (b *builder) stmt(x syntax.Expr) *syntax.ExprStmt {
	return &syntax.ExprStmt{Range: b.at(), X: x}
}

func (b *builder) block(list ...syntax.Stmt) *syntax.BlockStmt {
	return &syntax.BlockStmt{Range: b.at(), List: list}
}

func (b *builder) program(list ...syntax.Stmt) *syntax.Program {
	return &syntax.Program{Range: b.at(), Body: list}
}

func (b *builder) alias(name *syntax.Ident, t syntax.TypeNode) *syntax.TypeAliasDecl {
	return &syntax.TypeAliasDecl{Range: b.at(), Name: name, Type: t}
}

var module = &resolve.Options{SourceType: resolve.Module}

// declaring returns the first declaring identifier of the variable
// a reference resolved to, or nil.
func declaring(ref *resolve.Reference) *syntax.Ident {
	if ref.Resolved == nil || len(ref.Resolved.Identifiers) == 0 {
		return nil
	}
	return ref.Resolved.Identifiers[0]
}

// type T = number; { const T = 1; let x: T = T; }
func TestDualBinding(t *testing.T) {
	b := new(builder)
	typeT, constT := b.id("T"), b.id("T")
	x, annot, value := b.id("x"), b.id("T"), b.id("T")
	x.Type = b.typeRef(annot)

	prog := b.program(
		b.alias(typeT, b.keyword("number")),
		b.block(
			b.decl(syntax.Const, constT, b.num()),
			b.decl(syntax.Let, x, value),
		),
	)
	m := mustAnalyze(t, prog, module)

	ref := refOf(t, m, annot)
	if !ref.IsTypeReference || ref.IsValueReference {
		t.Errorf("annotation T: value=%t type=%t, want a type reference", ref.IsValueReference, ref.IsTypeReference)
	}
	if declaring(ref) != typeT {
		t.Errorf("type reference T bound to %v, want the type alias", declaring(ref))
	}
	if declaring(refOf(t, m, value)) != constT {
		t.Errorf("value reference T not bound to the inner const")
	}
}

// const v = 1; { type v = string; type Q = typeof v; }
func TestTypeofQuery(t *testing.T) {
	b := new(builder)
	constV, typeV, queried := b.id("v"), b.id("v"), b.id("v")
	prog := b.program(
		b.decl(syntax.Const, constV, b.num()),
		b.block(
			b.alias(typeV, b.keyword("string")),
			b.alias(b.id("Q"), &syntax.TypeQuery{Range: b.at(), X: queried}),
		),
	)
	m := mustAnalyze(t, prog, module)

	ref := refOf(t, m, queried)
	if !ref.FromTypeQuery || !ref.IsValueReference || ref.IsTypeReference {
		t.Errorf("typeof v: %+v, want a value reference from a type query", ref)
	}
	if declaring(ref) != constV {
		t.Errorf("typeof v bound to %v, want the outer const", declaring(ref))
	}
}

// interface Box { } const Box = 1; let b: Box = Box;
func TestDeclarationMerging(t *testing.T) {
	b := new(builder)
	iface, constBox := b.id("Box"), b.id("Box")
	x, annot, value := b.id("b"), b.id("Box"), b.id("Box")
	x.Type = b.typeRef(annot)
	prog := b.program(
		&syntax.InterfaceDecl{Range: b.at(), Name: iface},
		b.decl(syntax.Const, constBox, b.num()),
		b.decl(syntax.Let, x, value),
	)
	m := mustAnalyze(t, prog, module)

	mod := m.Acquire(prog, true)
	v := mod.Lookup("Box")
	if v == nil || len(v.Defs) != 2 {
		t.Fatalf("Box: %+v, want one variable with two definitions", v)
	}
	if !v.HasValueDef() || !v.HasTypeDef() || v.Capability() != resolve.Both {
		t.Errorf("merged Box has capability %s, want value+type", v.Capability())
	}
	if refOf(t, m, annot).Resolved != v || refOf(t, m, value).Resolved != v {
		t.Error("references to Box not bound to the merged variable")
	}
}

// A type reference does not bind to a value-only variable, and vice versa.
func TestCapabilityMismatch(t *testing.T) {
	b := new(builder)
	x, annot := b.id("x"), b.id("v")
	x.Type = b.typeRef(annot)
	valueOfType := b.id("T")
	prog := b.program(
		b.decl(syntax.Const, b.id("v"), b.num()),
		b.alias(b.id("T"), b.keyword("number")),
		b.decl(syntax.Let, x, valueOfType),
	)
	m := mustAnalyze(t, prog, module)
	if err := m.AddGlobals([]string{"v"}); err != nil {
		t.Fatal(err)
	}
	if ref := refOf(t, m, annot); ref.Resolved != nil {
		t.Errorf("type reference v bound to %s variable", ref.Resolved.Scope.Kind)
	}
	if ref := refOf(t, m, valueOfType); ref.Resolved != nil {
		t.Errorf("value reference T bound to %s variable", ref.Resolved.Scope.Kind)
	}

	var got []string
	for _, err := range m.Undefined() {
		got = append(got, err.Msg)
	}
	want := []string{"undefined type: v", "undefined: T"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Undefined mismatch (-want +got):\n%s", diff)
	}
}

// function id<T>(x: T): T { return x; }
func TestTypeParameters(t *testing.T) {
	b := new(builder)
	tp := b.id("T")
	param, paramType, retType, body := b.id("x"), b.id("T"), b.id("T"), b.id("x")
	param.Type = b.typeRef(paramType)
	fn := &syntax.FuncDecl{Function: syntax.Function{
		Range:      b.at(),
		Name:       b.id("id"),
		TypeParams: &syntax.TypeParamList{Range: b.at(), Params: []*syntax.TypeParam{{Range: tp.Range, Name: tp}}},
		Params:     []syntax.Expr{param},
		ReturnType: b.typeRef(retType),
		Body:       b.block(&syntax.ReturnStmt{Range: b.at(), Result: body}),
	}}
	m := mustAnalyze(t, b.program(fn), module)

	tps := m.Acquire(fn.TypeParams, false)
	if tps == nil || tps.Kind != resolve.TypeParametersScope {
		t.Fatalf("type parameter scope: %v", tps)
	}
	if s := m.Acquire(fn, false); s == nil || s.Upper != tps {
		t.Errorf("function scope is not nested in its type parameter scope")
	}
	for _, id := range []*syntax.Ident{paramType, retType} {
		if ref := refOf(t, m, id); declaring(ref) != tp {
			t.Errorf("T at %s not bound to the type parameter", syntax.Start(id))
		}
	}
	if declaring(refOf(t, m, body)) != param {
		t.Errorf("x not bound to the parameter")
	}
	if got := m.DeclaredVariables(fn.TypeParams.Params[0]); len(got) != 1 || got[0].Name != "T" {
		t.Errorf("DeclaredVariables(TypeParam) = %v", got)
	}
}

// type Elem<A> = A extends Array<infer E> ? E : never;
func TestInfer(t *testing.T) {
	b := new(builder)
	a, checked := b.id("A"), b.id("A")
	e, trueE := b.id("E"), b.id("E")
	cond := &syntax.ConditionalType{
		Range: b.at(),
		Check: b.typeRef(checked),
		Extends: &syntax.TypeRef{Range: b.at(), Name: b.id("Array"), TypeArgs: []syntax.TypeNode{
			&syntax.InferType{Range: b.at(), Param: &syntax.TypeParam{Range: e.Range, Name: e}},
		}},
		True:  b.typeRef(trueE),
		False: b.keyword("never"),
	}
	alias := &syntax.TypeAliasDecl{
		Range:      b.at(),
		Name:       b.id("Elem"),
		TypeParams: &syntax.TypeParamList{Range: b.at(), Params: []*syntax.TypeParam{{Range: a.Range, Name: a}}},
		Type:       cond,
	}
	m := mustAnalyze(t, b.program(alias), module)

	if s := m.Acquire(alias, false); s == nil || s.Kind != resolve.TypeAliasScope {
		t.Errorf("type alias scope: %v", s)
	}
	if declaring(refOf(t, m, checked)) != a {
		t.Error("A not bound to the alias type parameter")
	}
	if declaring(refOf(t, m, trueE)) != e {
		t.Error("E not bound to the infer declaration")
	}
	if s := m.Acquire(cond, false); s == nil || s.Lookup("E") == nil {
		t.Error("infer E not declared in the conditional type scope")
	}

	var free []string
	for _, ref := range m.Global.Through {
		free = append(free, ref.Identifier.Name)
	}
	if diff := cmp.Diff([]string{"Array"}, free); diff != "" {
		t.Errorf("free names (-want +got):\n%s", diff)
	}
}

// enum Color { Red, Green = Red } namespace NS { export const k = Color.Green; }
func TestEnumAndNamespace(t *testing.T) {
	b := new(builder)
	red, redRef, color := b.id("Red"), b.id("Red"), b.id("Color")
	enum := &syntax.EnumDecl{Range: b.at(), Name: b.id("Color"), Members: []*syntax.EnumMember{
		{Range: red.Range, ID: red},
		{Range: b.at(), ID: b.id("Green"), Init: redRef},
	}}
	inner := &syntax.ExportNamedDecl{Range: b.at(), Decl: b.decl(syntax.Const, b.id("k"),
		&syntax.MemberExpr{Range: b.at(), Object: color, Property: b.id("Green")})}
	ns := &syntax.ModuleDecl{Range: b.at(), Name: b.id("NS"), Body: b.block(inner)}
	m := mustAnalyze(t, b.program(enum, ns), module)

	if declaring(refOf(t, m, redRef)) != red {
		t.Error("Red not bound to the enum member")
	}
	if ref := refOf(t, m, color); declaring(ref) != enum.Name {
		t.Error("Color not bound to the enum")
	}
	nsScope := m.Acquire(ns, false)
	if nsScope == nil || nsScope.Kind != resolve.NamespaceScope || nsScope.Lookup("k") == nil {
		t.Errorf("namespace scope: %v", nsScope)
	}
	mod := m.Acquire(b.program(), false)
	if mod != nil {
		t.Error("Acquire found a scope for an unrelated node")
	}
	v := m.Global.Children[0].Lookup("NS")
	if v == nil || v.Defs[0].Kind != resolve.TSModuleNameDef || v.Capability() != resolve.Both {
		t.Errorf("NS: %+v", v)
	}
}

// import type { T } from "m"; import { v } from "m"; export { T, v }; export type { v as w };
func TestImportsAndExports(t *testing.T) {
	b := new(builder)
	src := &syntax.Literal{Range: b.at(), Kind: syntax.STRING, Raw: `"m"`, Value: "m"}
	impT, impV := b.id("T"), b.id("v")
	expT, expV, expW := b.id("T"), b.id("v"), b.id("v")
	prog := b.program(
		&syntax.ImportDecl{Range: b.at(), Source: src, TypeOnly: true, Specifiers: []*syntax.ImportSpec{
			{Range: impT.Range, Kind: syntax.ImportNamed, Imported: impT, Local: impT},
		}},
		&syntax.ImportDecl{Range: b.at(), Source: src, Specifiers: []*syntax.ImportSpec{
			{Range: impV.Range, Kind: syntax.ImportNamed, Imported: impV, Local: impV},
		}},
		&syntax.ExportNamedDecl{Range: b.at(), Specifiers: []*syntax.ExportSpec{
			{Range: expT.Range, Local: expT, Exported: expT},
			{Range: expV.Range, Local: expV, Exported: expV},
		}},
		&syntax.ExportNamedDecl{Range: b.at(), TypeOnly: true, Specifiers: []*syntax.ExportSpec{
			{Range: expW.Range, Local: expW, Exported: b.id("w")},
		}},
		&syntax.ExportNamedDecl{Range: b.at(), Source: src, Specifiers: []*syntax.ExportSpec{
			{Range: b.at(), Local: b.id("elsewhere"), Exported: b.id("elsewhere")},
		}},
	)
	m := mustAnalyze(t, prog, module)

	mod := m.Acquire(prog, true)
	if mod.Kind != resolve.ModuleScope || !mod.IsStrict {
		t.Fatalf("innermost program scope is %s (strict=%t)", mod.Kind, mod.IsStrict)
	}
	if c := mod.Lookup("T").Capability(); c != resolve.Type {
		t.Errorf("type-only import has capability %s", c)
	}
	if c := mod.Lookup("v").Capability(); c != resolve.Both {
		t.Errorf("import has capability %s", c)
	}
	for _, id := range []*syntax.Ident{expT, expV} {
		ref := refOf(t, m, id)
		if !ref.IsValueReference || !ref.IsTypeReference || ref.Resolved == nil {
			t.Errorf("export %s: %+v, want a resolved value and type reference", id.Name, ref)
		}
	}
	if ref := refOf(t, m, expW); ref.IsValueReference || !ref.IsTypeReference {
		t.Errorf("type-only export: %+v", ref)
	}
	if len(refsTo(m, "elsewhere")) != 0 {
		t.Error("re-export from another module made a reference")
	}
	if len(m.Global.Through) != 0 {
		t.Errorf("%d unresolved references", len(m.Global.Through))
	}
}

// class C<T> implements I<T> { constructor(private readonly p: T = d) {} }
func TestClassTypeScript(t *testing.T) {
	b := new(builder)
	tp, implArg, annot, dflt := b.id("T"), b.id("T"), b.id("T"), b.id("d")
	iface := b.id("I")
	p := b.id("p")
	p.Type = b.typeRef(annot)
	ctor := &syntax.FuncExpr{Function: syntax.Function{
		Range: b.at(),
		Params: []syntax.Expr{&syntax.ParamProp{
			Range:         b.at(),
			Accessibility: "private",
			Readonly:      true,
			Param:         &syntax.AssignPattern{Range: b.at(), Left: p, Right: dflt},
		}},
		Body: b.block(),
	}}
	class := &syntax.ClassDecl{Class: syntax.Class{
		Range:      b.at(),
		Name:       b.id("C"),
		TypeParams: &syntax.TypeParamList{Range: b.at(), Params: []*syntax.TypeParam{{Range: tp.Range, Name: tp}}},
		Implements: []*syntax.TypeRef{{Range: iface.Range, Name: iface, TypeArgs: []syntax.TypeNode{b.typeRef(implArg)}}},
		Body: []syntax.ClassMember{&syntax.MethodDef{
			Range: b.at(), Key: b.id("constructor"), Kind: syntax.Constructor, Value: ctor,
		}},
	}}
	m := mustAnalyze(t, b.program(class), module)

	for _, id := range []*syntax.Ident{implArg, annot} {
		if declaring(refOf(t, m, id)) != tp {
			t.Errorf("T at %s not bound to the class type parameter", syntax.Start(id))
		}
	}
	fn := m.Acquire(ctor, false)
	if v := fn.Lookup("p"); v == nil || v.Defs[0].Kind != resolve.ParameterDef {
		t.Errorf("parameter property p not declared as a parameter")
	}
	// p = d: d is read, and p is written with d.
	ps := refsTo(m, "p")
	if len(ps) != 1 || !ps[0].Init || ps[0].WriteExpr != dflt {
		t.Errorf("default write of p: %+v", ps)
	}
	if ref := refOf(t, m, iface); !ref.IsTypeReference || ref.Resolved != nil {
		t.Errorf("implements I: %+v", ref)
	}
	if ref := refOf(t, m, dflt); ref.Resolved != nil || !ref.IsRead() {
		t.Errorf("default d: %+v", ref)
	}
}

// import fs = require("fs"); import Inner = NS.Inner; export = fs;
func TestImportEquals(t *testing.T) {
	b := new(builder)
	fs, nsRef, exported := b.id("fs"), b.id("NS"), b.id("fs")
	prog := b.program(
		&syntax.ImportEqualsDecl{Range: b.at(), ID: fs, Ref: &syntax.ExternalModuleRef{
			Range: b.at(), Module: &syntax.Literal{Range: b.at(), Kind: syntax.STRING, Raw: `"fs"`, Value: "fs"},
		}},
		&syntax.ImportEqualsDecl{Range: b.at(), ID: b.id("Inner"), Ref: &syntax.QualifiedName{
			Range: b.at(), Left: nsRef, Right: b.id("Inner"),
		}},
		&syntax.ExportAssignment{Range: b.at(), X: exported},
	)
	m := mustAnalyze(t, prog, module)
	if declaring(refOf(t, m, exported)) != fs {
		t.Error("export = fs not bound to the import")
	}
	ref := refOf(t, m, nsRef)
	if ref.Resolved != nil || !ref.IsValueReference || !ref.IsTypeReference {
		t.Errorf("NS in import-equals: %+v", ref)
	}
	if got := len(refsTo(m, "Inner")); got != 0 {
		t.Errorf("right side of a qualified name made %d references", got)
	}
}

// type M<T> = { [K in keyof T]: T[K] }; declare global { interface Window { x: M<Window> } }
func TestMappedTypeAndGlobalAugmentation(t *testing.T) {
	b := new(builder)
	tp, k, kRef, keyofT, indexT := b.id("T"), b.id("K"), b.id("K"), b.id("T"), b.id("T")
	mapped := &syntax.MappedType{
		Range: b.at(),
		Param: &syntax.TypeParam{Range: k.Range, Name: k, Constraint: &syntax.TypeOperator{Range: b.at(), Op: "keyof", Type: b.typeRef(keyofT)}},
		Type:  &syntax.IndexedAccessType{Range: b.at(), Object: b.typeRef(indexT), Index: b.typeRef(kRef)},
	}
	alias := &syntax.TypeAliasDecl{
		Range:      b.at(),
		Name:       b.id("M"),
		TypeParams: &syntax.TypeParamList{Range: b.at(), Params: []*syntax.TypeParam{{Range: tp.Range, Name: tp}}},
		Type:       mapped,
	}
	mRef, winRef := b.id("M"), b.id("Window")
	window := &syntax.InterfaceDecl{Range: b.at(), Name: b.id("Window"), Body: []syntax.TypeMember{
		&syntax.PropertySig{Range: b.at(), Key: b.id("x"), Type: &syntax.TypeRef{
			Range: mRef.Range, Name: mRef, TypeArgs: []syntax.TypeNode{b.typeRef(winRef)},
		}},
	}}
	global := &syntax.ModuleDecl{Range: b.at(), Global: true, Declare: true, Body: b.block(window)}
	m := mustAnalyze(t, b.program(alias, global), module)

	for id, want := range map[*syntax.Ident]*syntax.Ident{kRef: k, keyofT: tp, indexT: tp, mRef: alias.Name, winRef: window.Name} {
		if got := declaring(refOf(t, m, id)); got != want {
			t.Errorf("%s at %s bound to %v, want %s at %s", id.Name, syntax.Start(id), got, want.Name, syntax.Start(want))
		}
	}
	if s := m.Acquire(mapped, false); s == nil || s.Kind != resolve.TypeParametersScope {
		t.Errorf("mapped type scope: %v", s)
	}
}
