// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.esscope.net/internal/chunkedfile"
	"go.esscope.net/jsparse"
	"go.esscope.net/resolve"
	"go.esscope.net/syntax"
)

func option(chunk, name string) bool {
	return strings.Contains(chunk, "option:"+name)
}

func TestResolve(t *testing.T) {
	filename := "testdata/resolve.js"
	for _, chunk := range chunkedfile.Read(filename, t) {
		prog, err := jsparse.Parse(filename, chunk.Source)
		if err != nil {
			t.Error(err)
			continue
		}

		// A chunk may set options by containing e.g. "option:strict".
		opts := &resolve.Options{
			ImpliedStrict: option(chunk.Source, "strict"),
			GlobalReturn:  option(chunk.Source, "globalreturn"),
		}
		m, err := resolve.Analyze(prog, opts)
		if err != nil {
			t.Error(err)
			continue
		}
		if err := m.Check(); err != nil {
			t.Errorf("%s: %v", filename, err)
		}
		if err := m.AddGlobals([]string{"console"}); err != nil {
			t.Error(err)
		}
		for _, err := range m.Undefined() {
			chunk.GotError(int(err.Pos.Line), err.Msg)
		}
		chunk.Done()
	}
}

func mustParse(t *testing.T, src string) *syntax.Program {
	t.Helper()
	prog, err := jsparse.Parse("test.js", src)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func mustAnalyze(t *testing.T, prog *syntax.Program, opts *resolve.Options) *resolve.Manager {
	t.Helper()
	m, err := resolve.Analyze(prog, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Check(); err != nil {
		t.Fatal(err)
	}
	return m
}

// refsTo returns the references whose identifier is named name, in order.
func refsTo(m *resolve.Manager, name string) []*resolve.Reference {
	var refs []*resolve.Reference
	for _, ref := range m.References() {
		if ref.Identifier.Name == name {
			refs = append(refs, ref)
		}
	}
	return refs
}

// refOf returns the reference made by the identifier id.
func refOf(t *testing.T, m *resolve.Manager, id *syntax.Ident) *resolve.Reference {
	t.Helper()
	for _, ref := range m.References() {
		if ref.Identifier == id {
			return ref
		}
	}
	t.Fatalf("no reference for %s at %s", id.Name, syntax.Start(id))
	return nil
}

func kinds(scopes []*resolve.Scope) []string {
	var out []string
	for _, s := range scopes {
		out = append(out, s.Kind.String())
	}
	return out
}

func TestScopeTree(t *testing.T) {
	for _, test := range []struct {
		src  string
		opts resolve.Options
		want []string
	}{
		{`x;`, resolve.Options{}, []string{"global"}},
		{`x;`, resolve.Options{GlobalReturn: true}, []string{"global", "function"}},
		{`{ let a; }`, resolve.Options{}, []string{"global", "block"}},
		{`function f() { { } }`, resolve.Options{}, []string{"global", "function", "block"}},
		{`for (let i;;) {}`, resolve.Options{}, []string{"global", "for", "block"}},
		{`for (var i;;) {}`, resolve.Options{}, []string{"global", "block"}},
		{`try {} catch (e) {} finally {}`, resolve.Options{}, []string{"global", "block", "catch", "block", "block"}},
		{`switch (x) { case 1: }`, resolve.Options{}, []string{"global", "switch"}},
		{`switch (x) { case 1: case 2: default: }`, resolve.Options{}, []string{"global", "switch"}},
		{`with (o) x;`, resolve.Options{}, []string{"global", "with"}},
		{`class C { a = 1; static {} m() {} }`, resolve.Options{},
			[]string{"global", "class", "class-field-initializer", "class-static-block", "function"}},
		{`var f = () => 1;`, resolve.Options{}, []string{"global", "function"}},
	} {
		m := mustAnalyze(t, mustParse(t, test.src), &test.opts)
		if diff := cmp.Diff(test.want, kinds(m.Scopes)); diff != "" {
			t.Errorf("%s: scopes mismatch (-want +got):\n%s", test.src, diff)
		}
	}
}

func TestShadowing(t *testing.T) {
	m := mustAnalyze(t, mustParse(t, `
var a = 1;
{
  let a = 2;
  a;
}
a;
`), nil)
	refs := refsTo(m, "a")
	// write init (outer), write init (inner), read (inner), read (outer)
	if len(refs) != 4 {
		t.Fatalf("got %d references to a, want 4", len(refs))
	}
	if got := refs[2].Resolved.Scope.Kind; got != resolve.BlockScope {
		t.Errorf("inner a resolved in %s scope, want block", got)
	}
	if got := refs[3].Resolved.Scope.Kind; got != resolve.GlobalScope {
		t.Errorf("outer a resolved in %s scope, want global", got)
	}
	if refs[2].Resolved == refs[3].Resolved {
		t.Error("inner and outer a resolved to the same variable")
	}
}

func TestHoisting(t *testing.T) {
	m := mustAnalyze(t, mustParse(t, `
function f() {
  { var x = 1; let y = 2; }
  x;
}
`), nil)
	fn := m.Scopes[1]
	if fn.Kind != resolve.FunctionScope {
		t.Fatalf("scope 1 is %s, want function", fn.Kind)
	}
	if fn.Lookup("x") == nil {
		t.Error("var x not hoisted to the function scope")
	}
	if fn.Lookup("y") != nil {
		t.Error("let y hoisted to the function scope")
	}
	for _, ref := range refsTo(m, "x") {
		if ref.Resolved != fn.Lookup("x") {
			t.Errorf("reference to x at %s not bound to the hoisted variable", syntax.Start(ref.Identifier))
		}
	}
}

func TestStrict(t *testing.T) {
	for _, test := range []struct {
		src  string
		opts resolve.Options
		want []bool // IsStrict of each scope
	}{
		{`function f() { { } }`, resolve.Options{}, []bool{false, false, false}},
		{`"use strict"; function f() { { } }`, resolve.Options{}, []bool{true, true, true}},
		{`function f() { "use strict"; { } } { }`, resolve.Options{}, []bool{false, true, true, false}},
		{`function f() { ("use strict"); { } }`, resolve.Options{}, []bool{false, false, false}},
		{`function f() { "a"; "use strict"; }`, resolve.Options{}, []bool{false, true}},
		{`function f() { x; "use strict"; }`, resolve.Options{}, []bool{false, false}},
		{`class C { m() { } }`, resolve.Options{}, []bool{false, true, true}},
		{`{ }`, resolve.Options{ImpliedStrict: true}, []bool{true, true}},
	} {
		m := mustAnalyze(t, mustParse(t, test.src), &test.opts)
		var got []bool
		for _, s := range m.Scopes {
			got = append(got, s.IsStrict)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%s: strictness mismatch (-want +got):\n%s", test.src, diff)
		}
	}
}

func TestArguments(t *testing.T) {
	m := mustAnalyze(t, mustParse(t, `
function f() { return () => arguments; }
`), nil)
	ref := refsTo(m, "arguments")[0]
	v := ref.Resolved
	if v == nil {
		t.Fatal("arguments unresolved")
	}
	if v.Scope.IsArrowFunction() || v.Scope.Kind != resolve.FunctionScope {
		t.Errorf("arguments resolved in %s scope", v.Scope.Kind)
	}
	if len(v.Defs) != 1 || v.Defs[0].Kind != resolve.ImplicitArgumentsDef || v.Defs[0].Name != nil {
		t.Errorf("unexpected definitions of arguments: %+v", v.Defs)
	}
}

func TestReferenceFlags(t *testing.T) {
	m := mustAnalyze(t, mustParse(t, `
var a = 1, b;
a = b;
a += 1;
a++;
[a, b = 2] = [];
for (a of []) {}
`), nil)
	var got []string
	for _, ref := range refsTo(m, "a") {
		got = append(got, fmt.Sprintf("read=%t write=%t init=%t", ref.IsRead(), ref.IsWrite(), ref.Init))
	}
	want := []string{
		"read=false write=true init=true",  // var a = 1
		"read=false write=true init=false", // a = b
		"read=true write=true init=false",  // a += 1
		"read=true write=true init=false",  // a++
		"read=false write=true init=false", // [a, ...] = []
		"read=false write=true init=false", // for (a of [])
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}

	// b = 2 inside the pattern writes the default and then the element.
	bs := refsTo(m, "b")
	if len(bs) != 3 {
		t.Fatalf("got %d references to b, want 3", len(bs))
	}
	if !bs[0].IsReadOnly() || !bs[1].IsWriteOnly() || !bs[2].IsWriteOnly() {
		t.Errorf("unexpected flags for b: %v %v %v", bs[0].Flag, bs[1].Flag, bs[2].Flag)
	}
	if lit, ok := bs[1].WriteExpr.(*syntax.Literal); !ok || lit.Raw != "2" {
		t.Errorf("default write of b has WriteExpr %#v, want literal 2", bs[1].WriteExpr)
	}
}

func TestNoReferenceLoss(t *testing.T) {
	m := mustAnalyze(t, mustParse(t, `
function outer(p) {
  var local = p + free1;
  return function inner() {
    let x = local + free2 + inner;
    { x = free1; }
    return x;
  };
}
`), nil)
	resolved, unresolved := 0, 0
	for _, ref := range m.References() {
		if ref.Resolved != nil {
			resolved++
		} else {
			unresolved++
		}
	}
	if unresolved != len(m.Global.Through) {
		t.Errorf("%d unresolved references but %d in the global through list", unresolved, len(m.Global.Through))
	}
	var free []string
	for _, ref := range m.Global.Through {
		free = append(free, ref.Identifier.Name)
	}
	if diff := cmp.Diff([]string{"free1", "free2", "free1"}, free); diff != "" {
		t.Errorf("free names mismatch (-want +got):\n%s", diff)
	}
	if resolved == 0 {
		t.Error("no references resolved")
	}
}

func TestAddGlobals(t *testing.T) {
	m := mustAnalyze(t, mustParse(t, `
var declared;
window.foo;
declared;
document.title;
`), nil)
	if got := len(m.Global.Through); got != 2 {
		t.Fatalf("got %d free references, want 2", got)
	}
	if err := m.AddGlobals([]string{"document", "", "window", "declared", "window"}); err != nil {
		t.Fatal(err)
	}
	if got := len(m.Global.Through); got != 0 {
		t.Errorf("got %d free references after AddGlobals, want 0", got)
	}
	if v := m.Global.Lookup("declared"); len(v.Defs) != 1 || v.Defs[0].Kind != resolve.VariableDef {
		t.Errorf("AddGlobals altered an existing variable: %+v", v.Defs)
	}
	w := m.Global.Lookup("window")
	if w == nil || len(w.Defs) != 1 || w.Defs[0].Kind != resolve.ImplicitGlobalDef {
		t.Fatalf("window not injected: %+v", w)
	}
	if len(w.References) != 1 || w.References[0].Resolved != w {
		t.Errorf("window references not moved: %v", w.References)
	}
	if err := m.Check(); err != nil {
		t.Error(err)
	}

	// A second call is rejected and changes nothing.
	before := resolve.Dump(m)
	if err := m.AddGlobals([]string{"other"}); !errors.Is(err, resolve.ErrGlobalsFinalized) {
		t.Errorf("second AddGlobals returned %v, want ErrGlobalsFinalized", err)
	}
	if after := resolve.Dump(m); after != before {
		t.Errorf("second AddGlobals changed the tree:\n%s", cmp.Diff(before, after))
	}
}

func TestAddGlobalsEmpty(t *testing.T) {
	m := mustAnalyze(t, mustParse(t, `a;`), nil)
	for _, names := range [][]string{nil, {}, {""}} {
		if err := m.AddGlobals(names); err != nil {
			t.Errorf("AddGlobals(%q) = %v, want nil", names, err)
		}
	}
	if err := m.AddGlobals([]string{"a"}); err != nil {
		t.Fatalf("AddGlobals after empty calls: %v", err)
	}
	if a := m.Global.Lookup("a"); a == nil || len(a.References) != 1 {
		t.Errorf("a not injected: %+v", a)
	}
	if got := len(m.Global.Through); got != 0 {
		t.Errorf("got %d free references, want 0", got)
	}
	if err := m.AddGlobals(nil); !errors.Is(err, resolve.ErrGlobalsFinalized) {
		t.Errorf("AddGlobals(nil) after injection = %v, want ErrGlobalsFinalized", err)
	}
}

func TestAddGlobalsOrderIndependent(t *testing.T) {
	src := `a; b; c; a = 1;`
	names := [][]string{{"a", "b"}, {"b", "a", "a"}, {"b", "", "a"}}
	var dumps []string
	for _, list := range names {
		m := mustAnalyze(t, mustParse(t, src), nil)
		if err := m.AddGlobals(list); err != nil {
			t.Fatal(err)
		}
		// Dump lists variables in declaration order, so compare the
		// sorted free names and resolution targets instead.
		var lines []string
		for _, ref := range m.References() {
			target := "?"
			if ref.Resolved != nil {
				target = ref.Resolved.Name
			}
			lines = append(lines, ref.Identifier.Name+"->"+target)
		}
		dumps = append(dumps, strings.Join(lines, " "))
	}
	for _, d := range dumps[1:] {
		if d != dumps[0] {
			t.Errorf("AddGlobals depends on name order: %q vs %q", dumps[0], d)
		}
	}

	m := mustAnalyze(t, mustParse(t, src), nil)
	if err := m.AddGlobals(nil); err != nil {
		t.Fatal(err)
	}
	if len(m.Global.Through) != 4 {
		t.Errorf("AddGlobals(nil) resolved references")
	}
}

func TestImplicitGlobals(t *testing.T) {
	m := mustAnalyze(t, mustParse(t, `
implicit = 1;
read;
function f() { "use strict"; strictWrite = 1; }
`), nil)
	var got []string
	for _, ref := range m.Global.Implicit {
		got = append(got, ref.Identifier.Name)
	}
	if diff := cmp.Diff([]string{"implicit"}, got); diff != "" {
		t.Errorf("implicit globals mismatch (-want +got):\n%s", diff)
	}
	if err := m.AddGlobals([]string{"implicit"}); err != nil {
		t.Fatal(err)
	}
	if len(m.Global.Implicit) != 0 {
		t.Errorf("resolved implicit global still listed")
	}
}

func TestDeclaredVariables(t *testing.T) {
	prog := mustParse(t, `
var a = 1, {b, c} = {};
function f(p, q) {}
try {} catch ({e}) {}
`)
	m := mustAnalyze(t, prog, nil)

	names := func(n syntax.Node) []string {
		var out []string
		for _, v := range m.DeclaredVariables(n) {
			out = append(out, v.Name)
		}
		return out
	}
	decl := prog.Body[0].(*syntax.VarDecl)
	if diff := cmp.Diff([]string{"a", "b", "c"}, names(decl)); diff != "" {
		t.Errorf("VarDecl (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "c"}, names(decl.List[1])); diff != "" {
		t.Errorf("VarDeclarator (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"f", "p", "q"}, names(prog.Body[1])); diff != "" {
		t.Errorf("FuncDecl (-want +got):\n%s", diff)
	}
	try := prog.Body[2].(*syntax.TryStmt)
	if diff := cmp.Diff([]string{"e"}, names(try.Handler)); diff != "" {
		t.Errorf("CatchClause (-want +got):\n%s", diff)
	}
	if got := m.DeclaredVariables(try.Block); got != nil {
		t.Errorf("BlockStmt declares %v", got)
	}
}

func TestAcquire(t *testing.T) {
	prog := mustParse(t, `function f() {} class C { x = () => 1; }`)
	m := mustAnalyze(t, prog, &resolve.Options{GlobalReturn: true})

	if s := m.Acquire(prog, false); s != m.Global {
		t.Errorf("Acquire(prog, false) = %v, want global", s)
	}
	if s := m.Acquire(prog, true); s == nil || s.Kind != resolve.FunctionScope {
		t.Errorf("Acquire(prog, true) = %v, want the wrapper function scope", s)
	}
	if s := m.Acquire(prog.Body[0], false); s == nil || s.Kind != resolve.FunctionScope {
		t.Errorf("Acquire(f) = %v, want function", s)
	}
	field := prog.Body[1].(*syntax.ClassDecl).Body[0].(*syntax.PropertyDef)
	if s := m.Acquire(field.Value, false); s == nil || s.Kind != resolve.ClassFieldInitializerScope {
		t.Errorf("Acquire(field, false) = %v, want class-field-initializer", s)
	}
	if s := m.Acquire(field.Value, true); s == nil || s.Kind != resolve.FunctionScope {
		t.Errorf("Acquire(field, true) = %v, want function", s)
	}
	if s := m.Acquire(field, false); s != nil {
		t.Errorf("Acquire(PropertyDef) = %v, want nil", s)
	}
}

func TestUndefined(t *testing.T) {
	m := mustAnalyze(t, mustParse(t, `
var document_body;
documentBody;
consol.log(1);
`), nil)
	if err := m.AddGlobals([]string{"console"}); err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, err := range m.Undefined() {
		got = append(got, fmt.Sprintf("%d: %s", err.Pos.Line, err.Msg))
	}
	want := []string{
		"3: undefined: documentBody (did you mean document_body?)",
		"4: undefined: consol (did you mean console?)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Undefined mismatch (-want +got):\n%s", diff)
	}
}

func TestTrace(t *testing.T) {
	var events []string
	opts := &resolve.Options{Trace: func(format string, args ...interface{}) {
		events = append(events, fmt.Sprintf(format, args...))
	}}
	mustAnalyze(t, mustParse(t, `var a; { a; }`), opts)
	joined := strings.Join(events, "\n")
	for _, want := range []string{"open global scope", "define a in global scope", "a resolved in global scope", "close block scope"} {
		if !strings.Contains(joined, want) {
			t.Errorf("trace lacks %q:\n%s", want, joined)
		}
	}
}

func TestMalformed(t *testing.T) {
	for _, test := range []struct {
		prog *syntax.Program
		want string
	}{
		{nil, "nil program"},
		{&syntax.Program{Body: []syntax.Stmt{&syntax.ExprStmt{}}}, "missing expression"},
		{&syntax.Program{Body: []syntax.Stmt{nil}}, "missing statement"},
		{&syntax.Program{Body: []syntax.Stmt{&syntax.VarDecl{List: []*syntax.VarDeclarator{{}}}}}, "missing binding pattern"},
		{&syntax.Program{Body: []syntax.Stmt{&syntax.ExprStmt{X: &syntax.AssignExpr{
			Op:    "=",
			Left:  &syntax.ObjectPattern{Props: []syntax.Node{&syntax.SpreadElement{}}},
			Right: &syntax.Ident{Name: "x"},
		}}}}, "unexpected *syntax.SpreadElement in object pattern"},
	} {
		m, err := resolve.Analyze(test.prog, nil)
		var rerr *resolve.Error
		if !errors.As(err, &rerr) {
			t.Errorf("Analyze returned (%v, %v), want *resolve.Error", m, err)
			continue
		}
		if m != nil {
			t.Errorf("Analyze returned a manager along with error %v", err)
		}
		if rerr.Msg != test.want {
			t.Errorf("got error %q, want %q", rerr.Msg, test.want)
		}
	}
}

func TestDump(t *testing.T) {
	// var a = 1; a; b;
	at := func(col int32) syntax.Range {
		p := syntax.MakePosition(1, col)
		return syntax.Range{From: p, To: p}
	}
	decl := &syntax.VarDeclarator{
		Range: at(5),
		ID:    &syntax.Ident{Range: at(5), Name: "a"},
		Init:  &syntax.Literal{Range: at(9), Kind: syntax.NUMBER, Raw: "1"},
	}
	prog := &syntax.Program{Range: at(1), Body: []syntax.Stmt{
		&syntax.VarDecl{Range: at(1), Kind: syntax.Var, List: []*syntax.VarDeclarator{decl}},
		&syntax.ExprStmt{Range: at(12), X: &syntax.Ident{Range: at(12), Name: "a"}},
		&syntax.ExprStmt{Range: at(15), X: &syntax.Ident{Range: at(15), Name: "b"}},
	}}
	m := mustAnalyze(t, prog, nil)
	want := `global
  var a [Variable] value
  ref a 1:5 write init -> global
  ref a 1:12 read -> global
  ref b 1:15 read -> ?
  free b 1:15
`
	if got := resolve.Dump(m); got != want {
		t.Errorf("Dump mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}

	if err := m.AddGlobals([]string{"b"}); err != nil {
		t.Fatal(err)
	}
	want = `global
  var a [Variable] value
  var b [ImplicitGlobal] value
  ref a 1:5 write init -> global
  ref a 1:12 read -> global
  ref b 1:15 read -> global
`
	if got := resolve.Dump(m); got != want {
		t.Errorf("Dump after AddGlobals mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}
