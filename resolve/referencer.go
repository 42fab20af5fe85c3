// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

// This file defines the traversal of statements and expressions.
// TypeScript declarations and types are handled in types.go.

import (
	"fmt"

	"go.esscope.net/syntax"
)

// A resolver holds the state of one analysis.
type resolver struct {
	m     *Manager
	opts  *Options
	scope *Scope // innermost open scope
	seq   int    // next reference sequence number
}

// errorf aborts the analysis. A nil node reports the position of the
// innermost open scope.
func (r *resolver) errorf(n syntax.Node, format string, args ...interface{}) {
	var pos syntax.Position
	switch {
	case n != nil:
		pos = syntax.Start(n)
	case r.scope != nil && r.scope.Block != nil:
		pos = syntax.Start(r.scope.Block)
	}
	panic(abort{&Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}})
}

func (r *resolver) trace(format string, args ...interface{}) {
	if r.opts.Trace != nil {
		r.opts.Trace(format, args...)
	}
}

// push opens a scope of the given kind. The new scope is strict if its
// parent is, or if strict is set.
func (r *resolver) push(kind ScopeKind, block syntax.Node, strict bool) *Scope {
	s := &Scope{
		Kind:     kind,
		Block:    block,
		Upper:    r.scope,
		IsStrict: strict,
		Set:      make(map[string]*Variable),
	}
	if r.scope != nil {
		s.IsStrict = s.IsStrict || r.scope.IsStrict
		r.scope.Children = append(r.scope.Children, s)
	}
	r.m.Scopes = append(r.m.Scopes, s)
	r.m.blocks[block] = append(r.m.blocks[block], s)
	r.scope = s
	r.trace("%s: open %s scope (strict=%t)", syntax.Start(block), kind, s.IsStrict)
	return s
}

// pop closes the innermost scope.
func (r *resolver) pop() {
	s := r.scope
	s.close(r)
	r.scope = s.Upper
	r.trace("%s: close %s scope (%d through)", syntax.End(s.Block), s.Kind, len(s.Through))
}

// define adds a definition of id to scope s.
func (r *resolver) define(s *Scope, id *syntax.Ident, def *Definition) *Variable {
	if id == nil {
		r.errorf(def.Node, "missing name in %s declaration", def.Kind)
	}
	def.Name = id
	v := s.declare(id.Name)
	v.addDef(def)
	r.m.addDeclared(def.Node, v)
	r.m.addDeclared(def.Parent, v)
	r.trace("%s: define %s in %s scope (%s)", syntax.Start(id), id.Name, s.Kind, def.Kind)
	return v
}

// use records a reference to id in the current scope.
func (r *resolver) use(id *syntax.Ident, flag RefFlag, value, typ bool) *Reference {
	if id == nil {
		r.errorf(nil, "missing identifier")
	}
	ref := &Reference{
		Identifier:       id,
		From:             r.scope,
		Flag:             flag,
		IsValueReference: value,
		IsTypeReference:  typ,
		seq:              r.seq,
	}
	r.seq++
	r.scope.References = append(r.scope.References, ref)
	return ref
}

func (r *resolver) read(id *syntax.Ident) { r.use(id, Read, true, false) }

func (r *resolver) write(id *syntax.Ident, flag RefFlag, rhs syntax.Expr, init bool) {
	ref := r.use(id, flag, true, false)
	ref.WriteExpr = rhs
	ref.Init = init
}

// bind binds each identifier of a declaration's pattern with the
// definition returned by def, then visits the evaluated parts of the
// pattern. Every default value is recorded as an initializing write.
func (r *resolver) bind(s *Scope, p syntax.Expr, init syntax.Expr, def func(b binding) *Definition) {
	bindings, evaluated := r.pattern(p, false)
	for _, b := range bindings {
		r.define(s, b.id, def(b))
		for _, d := range b.defaults {
			r.write(b.id, Write, d.Right, true)
		}
		if init != nil {
			r.write(b.id, Write, init, true)
		}
	}
	r.visit(evaluated)
}

// assign records the writes of an assignment target.
func (r *resolver) assign(target, rhs syntax.Expr, init bool) {
	bindings, evaluated := r.pattern(target, true)
	for _, b := range bindings {
		for _, d := range b.defaults {
			r.write(b.id, Write, d.Right, init)
		}
		r.write(b.id, Write, rhs, init)
	}
	r.visit(evaluated)
}

// visit visits expressions and types collected from a pattern.
func (r *resolver) visit(nodes []syntax.Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case syntax.TypeNode:
			r.typ(n)
		case syntax.Expr:
			r.expr(n)
		default:
			r.errorf(n, "unexpected %T", n)
		}
	}
}

func (r *resolver) program(prog *syntax.Program) {
	r.m.Global = r.push(GlobalScope, prog, r.opts.ImpliedStrict || useStrict(prog.Body))
	switch {
	case r.opts.SourceType == Module:
		r.push(ModuleScope, prog, true)
	case r.opts.GlobalReturn:
		r.defineArguments(r.push(FunctionScope, prog, false), prog)
	}
	r.stmts(prog.Body)
	for r.scope != nil {
		r.pop()
	}
}

func (r *resolver) stmts(list []syntax.Stmt) {
	for _, stmt := range list {
		r.stmt(stmt)
	}
}

func (r *resolver) stmt(stmt syntax.Stmt) {
	switch stmt := stmt.(type) {
	case *syntax.ExprStmt:
		r.expr(stmt.X)

	case *syntax.BlockStmt:
		r.push(BlockScope, stmt, false)
		r.stmts(stmt.List)
		r.pop()

	case *syntax.EmptyStmt, *syntax.DebuggerStmt, *syntax.BranchStmt:
		// no bindings or references

	case *syntax.VarDecl:
		r.varDecl(stmt)

	case *syntax.FuncDecl:
		r.funcDecl(stmt)

	case *syntax.ClassDecl:
		r.class(&stmt.Class, stmt, true)

	case *syntax.IfStmt:
		r.expr(stmt.Test)
		r.stmt(stmt.Cons)
		if stmt.Alt != nil {
			r.stmt(stmt.Alt)
		}

	case *syntax.ForStmt:
		r.forStmt(stmt)

	case *syntax.ForInStmt:
		r.forIn(stmt)

	case *syntax.WhileStmt:
		r.expr(stmt.Test)
		r.stmt(stmt.Body)

	case *syntax.DoWhileStmt:
		r.stmt(stmt.Body)
		r.expr(stmt.Test)

	case *syntax.LabeledStmt:
		r.stmt(stmt.Body)

	case *syntax.ReturnStmt:
		if stmt.Result != nil {
			r.expr(stmt.Result)
		}

	case *syntax.ThrowStmt:
		r.expr(stmt.X)

	case *syntax.TryStmt:
		if stmt.Block == nil {
			r.errorf(stmt, "try statement has no block")
		}
		r.stmt(stmt.Block)
		if stmt.Handler != nil {
			r.catch(stmt.Handler)
		}
		if stmt.Finalizer != nil {
			r.stmt(stmt.Finalizer)
		}

	case *syntax.SwitchStmt:
		r.expr(stmt.Discriminant)
		r.push(SwitchScope, stmt, false)
		for _, c := range stmt.Cases {
			if c.Test != nil {
				r.expr(c.Test)
			}
			r.stmts(c.Body)
		}
		r.pop()

	case *syntax.WithStmt:
		r.expr(stmt.Object)
		r.push(WithScope, stmt, false)
		r.stmt(stmt.Body)
		r.pop()

	case *syntax.ImportDecl:
		r.importDecl(stmt)

	case *syntax.ExportNamedDecl:
		r.exportNamed(stmt)

	case *syntax.ExportDefaultDecl:
		r.exportDefault(stmt)

	case *syntax.ExportAllDecl:
		// re-exports from another module bind nothing here

	case *syntax.ExportAssignment:
		r.exported(stmt.X)

	case *syntax.TypeAliasDecl:
		r.typeAlias(stmt)

	case *syntax.InterfaceDecl:
		r.interfaceDecl(stmt)

	case *syntax.EnumDecl:
		r.enumDecl(stmt)

	case *syntax.ModuleDecl:
		r.moduleDecl(stmt)

	case *syntax.ImportEqualsDecl:
		r.importEquals(stmt)

	case nil:
		r.errorf(nil, "missing statement")

	default:
		r.errorf(stmt, "unexpected statement %T", stmt)
	}
}

func (r *resolver) varDecl(decl *syntax.VarDecl) {
	target := r.scope
	if decl.Kind == syntax.Var {
		target = r.scope.VariableScope()
	}
	for _, d := range decl.List {
		d := d
		r.bind(target, d.ID, d.Init, func(binding) *Definition {
			return &Definition{
				Kind:       VariableDef,
				Capability: Value,
				Node:       d,
				Parent:     decl,
				VarKind:    decl.Kind,
			}
		})
		if d.Init != nil {
			r.expr(d.Init)
		}
	}
}

// funcDecl binds the name of a function declaration and resolves the
// function. Outside strict code the name is hoisted like a var.
func (r *resolver) funcDecl(fn *syntax.FuncDecl) {
	if fn.Name != nil {
		target := r.scope
		if !target.IsStrict {
			target = target.VariableScope()
		}
		r.define(target, fn.Name, &Definition{Kind: FunctionNameDef, Capability: Value, Node: fn})
	}
	r.function(&fn.Function, fn, false)
}

func (r *resolver) defineArguments(s *Scope, fn syntax.Node) {
	v := s.declare("arguments")
	v.addDef(&Definition{Kind: ImplicitArgumentsDef, Capability: Value, Node: fn})
}

// function resolves a function declaration, function expression,
// arrow function or method. The name of a declaration is bound by the
// caller; the name of a function expression binds in its own scope.
func (r *resolver) function(fn *syntax.Function, node syntax.Node, expr bool) {
	if fn.TypeParams != nil {
		r.push(TypeParametersScope, fn.TypeParams, false)
		r.typeParams(fn.TypeParams)
	}

	s := r.push(FunctionScope, node, functionStrict(fn))
	if _, arrow := node.(*syntax.ArrowFunc); !arrow {
		r.defineArguments(s, node)
	}
	if expr && fn.Name != nil {
		r.define(s, fn.Name, &Definition{Kind: FunctionNameDef, Capability: Value, Node: node})
	}
	for _, param := range fn.Params {
		r.bind(s, param, nil, func(b binding) *Definition {
			return &Definition{Kind: ParameterDef, Capability: Value, Node: node, Rest: b.rest}
		})
	}
	if fn.ReturnType != nil {
		r.typ(fn.ReturnType)
	}
	switch {
	case fn.Body != nil:
		r.stmts(fn.Body.List)
	case fn.ExprBody != nil:
		r.expr(fn.ExprBody)
	}
	r.pop()

	if fn.TypeParams != nil {
		r.pop()
	}
}

// class resolves a class declaration or expression. A declaration binds
// its name in the enclosing scope; every named class also binds its
// name in the class scope.
func (r *resolver) class(c *syntax.Class, node syntax.Node, decl bool) {
	r.decorators(c.Decorators)
	if decl && c.Name != nil {
		r.define(r.scope, c.Name, &Definition{Kind: ClassNameDef, Capability: Both, Node: node})
	}
	r.push(ClassScope, node, true)
	if c.Name != nil {
		r.define(r.scope, c.Name, &Definition{Kind: ClassNameDef, Capability: Both, Node: node})
	}
	if c.TypeParams != nil {
		r.typeParams(c.TypeParams)
	}
	if c.SuperClass != nil {
		r.expr(c.SuperClass)
	}
	r.types(c.SuperTypeArgs)
	for _, impl := range c.Implements {
		r.typ(impl)
	}
	for _, member := range c.Body {
		r.classMember(member)
	}
	r.pop()
}

func (r *resolver) classMember(member syntax.ClassMember) {
	switch m := member.(type) {
	case *syntax.MethodDef:
		r.decorators(m.Decorators)
		if m.Computed {
			r.expr(m.Key)
		}
		if m.Value == nil {
			r.errorf(m, "method has no function")
		}
		r.function(&m.Value.Function, m.Value, true)

	case *syntax.PropertyDef:
		r.decorators(m.Decorators)
		if m.Computed {
			r.expr(m.Key)
		}
		if m.Type != nil {
			r.typ(m.Type)
		}
		if m.Value != nil {
			r.push(ClassFieldInitializerScope, m.Value, true)
			r.expr(m.Value)
			r.pop()
		}

	case *syntax.StaticBlock:
		r.push(ClassStaticBlockScope, m, true)
		r.stmts(m.Body)
		r.pop()

	case *syntax.IndexSig:
		r.indexSig(m)

	default:
		r.errorf(member, "unexpected class member %T", member)
	}
}

func (r *resolver) decorators(list []*syntax.Decorator) {
	for _, d := range list {
		r.expr(d.X)
	}
}

func (r *resolver) catch(c *syntax.CatchClause) {
	r.push(CatchScope, c, false)
	if c.Param != nil {
		r.bind(r.scope, c.Param, nil, func(binding) *Definition {
			return &Definition{Kind: CatchClauseDef, Capability: Value, Node: c}
		})
	}
	if c.Body == nil {
		r.errorf(c, "catch clause has no body")
	}
	r.stmt(c.Body)
	r.pop()
}

// lexicalHead reports whether a loop head declares let or const
// bindings, which live in a scope of their own.
func lexicalHead(head syntax.Node) bool {
	decl, ok := head.(*syntax.VarDecl)
	return ok && decl.Kind != syntax.Var
}

func (r *resolver) forStmt(loop *syntax.ForStmt) {
	lexical := lexicalHead(loop.Init)
	if lexical {
		r.push(ForScope, loop, false)
	}
	switch init := loop.Init.(type) {
	case nil:
	case *syntax.VarDecl:
		r.varDecl(init)
	case syntax.Expr:
		r.expr(init)
	default:
		r.errorf(init, "unexpected %T in for loop initializer", init)
	}
	if loop.Test != nil {
		r.expr(loop.Test)
	}
	if loop.Update != nil {
		r.expr(loop.Update)
	}
	r.stmt(loop.Body)
	if lexical {
		r.pop()
	}
}

func (r *resolver) forIn(loop *syntax.ForInStmt) {
	lexical := lexicalHead(loop.Left)
	if lexical {
		r.push(ForScope, loop, false)
	}
	switch left := loop.Left.(type) {
	case *syntax.VarDecl:
		if len(left.List) != 1 {
			r.errorf(left, "for-%s loop must declare a single binding", loopWord(loop))
		}
		r.varDecl(left)
		// Each iteration writes the next element to the bindings.
		bindings, _ := r.pattern(left.List[0].ID, false)
		for _, b := range bindings {
			r.write(b.id, Write, loop.Right, true)
		}
	case syntax.Expr:
		r.assign(left, loop.Right, false)
	default:
		r.errorf(loop, "invalid for-%s loop head", loopWord(loop))
	}
	r.expr(loop.Right)
	r.stmt(loop.Body)
	if lexical {
		r.pop()
	}
}

func loopWord(loop *syntax.ForInStmt) string {
	if loop.Of {
		return "of"
	}
	return "in"
}

func (r *resolver) importDecl(decl *syntax.ImportDecl) {
	for _, spec := range decl.Specifiers {
		capability := Both
		if decl.TypeOnly || spec.TypeOnly {
			capability = Type
		}
		r.define(r.scope, spec.Local, &Definition{
			Kind:       ImportBindingDef,
			Capability: capability,
			Node:       spec,
			Parent:     decl,
		})
	}
}

func (r *resolver) exportNamed(decl *syntax.ExportNamedDecl) {
	if decl.Decl != nil {
		r.stmt(decl.Decl)
		return
	}
	if decl.Source != nil {
		return // export { x } from "m" refers to another module's x
	}
	for _, spec := range decl.Specifiers {
		if spec.Local == nil {
			r.errorf(spec, "export specifier has no local name")
		}
		if decl.TypeOnly || spec.TypeOnly {
			r.use(spec.Local, Read, false, true)
		} else {
			r.use(spec.Local, Read, true, true)
		}
	}
}

func (r *resolver) exportDefault(decl *syntax.ExportDefaultDecl) {
	switch d := decl.Decl.(type) {
	case *syntax.FuncDecl:
		r.funcDecl(d)
	case *syntax.ClassDecl:
		r.class(&d.Class, d, true)
	case *syntax.InterfaceDecl:
		r.interfaceDecl(d)
	case syntax.Expr:
		r.exported(d)
	case nil:
		r.errorf(decl, "export default has no declaration")
	default:
		r.errorf(d, "unexpected %T in export default", d)
	}
}

// exported resolves the operand of export default or export =.
// A bare identifier exports whatever the name denotes, value or type.
func (r *resolver) exported(x syntax.Expr) {
	if id, ok := x.(*syntax.Ident); ok {
		r.use(id, Read, true, true)
		return
	}
	if x == nil {
		r.errorf(nil, "missing exported expression")
	}
	r.expr(x)
}

func (r *resolver) exprs(list []syntax.Expr) {
	for _, x := range list {
		if x != nil { // array holes
			r.expr(x)
		}
	}
}

func (r *resolver) expr(x syntax.Expr) {
	switch x := x.(type) {
	case *syntax.Ident:
		r.read(x)

	case *syntax.Literal, *syntax.ThisExpr, *syntax.SuperExpr,
		*syntax.MetaProperty, *syntax.PrivateName:
		// no references

	case *syntax.TemplateLit:
		r.exprs(x.Exprs)

	case *syntax.TaggedTemplate:
		r.expr(x.Tag)
		r.types(x.TypeArgs)
		r.expr(x.Quasi)

	case *syntax.ArrayLit:
		r.exprs(x.Elems)

	case *syntax.ObjectLit:
		for _, prop := range x.Props {
			switch prop := prop.(type) {
			case *syntax.Property:
				if prop.Computed {
					r.expr(prop.Key)
				}
				r.expr(prop.Value)
			case *syntax.SpreadElement:
				r.expr(prop.X)
			default:
				r.errorf(prop, "unexpected %T in object literal", prop)
			}
		}

	case *syntax.SpreadElement:
		r.expr(x.X)

	case *syntax.FuncExpr:
		r.function(&x.Function, x, true)

	case *syntax.ArrowFunc:
		r.function(&x.Function, x, true)

	case *syntax.ClassExpr:
		r.class(&x.Class, x, false)

	case *syntax.UnaryExpr:
		r.expr(x.X)

	case *syntax.UpdateExpr:
		if id, ok := x.X.(*syntax.Ident); ok {
			r.write(id, ReadWrite, nil, false)
		} else {
			r.expr(x.X)
		}

	case *syntax.BinaryExpr:
		r.expr(x.X)
		r.expr(x.Y)

	case *syntax.AssignExpr:
		if x.Op == "=" {
			r.assign(x.Left, x.Right, false)
		} else if id, ok := x.Left.(*syntax.Ident); ok {
			r.write(id, ReadWrite, x.Right, false)
		} else {
			r.expr(x.Left)
		}
		r.expr(x.Right)

	case *syntax.CondExpr:
		r.expr(x.Test)
		r.expr(x.Cons)
		r.expr(x.Alt)

	case *syntax.CallExpr:
		r.expr(x.Callee)
		r.types(x.TypeArgs)
		r.exprs(x.Args)

	case *syntax.NewExpr:
		r.expr(x.Callee)
		r.types(x.TypeArgs)
		r.exprs(x.Args)

	case *syntax.MemberExpr:
		r.expr(x.Object)
		if x.Computed {
			r.expr(x.Property)
		}

	case *syntax.ChainExpr:
		r.expr(x.X)

	case *syntax.SequenceExpr:
		r.exprs(x.List)

	case *syntax.YieldExpr:
		if x.X != nil {
			r.expr(x.X)
		}

	case *syntax.AwaitExpr:
		r.expr(x.X)

	case *syntax.ImportExpr:
		r.expr(x.Source)

	case *syntax.AsExpr:
		r.expr(x.X)
		r.typ(x.Type)

	case *syntax.TypeAssertion:
		r.typ(x.Type)
		r.expr(x.X)

	case *syntax.NonNullExpr:
		r.expr(x.X)

	case *syntax.Instantiation:
		r.expr(x.X)
		r.types(x.TypeArgs)

	case nil:
		r.errorf(nil, "missing expression")

	default:
		r.errorf(x, "unexpected expression %T", x)
	}
}
