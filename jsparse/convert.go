// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsparse

// This file converts goja syntax trees into package syntax trees.

import (
	"fmt"
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/token"
	"go.esscope.net/syntax"
)

type converter struct {
	file *file.File
	src  string
}

func (c *converter) pos(idx file.Idx) syntax.Position {
	if idx <= 0 {
		return syntax.Position{}
	}
	p := c.file.Position(c.offset(idx))
	return syntax.MakePosition(int32(p.Line), int32(p.Column))
}

func (c *converter) rng(n ast.Node) syntax.Range {
	return syntax.Range{From: c.pos(n.Idx0()), To: c.pos(n.Idx1())}
}

// caseRange is the range of a switch case. goja derives a case's end
// from its last consequent, which an empty case does not have.
func (c *converter) caseRange(cs *ast.CaseStatement) syntax.Range {
	if len(cs.Consequent) > 0 {
		return c.rng(cs)
	}
	end := cs.Case + file.Idx(len("default"))
	if cs.Test != nil {
		end = cs.Test.Idx1()
	}
	return syntax.Range{From: c.pos(cs.Case), To: c.pos(end + 1)}
}

func (c *converter) program(prog *ast.Program, path string) *syntax.Program {
	p := &syntax.Program{Path: path}
	if len(prog.Body) > 0 {
		p.Range = c.rng(prog)
	} else {
		base := file.Idx(c.file.Base())
		p.Range = syntax.Range{From: c.pos(base), To: c.pos(base + file.Idx(len(c.src)))}
	}
	p.Body = c.stmtList(prog.Body, true)
	return p
}

// stmtList converts a statement list. If prologue is set, the leading
// string literal statements are marked as directives.
func (c *converter) stmtList(list []ast.Statement, prologue bool) []syntax.Stmt {
	stmts := make([]syntax.Stmt, 0, len(list))
	for _, s := range list {
		stmt := c.stmt(s)
		if stmt == nil {
			continue
		}
		if prologue {
			if es, ok := stmt.(*syntax.ExprStmt); ok && c.isDirective(s) {
				es.Directive = directiveText(es.X.(*syntax.Literal).Raw)
			} else {
				prologue = false
			}
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

// isDirective reports whether s is an unparenthesized string literal
// expression statement.
func (c *converter) isDirective(s ast.Statement) bool {
	es, ok := s.(*ast.ExpressionStatement)
	if !ok {
		return false
	}
	lit, ok := es.Expression.(*ast.StringLiteral)
	if !ok {
		return false
	}
	// goja drops parentheses, so look at the preceding source text.
	before := strings.TrimRight(c.src[:c.offset(lit.Idx)], " \t\r\n")
	return !strings.HasSuffix(before, "(")
}

// offset returns the byte offset of idx within the source text.
func (c *converter) offset(idx file.Idx) int {
	off := int(idx) - c.file.Base()
	if off < 0 {
		return 0
	}
	if off > len(c.src) {
		return len(c.src)
	}
	return off
}

func directiveText(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

func (c *converter) block(b *ast.BlockStatement) *syntax.BlockStmt {
	if b == nil {
		return nil
	}
	return &syntax.BlockStmt{Range: c.rng(b), List: c.stmtList(b.List, false)}
}

func (c *converter) stmt(s ast.Statement) syntax.Stmt {
	switch s := s.(type) {
	case *ast.BlockStatement:
		return c.block(s)

	case *ast.EmptyStatement:
		return &syntax.EmptyStmt{Range: c.rng(s)}

	case *ast.DebuggerStatement:
		return &syntax.DebuggerStmt{Range: c.rng(s)}

	case *ast.ExpressionStatement:
		return &syntax.ExprStmt{Range: c.rng(s), X: c.expr(s.Expression)}

	case *ast.VariableStatement:
		return c.varDecl(c.rng(s), syntax.Var, s.List)

	case *ast.LexicalDeclaration:
		return c.varDecl(c.rng(s), lexicalKind(s.Token), s.List)

	case *ast.FunctionDeclaration:
		return &syntax.FuncDecl{Function: c.function(s.Function)}

	case *ast.ClassDeclaration:
		return &syntax.ClassDecl{Class: c.class(s.Class)}

	case *ast.IfStatement:
		stmt := &syntax.IfStmt{Range: c.rng(s), Test: c.expr(s.Test), Cons: c.stmt(s.Consequent)}
		if s.Alternate != nil {
			stmt.Alt = c.stmt(s.Alternate)
		}
		return stmt

	case *ast.ForStatement:
		stmt := &syntax.ForStmt{
			Range:  c.rng(s),
			Test:   c.optExpr(s.Test),
			Update: c.optExpr(s.Update),
			Body:   c.stmt(s.Body),
		}
		switch init := s.Initializer.(type) {
		case nil:
		case *ast.ForLoopInitializerExpression:
			stmt.Init = c.expr(init.Expression)
		case *ast.ForLoopInitializerVarDeclList:
			stmt.Init = c.varDecl(c.bindingsRange(init.List), syntax.Var, init.List)
		case *ast.ForLoopInitializerLexicalDecl:
			decl := init.LexicalDeclaration
			stmt.Init = c.varDecl(c.rng(&decl), lexicalKind(decl.Token), decl.List)
		default:
			panic(fmt.Sprintf("unexpected for initializer %T", init))
		}
		return stmt

	case *ast.ForInStatement:
		return &syntax.ForInStmt{Range: c.rng(s), Left: c.forInto(s.Into), Right: c.expr(s.Source), Body: c.stmt(s.Body)}

	case *ast.ForOfStatement:
		return &syntax.ForInStmt{Range: c.rng(s), Of: true, Left: c.forInto(s.Into), Right: c.expr(s.Source), Body: c.stmt(s.Body)}

	case *ast.WhileStatement:
		return &syntax.WhileStmt{Range: c.rng(s), Test: c.expr(s.Test), Body: c.stmt(s.Body)}

	case *ast.DoWhileStatement:
		return &syntax.DoWhileStmt{Range: c.rng(s), Body: c.stmt(s.Body), Test: c.expr(s.Test)}

	case *ast.BranchStatement:
		tok := syntax.BREAK
		if s.Token == token.CONTINUE {
			tok = syntax.CONTINUE
		}
		return &syntax.BranchStmt{Range: c.rng(s), Token: tok, Label: c.optIdent(s.Label)}

	case *ast.LabelledStatement:
		return &syntax.LabeledStmt{Range: c.rng(s), Label: c.ident(s.Label), Body: c.stmt(s.Statement)}

	case *ast.ReturnStatement:
		return &syntax.ReturnStmt{Range: c.rng(s), Result: c.optExpr(s.Argument)}

	case *ast.ThrowStatement:
		return &syntax.ThrowStmt{Range: c.rng(s), X: c.expr(s.Argument)}

	case *ast.TryStatement:
		stmt := &syntax.TryStmt{Range: c.rng(s), Block: c.block(s.Body), Finalizer: c.block(s.Finally)}
		if s.Catch != nil {
			stmt.Handler = &syntax.CatchClause{Range: c.rng(s.Catch), Body: c.block(s.Catch.Body)}
			if s.Catch.Parameter != nil {
				stmt.Handler.Param = c.pattern(s.Catch.Parameter)
			}
		}
		return stmt

	case *ast.SwitchStatement:
		stmt := &syntax.SwitchStmt{Range: c.rng(s), Discriminant: c.expr(s.Discriminant)}
		for _, cs := range s.Body {
			stmt.Cases = append(stmt.Cases, &syntax.SwitchCase{
				Range: c.caseRange(cs),
				Test:  c.optExpr(cs.Test),
				Body:  c.stmtList(cs.Consequent, false),
			})
		}
		return stmt

	case *ast.WithStatement:
		return &syntax.WithStmt{Range: c.rng(s), Object: c.expr(s.Object), Body: c.stmt(s.Body)}

	case *ast.BadStatement:
		panic(fmt.Sprintf("bad statement at %s", c.pos(s.From)))
	}
	panic(fmt.Sprintf("unexpected statement %T", s))
}

func lexicalKind(tok token.Token) syntax.VarKind {
	if tok == token.CONST {
		return syntax.Const
	}
	return syntax.Let
}

func (c *converter) varDecl(r syntax.Range, kind syntax.VarKind, list []*ast.Binding) *syntax.VarDecl {
	decl := &syntax.VarDecl{Range: r, Kind: kind}
	for _, b := range list {
		decl.List = append(decl.List, &syntax.VarDeclarator{
			Range: c.rng(b),
			ID:    c.pattern(b.Target),
			Init:  c.optExpr(b.Initializer),
		})
	}
	return decl
}

func (c *converter) bindingsRange(list []*ast.Binding) syntax.Range {
	if len(list) == 0 {
		return syntax.Range{}
	}
	return syntax.Range{From: c.pos(list[0].Idx0()), To: c.pos(list[len(list)-1].Idx1())}
}

func (c *converter) forInto(into ast.ForInto) syntax.Node {
	switch into := into.(type) {
	case *ast.ForIntoVar:
		return c.varDecl(c.rng(into.Binding), syntax.Var, []*ast.Binding{into.Binding})
	case *ast.ForDeclaration:
		kind := syntax.Let
		if into.IsConst {
			kind = syntax.Const
		}
		return &syntax.VarDecl{
			Range: c.rng(into.Target),
			Kind:  kind,
			List:  []*syntax.VarDeclarator{{Range: c.rng(into.Target), ID: c.pattern(into.Target)}},
		}
	case *ast.ForIntoExpression:
		return c.pattern(into.Expression)
	}
	panic(fmt.Sprintf("unexpected for-in target %T", into))
}

func (c *converter) ident(id *ast.Identifier) *syntax.Ident {
	return &syntax.Ident{Range: c.rng(id), Name: string(id.Name)}
}

func (c *converter) optIdent(id *ast.Identifier) *syntax.Ident {
	if id == nil {
		return nil
	}
	return c.ident(id)
}

func (c *converter) function(fn *ast.FunctionLiteral) syntax.Function {
	f := syntax.Function{
		Range:     c.rng(fn),
		Name:      c.optIdent(fn.Name),
		Params:    c.params(fn.ParameterList),
		Body:      c.functionBody(fn.Body),
		Async:     fn.Async,
		Generator: fn.Generator,
	}
	return f
}

func (c *converter) functionBody(b *ast.BlockStatement) *syntax.BlockStmt {
	if b == nil {
		return nil
	}
	return &syntax.BlockStmt{Range: c.rng(b), List: c.stmtList(b.List, true)}
}

func (c *converter) params(list *ast.ParameterList) []syntax.Expr {
	if list == nil {
		return nil
	}
	var params []syntax.Expr
	for _, b := range list.List {
		p := c.pattern(b.Target)
		if b.Initializer != nil {
			p = &syntax.AssignPattern{Range: c.rng(b), Left: p, Right: c.expr(b.Initializer)}
		}
		params = append(params, p)
	}
	if list.Rest != nil {
		rest := c.pattern(list.Rest)
		params = append(params, &syntax.RestElement{Range: syntax.Range{From: syntax.Start(rest), To: syntax.End(rest)}, Arg: rest})
	}
	return params
}

func (c *converter) class(cl *ast.ClassLiteral) syntax.Class {
	class := syntax.Class{
		Range:      c.rng(cl),
		Name:       c.optIdent(cl.Name),
		SuperClass: c.optExpr(cl.SuperClass),
	}
	for _, elem := range cl.Body {
		switch e := elem.(type) {
		case *ast.MethodDefinition:
			m := &syntax.MethodDef{
				Range:    c.rng(e),
				Key:      c.propertyKey(e.Key, e.Computed),
				Value:    &syntax.FuncExpr{Function: c.function(e.Body)},
				Computed: e.Computed,
				Static:   e.Static,
			}
			switch e.Kind {
			case ast.PropertyKindGet:
				m.Kind = syntax.Getter
			case ast.PropertyKindSet:
				m.Kind = syntax.Setter
			default:
				if id, ok := e.Key.(*ast.StringLiteral); ok && !e.Static && string(id.Value) == "constructor" {
					m.Kind = syntax.Constructor
				}
				if id, ok := e.Key.(*ast.Identifier); ok && !e.Static && !e.Computed && id.Name == "constructor" {
					m.Kind = syntax.Constructor
				}
			}
			class.Body = append(class.Body, m)
		case *ast.FieldDefinition:
			class.Body = append(class.Body, &syntax.PropertyDef{
				Range:    c.rng(e),
				Key:      c.propertyKey(e.Key, e.Computed),
				Value:    c.optExpr(e.Initializer),
				Computed: e.Computed,
				Static:   e.Static,
			})
		case *ast.ClassStaticBlock:
			var body []syntax.Stmt
			if e.Block != nil {
				body = c.stmtList(e.Block.List, false)
			}
			class.Body = append(class.Body, &syntax.StaticBlock{Range: c.rng(e), Body: body})
		default:
			panic(fmt.Sprintf("unexpected class element %T", e))
		}
	}
	return class
}

// propertyKey converts a property or member key.
func (c *converter) propertyKey(key ast.Expression, computed bool) syntax.Expr {
	if computed {
		return c.expr(key)
	}
	switch k := key.(type) {
	case *ast.Identifier:
		return c.ident(k)
	case *ast.StringLiteral:
		// goja records an unquoted name key as a string literal
		// whose raw text is the name itself.
		if k.Literal != "" && k.Literal[0] != '"' && k.Literal[0] != '\'' {
			return &syntax.Ident{Range: c.rng(k), Name: string(k.Value)}
		}
	case *ast.PrivateIdentifier:
		return &syntax.PrivateName{Range: c.rng(k), Name: string(k.Name)}
	}
	return c.expr(key)
}

func (c *converter) optExpr(x ast.Expression) syntax.Expr {
	if x == nil {
		return nil
	}
	return c.expr(x)
}

func (c *converter) exprs(list []ast.Expression) []syntax.Expr {
	var out []syntax.Expr
	for _, x := range list {
		out = append(out, c.optExpr(x))
	}
	return out
}

func (c *converter) expr(x ast.Expression) syntax.Expr {
	switch x := x.(type) {
	case *ast.Identifier:
		return c.ident(x)

	case *ast.StringLiteral:
		return &syntax.Literal{Range: c.rng(x), Kind: syntax.STRING, Raw: x.Literal, Value: string(x.Value)}

	case *ast.NumberLiteral:
		kind := syntax.NUMBER
		if strings.HasSuffix(x.Literal, "n") {
			kind = syntax.BIGINT
		}
		return &syntax.Literal{Range: c.rng(x), Kind: kind, Raw: x.Literal}

	case *ast.BooleanLiteral:
		return &syntax.Literal{Range: c.rng(x), Kind: syntax.BOOL, Raw: x.Literal}

	case *ast.NullLiteral:
		return &syntax.Literal{Range: c.rng(x), Kind: syntax.NULL, Raw: x.Literal}

	case *ast.RegExpLiteral:
		return &syntax.Literal{Range: c.rng(x), Kind: syntax.REGEXP, Raw: x.Literal}

	case *ast.TemplateLiteral:
		lit := &syntax.TemplateLit{Range: c.rng(x), Exprs: c.exprs(x.Expressions)}
		for _, e := range x.Elements {
			lit.Quasis = append(lit.Quasis, e.Literal)
		}
		if x.Tag != nil {
			return &syntax.TaggedTemplate{Range: c.rng(x), Tag: c.expr(x.Tag), Quasi: lit}
		}
		return lit

	case *ast.ThisExpression:
		return &syntax.ThisExpr{Range: c.rng(x)}

	case *ast.SuperExpression:
		return &syntax.SuperExpr{Range: c.rng(x)}

	case *ast.ArrayLiteral:
		return &syntax.ArrayLit{Range: c.rng(x), Elems: c.exprs(x.Value)}

	case *ast.ObjectLiteral:
		lit := &syntax.ObjectLit{Range: c.rng(x)}
		for _, p := range x.Value {
			lit.Props = append(lit.Props, c.property(p))
		}
		return lit

	case *ast.SpreadElement:
		return &syntax.SpreadElement{Range: c.rng(x), X: c.expr(x.Expression)}

	case *ast.FunctionLiteral:
		return &syntax.FuncExpr{Function: c.function(x)}

	case *ast.ArrowFunctionLiteral:
		fn := syntax.Function{Range: c.rng(x), Params: c.params(x.ParameterList), Async: x.Async}
		switch body := x.Body.(type) {
		case *ast.BlockStatement:
			fn.Body = c.functionBody(body)
		case *ast.ExpressionBody:
			fn.ExprBody = c.expr(body.Expression)
		default:
			panic(fmt.Sprintf("unexpected arrow body %T", body))
		}
		return &syntax.ArrowFunc{Function: fn}

	case *ast.ClassLiteral:
		return &syntax.ClassExpr{Class: c.class(x)}

	case *ast.UnaryExpression:
		switch x.Operator {
		case token.INCREMENT, token.DECREMENT:
			return &syntax.UpdateExpr{Range: c.rng(x), Op: x.Operator.String(), Prefix: !x.Postfix, X: c.expr(x.Operand)}
		}
		return &syntax.UnaryExpr{Range: c.rng(x), Op: x.Operator.String(), X: c.expr(x.Operand)}

	case *ast.BinaryExpression:
		return &syntax.BinaryExpr{Range: c.rng(x), Op: x.Operator.String(), X: c.expr(x.Left), Y: c.expr(x.Right)}

	case *ast.AssignExpression:
		op := "="
		if x.Operator != token.ASSIGN {
			op = x.Operator.String() + "="
		}
		left := c.expr(x.Left)
		if op == "=" {
			left = c.pattern(x.Left)
		}
		return &syntax.AssignExpr{Range: c.rng(x), Op: op, Left: left, Right: c.expr(x.Right)}

	case *ast.ConditionalExpression:
		return &syntax.CondExpr{Range: c.rng(x), Test: c.expr(x.Test), Cons: c.expr(x.Consequent), Alt: c.expr(x.Alternate)}

	case *ast.CallExpression:
		return &syntax.CallExpr{Range: c.rng(x), Callee: c.expr(x.Callee), Args: c.exprs(x.ArgumentList)}

	case *ast.NewExpression:
		return &syntax.NewExpr{Range: c.rng(x), Callee: c.expr(x.Callee), Args: c.exprs(x.ArgumentList)}

	case *ast.DotExpression:
		prop := x.Identifier
		return &syntax.MemberExpr{Range: c.rng(x), Object: c.expr(x.Left), Property: c.ident(&prop)}

	case *ast.PrivateDotExpression:
		id := x.Identifier
		return &syntax.MemberExpr{Range: c.rng(x), Object: c.expr(x.Left), Property: &syntax.PrivateName{Range: c.rng(&id), Name: string(id.Name)}}

	case *ast.BracketExpression:
		return &syntax.MemberExpr{Range: c.rng(x), Object: c.expr(x.Left), Property: c.expr(x.Member), Computed: true}

	case *ast.OptionalChain:
		return &syntax.ChainExpr{Range: c.rng(x), X: c.expr(x.Expression)}

	case *ast.Optional:
		inner := c.expr(x.Expression)
		switch inner := inner.(type) {
		case *syntax.MemberExpr:
			inner.Optional = true
		case *syntax.CallExpr:
			inner.Optional = true
		}
		return inner

	case *ast.SequenceExpression:
		return &syntax.SequenceExpr{Range: c.rng(x), List: c.exprs(x.Sequence)}

	case *ast.YieldExpression:
		return &syntax.YieldExpr{Range: c.rng(x), X: c.optExpr(x.Argument), Delegate: x.Delegate}

	case *ast.AwaitExpression:
		return &syntax.AwaitExpr{Range: c.rng(x), X: c.expr(x.Argument)}

	case *ast.MetaProperty:
		return &syntax.MetaProperty{Range: c.rng(x), Meta: c.ident(x.Meta), Property: c.ident(x.Property)}

	case *ast.ArrayPattern, *ast.ObjectPattern:
		return c.pattern(x)

	case *ast.BadExpression:
		panic(fmt.Sprintf("bad expression at %s", c.pos(x.From)))
	}
	panic(fmt.Sprintf("unexpected expression %T", x))
}

func (c *converter) property(p ast.Property) syntax.Node {
	switch p := p.(type) {
	case *ast.PropertyShort:
		name := p.Name
		id := c.ident(&name)
		prop := &syntax.Property{Range: c.rng(p), Key: id, Value: id, Shorthand: true}
		if p.Initializer != nil {
			prop.Value = &syntax.AssignPattern{Range: c.rng(p), Left: id, Right: c.expr(p.Initializer)}
		}
		return prop
	case *ast.PropertyKeyed:
		prop := &syntax.Property{
			Range:    c.rng(p),
			Key:      c.propertyKey(p.Key, p.Computed),
			Value:    c.expr(p.Value),
			Computed: p.Computed,
		}
		switch p.Kind {
		case ast.PropertyKindGet:
			prop.Kind = syntax.PropGet
		case ast.PropertyKindSet:
			prop.Kind = syntax.PropSet
		case ast.PropertyKindMethod:
			prop.Method = true
		}
		return prop
	case *ast.SpreadElement:
		return &syntax.SpreadElement{Range: c.rng(p), X: c.expr(p.Expression)}
	}
	panic(fmt.Sprintf("unexpected property %T", p))
}

// pattern converts a binding or assignment target.
func (c *converter) pattern(x ast.Expression) syntax.Expr {
	switch x := x.(type) {
	case *ast.Identifier:
		return c.ident(x)

	case *ast.ArrayPattern:
		pat := &syntax.ArrayPattern{Range: c.rng(x)}
		for _, e := range x.Elements {
			if e == nil {
				pat.Elems = append(pat.Elems, nil)
				continue
			}
			pat.Elems = append(pat.Elems, c.pattern(e))
		}
		if x.Rest != nil {
			rest := c.pattern(x.Rest)
			pat.Elems = append(pat.Elems, &syntax.RestElement{Range: syntax.Range{From: syntax.Start(rest), To: syntax.End(rest)}, Arg: rest})
		}
		return pat

	case *ast.ObjectPattern:
		pat := &syntax.ObjectPattern{Range: c.rng(x)}
		for _, p := range x.Properties {
			switch p := p.(type) {
			case *ast.PropertyShort:
				name := p.Name
				id := c.ident(&name)
				prop := &syntax.Property{Range: c.rng(p), Key: id, Value: id, Shorthand: true}
				if p.Initializer != nil {
					prop.Value = &syntax.AssignPattern{Range: c.rng(p), Left: id, Right: c.expr(p.Initializer)}
				}
				pat.Props = append(pat.Props, prop)
			case *ast.PropertyKeyed:
				pat.Props = append(pat.Props, &syntax.Property{
					Range:    c.rng(p),
					Key:      c.propertyKey(p.Key, p.Computed),
					Value:    c.pattern(p.Value),
					Computed: p.Computed,
				})
			default:
				panic(fmt.Sprintf("unexpected pattern property %T", p))
			}
		}
		if x.Rest != nil {
			rest := c.pattern(x.Rest)
			pat.Props = append(pat.Props, &syntax.RestElement{Range: syntax.Range{From: syntax.Start(rest), To: syntax.End(rest)}, Arg: rest})
		}
		return pat

	case *ast.AssignExpression:
		// element with a default value: [a = 1] or {a: b = 1}
		return &syntax.AssignPattern{Range: c.rng(x), Left: c.pattern(x.Left), Right: c.expr(x.Right)}
	}
	// member expressions and other simple targets
	return c.expr(x)
}
