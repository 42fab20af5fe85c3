// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Walk traverses a syntax tree in depth-first order, visiting children
// in source order. It starts by calling f(n); n must not be nil. If f
// returns true, Walk calls itself recursively for each non-nil child of
// n. Walk then calls f(nil).
func Walk(n Node, f func(Node) bool) {
	if n == nil {
		panic("nil")
	}
	if !f(n) {
		return
	}

	switch n := n.(type) {
	case *Program:
		walkStmts(n.Body, f)

	// statements

	case *ExprStmt:
		Walk(n.X, f)

	case *BlockStmt:
		walkStmts(n.List, f)

	case *EmptyStmt, *DebuggerStmt:
		// no-op

	case *VarDecl:
		for _, d := range n.List {
			Walk(d, f)
		}

	case *VarDeclarator:
		Walk(n.ID, f)
		walkExpr(n.Init, f)

	case *FuncDecl:
		walkFunction(&n.Function, f)

	case *ClassDecl:
		walkClass(&n.Class, f)

	case *IfStmt:
		Walk(n.Test, f)
		Walk(n.Cons, f)
		if n.Alt != nil {
			Walk(n.Alt, f)
		}

	case *ForStmt:
		if n.Init != nil {
			Walk(n.Init, f)
		}
		walkExpr(n.Test, f)
		walkExpr(n.Update, f)
		Walk(n.Body, f)

	case *ForInStmt:
		Walk(n.Left, f)
		Walk(n.Right, f)
		Walk(n.Body, f)

	case *WhileStmt:
		Walk(n.Test, f)
		Walk(n.Body, f)

	case *DoWhileStmt:
		Walk(n.Body, f)
		Walk(n.Test, f)

	case *BranchStmt:
		walkIdent(n.Label, f)

	case *LabeledStmt:
		Walk(n.Label, f)
		Walk(n.Body, f)

	case *ReturnStmt:
		walkExpr(n.Result, f)

	case *ThrowStmt:
		Walk(n.X, f)

	case *TryStmt:
		Walk(n.Block, f)
		if n.Handler != nil {
			Walk(n.Handler, f)
		}
		if n.Finalizer != nil {
			Walk(n.Finalizer, f)
		}

	case *CatchClause:
		walkExpr(n.Param, f)
		Walk(n.Body, f)

	case *SwitchStmt:
		Walk(n.Discriminant, f)
		for _, c := range n.Cases {
			Walk(c, f)
		}

	case *SwitchCase:
		walkExpr(n.Test, f)
		walkStmts(n.Body, f)

	case *WithStmt:
		Walk(n.Object, f)
		Walk(n.Body, f)

	case *ImportDecl:
		for _, s := range n.Specifiers {
			Walk(s, f)
		}
		Walk(n.Source, f)

	case *ImportSpec:
		if n.Imported != nil && n.Imported != n.Local {
			Walk(n.Imported, f)
		}
		Walk(n.Local, f)

	case *ExportNamedDecl:
		if n.Decl != nil {
			Walk(n.Decl, f)
		}
		for _, s := range n.Specifiers {
			Walk(s, f)
		}
		if n.Source != nil {
			Walk(n.Source, f)
		}

	case *ExportSpec:
		Walk(n.Local, f)
		if n.Exported != nil && n.Exported != n.Local {
			Walk(n.Exported, f)
		}

	case *ExportDefaultDecl:
		Walk(n.Decl, f)

	case *ExportAllDecl:
		walkIdent(n.Exported, f)
		Walk(n.Source, f)

	case *ExportAssignment:
		Walk(n.X, f)

	case *TypeAliasDecl:
		Walk(n.Name, f)
		walkTypeParams(n.TypeParams, f)
		Walk(n.Type, f)

	case *InterfaceDecl:
		Walk(n.Name, f)
		walkTypeParams(n.TypeParams, f)
		for _, e := range n.Extends {
			Walk(e, f)
		}
		for _, m := range n.Body {
			Walk(m, f)
		}

	case *EnumDecl:
		Walk(n.Name, f)
		for _, m := range n.Members {
			Walk(m, f)
		}

	case *EnumMember:
		Walk(n.ID, f)
		walkExpr(n.Init, f)

	case *ModuleDecl:
		walkExpr(n.Name, f)
		if n.Body != nil {
			Walk(n.Body, f)
		}

	case *ImportEqualsDecl:
		Walk(n.ID, f)
		Walk(n.Ref, f)

	// class members

	case *MethodDef:
		walkDecorators(n.Decorators, f)
		Walk(n.Key, f)
		Walk(n.Value, f)

	case *PropertyDef:
		walkDecorators(n.Decorators, f)
		Walk(n.Key, f)
		walkType(n.Type, f)
		walkExpr(n.Value, f)

	case *StaticBlock:
		walkStmts(n.Body, f)

	case *Decorator:
		Walk(n.X, f)

	// expressions

	case *Ident:
		walkType(n.Type, f)

	case *PrivateName, *Literal, *ThisExpr, *SuperExpr:
		// no-op

	case *TemplateLit:
		walkExprs(n.Exprs, f)

	case *TaggedTemplate:
		Walk(n.Tag, f)
		walkTypes(n.TypeArgs, f)
		Walk(n.Quasi, f)

	case *ArrayLit:
		walkExprs(n.Elems, f)

	case *ObjectLit:
		for _, p := range n.Props {
			Walk(p, f)
		}

	case *Property:
		if n.Shorthand {
			Walk(n.Value, f)
		} else {
			Walk(n.Key, f)
			Walk(n.Value, f)
		}

	case *SpreadElement:
		Walk(n.X, f)

	case *FuncExpr:
		walkFunction(&n.Function, f)

	case *ArrowFunc:
		walkFunction(&n.Function, f)

	case *ClassExpr:
		walkClass(&n.Class, f)

	case *UnaryExpr:
		Walk(n.X, f)

	case *UpdateExpr:
		Walk(n.X, f)

	case *BinaryExpr:
		Walk(n.X, f)
		Walk(n.Y, f)

	case *AssignExpr:
		Walk(n.Left, f)
		Walk(n.Right, f)

	case *CondExpr:
		Walk(n.Test, f)
		Walk(n.Cons, f)
		Walk(n.Alt, f)

	case *CallExpr:
		Walk(n.Callee, f)
		walkTypes(n.TypeArgs, f)
		walkExprs(n.Args, f)

	case *NewExpr:
		Walk(n.Callee, f)
		walkTypes(n.TypeArgs, f)
		walkExprs(n.Args, f)

	case *MemberExpr:
		Walk(n.Object, f)
		Walk(n.Property, f)

	case *ChainExpr:
		Walk(n.X, f)

	case *SequenceExpr:
		walkExprs(n.List, f)

	case *YieldExpr:
		walkExpr(n.X, f)

	case *AwaitExpr:
		Walk(n.X, f)

	case *MetaProperty:
		Walk(n.Meta, f)
		Walk(n.Property, f)

	case *ImportExpr:
		Walk(n.Source, f)

	case *ObjectPattern:
		for _, p := range n.Props {
			Walk(p, f)
		}
		walkType(n.Type, f)

	case *ArrayPattern:
		walkExprs(n.Elems, f)
		walkType(n.Type, f)

	case *RestElement:
		Walk(n.Arg, f)
		walkType(n.Type, f)

	case *AssignPattern:
		Walk(n.Left, f)
		Walk(n.Right, f)

	case *AsExpr:
		Walk(n.X, f)
		Walk(n.Type, f)

	case *TypeAssertion:
		Walk(n.Type, f)
		Walk(n.X, f)

	case *NonNullExpr:
		Walk(n.X, f)

	case *Instantiation:
		Walk(n.X, f)
		walkTypes(n.TypeArgs, f)

	case *ParamProp:
		Walk(n.Param, f)

	case *QualifiedName:
		Walk(n.Left, f)
		Walk(n.Right, f)

	case *ExternalModuleRef:
		Walk(n.Module, f)

	// types

	case *TypeParamList:
		for _, p := range n.Params {
			Walk(p, f)
		}

	case *TypeParam:
		Walk(n.Name, f)
		walkType(n.Constraint, f)
		walkType(n.Default, f)

	case *KeywordType, *ThisType:
		// no-op

	case *TypeRef:
		Walk(n.Name, f)
		walkTypes(n.TypeArgs, f)

	case *TypeQuery:
		Walk(n.X, f)
		walkTypes(n.TypeArgs, f)

	case *ImportType:
		Walk(n.Arg, f)
		walkExpr(n.Qualifier, f)
		walkTypes(n.TypeArgs, f)

	case *TypeLit:
		for _, m := range n.Members {
			Walk(m, f)
		}

	case *ArrayType:
		Walk(n.Elem, f)

	case *TupleType:
		walkTypes(n.Elems, f)

	case *NamedTupleMember:
		Walk(n.Label, f)
		Walk(n.Elem, f)

	case *OptionalType:
		Walk(n.Elem, f)

	case *RestType:
		Walk(n.Elem, f)

	case *ParenType:
		Walk(n.Elem, f)

	case *UnionType:
		walkTypes(n.Types, f)

	case *IntersectionType:
		walkTypes(n.Types, f)

	case *FuncType:
		walkTypeParams(n.TypeParams, f)
		walkExprs(n.Params, f)
		walkType(n.Return, f)

	case *ConditionalType:
		Walk(n.Check, f)
		Walk(n.Extends, f)
		Walk(n.True, f)
		Walk(n.False, f)

	case *InferType:
		Walk(n.Param, f)

	case *MappedType:
		Walk(n.Param, f)
		walkType(n.NameType, f)
		walkType(n.Type, f)

	case *IndexedAccessType:
		Walk(n.Object, f)
		Walk(n.Index, f)

	case *TypeOperator:
		Walk(n.Type, f)

	case *LiteralType:
		Walk(n.Lit, f)

	case *TemplateLitType:
		walkTypes(n.Types, f)

	case *TypePredicate:
		Walk(n.Param, f)
		walkType(n.Type, f)

	case *PropertySig:
		Walk(n.Key, f)
		walkType(n.Type, f)

	case *MethodSig:
		Walk(n.Key, f)
		walkTypeParams(n.TypeParams, f)
		walkExprs(n.Params, f)
		walkType(n.Return, f)

	case *CallSig:
		walkTypeParams(n.TypeParams, f)
		walkExprs(n.Params, f)
		walkType(n.Return, f)

	case *IndexSig:
		walkExprs(n.Params, f)
		walkType(n.Type, f)

	default:
		panic(n)
	}

	f(nil)
}

func walkStmts(stmts []Stmt, f func(Node) bool) {
	for _, stmt := range stmts {
		Walk(stmt, f)
	}
}

// walkExprs visits each non-nil expression; array holes are nil.
func walkExprs(exprs []Expr, f func(Node) bool) {
	for _, x := range exprs {
		walkExpr(x, f)
	}
}

func walkExpr(x Expr, f func(Node) bool) {
	if x != nil {
		Walk(x, f)
	}
}

func walkIdent(id *Ident, f func(Node) bool) {
	if id != nil {
		Walk(id, f)
	}
}

func walkType(t TypeNode, f func(Node) bool) {
	if t != nil {
		Walk(t, f)
	}
}

func walkTypes(types []TypeNode, f func(Node) bool) {
	for _, t := range types {
		Walk(t, f)
	}
}

func walkTypeParams(list *TypeParamList, f func(Node) bool) {
	if list != nil {
		Walk(list, f)
	}
}

func walkDecorators(decorators []*Decorator, f func(Node) bool) {
	for _, d := range decorators {
		Walk(d, f)
	}
}

func walkFunction(fn *Function, f func(Node) bool) {
	walkIdent(fn.Name, f)
	walkTypeParams(fn.TypeParams, f)
	walkExprs(fn.Params, f)
	walkType(fn.ReturnType, f)
	if fn.Body != nil {
		Walk(fn.Body, f)
	}
	walkExpr(fn.ExprBody, f)
}

func walkClass(c *Class, f func(Node) bool) {
	walkDecorators(c.Decorators, f)
	walkIdent(c.Name, f)
	walkTypeParams(c.TypeParams, f)
	walkExpr(c.SuperClass, f)
	walkTypes(c.SuperTypeArgs, f)
	for _, impl := range c.Implements {
		Walk(impl, f)
	}
	for _, m := range c.Body {
		Walk(m, f)
	}
}

// Parents returns a map from each node reachable from root to its
// parent. The root has no entry.
func Parents(root Node) map[Node]Node {
	parents := make(map[Node]Node)
	var stack []Node
	Walk(root, func(n Node) bool {
		if n == nil {
			stack = stack[:len(stack)-1]
			return true
		}
		if len(stack) > 0 {
			parents[n] = stack[len(stack)-1]
		}
		stack = append(stack, n)
		return true
	})
	return parents
}
