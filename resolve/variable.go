// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import "go.esscope.net/syntax"

// A DefKind classifies a Definition.
type DefKind uint8

const (
	VariableDef          DefKind = iota // var, let or const declarator
	ParameterDef                        // function parameter
	FunctionNameDef                     // function declaration or named function expression
	ClassNameDef                        // class declaration or named class expression
	CatchClauseDef                      // catch parameter
	ImportBindingDef                    // import specifier or import x = ...
	TypeDef                             // type alias, interface or type parameter
	TSEnumNameDef                       // enum declaration
	TSEnumMemberDef                     // enum member
	TSModuleNameDef                     // namespace or module declaration
	ImplicitGlobalDef                   // variable injected by AddGlobals
	ImplicitArgumentsDef                // the arguments object of a function
)

var defKindNames = [...]string{
	VariableDef:          "Variable",
	ParameterDef:         "Parameter",
	FunctionNameDef:      "FunctionName",
	ClassNameDef:         "ClassName",
	CatchClauseDef:       "CatchClause",
	ImportBindingDef:     "ImportBinding",
	TypeDef:              "Type",
	TSEnumNameDef:        "TSEnumName",
	TSEnumMemberDef:      "TSEnumMember",
	TSModuleNameDef:      "TSModuleName",
	ImplicitGlobalDef:    "ImplicitGlobal",
	ImplicitArgumentsDef: "ImplicitArguments",
}

func (k DefKind) String() string { return defKindNames[k] }

// A Capability says what kind of meaning a definition gives its name.
type Capability uint8

const (
	Value Capability = 1 << iota // the name denotes a run-time value
	Type                         // the name denotes a type
	Both  = Value | Type
)

func (c Capability) String() string {
	switch c {
	case Value:
		return "value"
	case Type:
		return "type"
	case Both:
		return "value+type"
	}
	return "none"
}

// A Definition is one declaration of a Variable.
type Definition struct {
	Kind       DefKind
	Capability Capability

	// Name is the declared identifier. It is nil for variables that
	// no source text declares, such as injected globals and the
	// arguments object.
	Name *syntax.Ident

	// Node is the declaring node: a declarator, a function, a class, a
	// catch clause, an import specifier, and so on. Parent is the node
	// that contains it when that node also declares, such as the
	// VarDecl of a declarator or the ImportDecl of a specifier.
	Node   syntax.Node
	Parent syntax.Node

	// For VariableDef, the declaration kind.
	VarKind syntax.VarKind

	// For ParameterDef, whether the parameter is a rest parameter.
	Rest bool
}

// A Variable is a named binding within a single scope. Repeated
// declarations of a name in one scope merge into one Variable with
// several definitions; the variable is value-capable (type-capable)
// if any of its definitions is.
type Variable struct {
	Name  string
	Scope *Scope

	// Identifiers lists the declaring identifiers, in declaration order.
	Identifiers []*syntax.Ident
	Defs        []*Definition

	// References lists the references bound to this variable.
	References []*Reference

	capability Capability
}

// HasValueDef reports whether the variable has a value-capable definition.
func (v *Variable) HasValueDef() bool { return v.capability&Value != 0 }

// HasTypeDef reports whether the variable has a type-capable definition.
func (v *Variable) HasTypeDef() bool { return v.capability&Type != 0 }

// Capability returns the union of the capabilities of its definitions.
func (v *Variable) Capability() Capability { return v.capability }

func (v *Variable) addDef(def *Definition) {
	v.Defs = append(v.Defs, def)
	if def.Name != nil {
		v.Identifiers = append(v.Identifiers, def.Name)
	}
	v.capability |= def.Capability
}

// accepts reports whether ref may bind to v.
func (v *Variable) accepts(ref *Reference) bool {
	return ref.IsValueReference && v.HasValueDef() || ref.IsTypeReference && v.HasTypeDef()
}
