// Copyright 2020 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scopeproto exports the scope tree of an analyzed program as a
// protocol message, so that it may be consumed by tools written in
// other languages.
//
// THIS PACKAGE IS EXPERIMENTAL AND ITS FORMAT MAY CHANGE.
//
// The tree is a google.protobuf.Struct of the following shape:
//
//	{
//	  "sourceType": "script",
//	  "global": <scope>,
//	  "free": [<reference>...],
//	  "implicit": [<reference>...]
//	}
//
// where each scope is
//
//	{
//	  "id": 0, "kind": "function", "strict": true,
//	  "block": {"node": "FuncDecl", "line": 1, "col": 1},
//	  "variables": [{"name": "x", "capability": "value",
//	                 "defs": [{"kind": "Variable", "line": 1, "col": 5}]}],
//	  "references": [<reference>...],
//	  "through": ["x"...],
//	  "children": [<scope>...]
//	}
//
// and each reference is
//
//	{"name": "x", "line": 2, "col": 1, "flag": "read",
//	 "value": true, "type": false, "init": false,
//	 "resolved": <scope id>}   // absent if unresolved
//
// Scope ids are indices into (*resolve.Manager).Scopes.
package scopeproto // import "go.esscope.net/scopeproto"

import (
	"fmt"
	"reflect"
	"strings"

	"go.esscope.net/resolve"
	"go.esscope.net/syntax"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/structpb"
)

// Struct returns the scope tree of m as a Struct message.
func Struct(m *resolve.Manager) *structpb.Struct {
	e := encoder{ids: make(map[*resolve.Scope]int, len(m.Scopes))}
	for i, s := range m.Scopes {
		e.ids[s] = i
	}
	sourceType := resolve.Script
	if m.IsModule() {
		sourceType = resolve.Module
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"sourceType": structpb.NewStringValue(sourceType.String()),
		"global":     e.scope(m.Global),
		"free":       e.references(m.Global.Through),
		"implicit":   e.references(m.Global.Implicit),
	}}
}

// Formats lists the encodings accepted by Marshal.
var Formats = []string{"json", "text", "wire"}

// Marshal encodes the scope tree of m in the named format:
// "json" (protojson), "text" (prototext) or "wire" (binary).
func Marshal(m *resolve.Manager, format string) ([]byte, error) {
	var marshal func(protoreflect.ProtoMessage) ([]byte, error)
	switch format {
	case "wire":
		marshal = proto.MarshalOptions{Deterministic: true}.Marshal

	case "text":
		marshal = prototext.MarshalOptions{Multiline: true, Indent: "\t"}.Marshal

	case "json":
		marshal = protojson.MarshalOptions{Multiline: true, Indent: "\t"}.Marshal

	default:
		return nil, fmt.Errorf("unsupported output format %q (want %s)", format, strings.Join(Formats, ", "))
	}
	return marshal(Struct(m))
}

// Unmarshal decodes a tree encoded by Marshal.
func Unmarshal(data []byte, format string) (*structpb.Struct, error) {
	msg := new(structpb.Struct)
	var err error
	switch format {
	case "wire":
		err = proto.Unmarshal(data, msg)
	case "text":
		err = prototext.Unmarshal(data, msg)
	case "json":
		err = protojson.Unmarshal(data, msg)
	default:
		return nil, fmt.Errorf("unsupported output format %q (want %s)", format, strings.Join(Formats, ", "))
	}
	if err != nil {
		return nil, err
	}
	return msg, nil
}

type encoder struct {
	ids map[*resolve.Scope]int
}

func (e *encoder) scope(s *resolve.Scope) *structpb.Value {
	vars := make([]*structpb.Value, len(s.Variables))
	for i, v := range s.Variables {
		vars[i] = e.variable(v)
	}
	through := make([]*structpb.Value, len(s.Through))
	for i, ref := range s.Through {
		through[i] = structpb.NewStringValue(ref.Identifier.Name)
	}
	children := make([]*structpb.Value, len(s.Children))
	for i, child := range s.Children {
		children[i] = e.scope(child)
	}
	return object(map[string]*structpb.Value{
		"id":         number(e.ids[s]),
		"kind":       structpb.NewStringValue(s.Kind.String()),
		"strict":     structpb.NewBoolValue(s.IsStrict),
		"block":      node(s.Block),
		"variables":  list(vars),
		"references": e.references(s.References),
		"through":    list(through),
		"children":   list(children),
	})
}

func (e *encoder) variable(v *resolve.Variable) *structpb.Value {
	defs := make([]*structpb.Value, len(v.Defs))
	for i, def := range v.Defs {
		var pos syntax.Position // injected globals have no position
		if def.Name != nil {
			pos = syntax.Start(def.Name)
		} else if def.Node != nil {
			pos = syntax.Start(def.Node)
		}
		defs[i] = object(map[string]*structpb.Value{
			"kind": structpb.NewStringValue(def.Kind.String()),
			"line": number(int(pos.Line)),
			"col":  number(int(pos.Col)),
		})
	}
	return object(map[string]*structpb.Value{
		"name":       structpb.NewStringValue(v.Name),
		"capability": structpb.NewStringValue(v.Capability().String()),
		"defs":       list(defs),
		"references": number(len(v.References)),
	})
}

func (e *encoder) references(refs []*resolve.Reference) *structpb.Value {
	vals := make([]*structpb.Value, len(refs))
	for i, ref := range refs {
		vals[i] = e.reference(ref)
	}
	return list(vals)
}

func (e *encoder) reference(ref *resolve.Reference) *structpb.Value {
	pos := syntax.Start(ref.Identifier)
	fields := map[string]*structpb.Value{
		"name":  structpb.NewStringValue(ref.Identifier.Name),
		"line":  number(int(pos.Line)),
		"col":   number(int(pos.Col)),
		"flag":  structpb.NewStringValue(flagName(ref.Flag)),
		"value": structpb.NewBoolValue(ref.IsValueReference),
		"type":  structpb.NewBoolValue(ref.IsTypeReference),
		"init":  structpb.NewBoolValue(ref.Init),
	}
	if ref.FromTypeQuery {
		fields["typeof"] = structpb.NewBoolValue(true)
	}
	if ref.Resolved != nil {
		fields["resolved"] = number(e.ids[ref.Resolved.Scope])
	}
	return object(fields)
}

func flagName(f resolve.RefFlag) string {
	switch f {
	case resolve.Read:
		return "read"
	case resolve.Write:
		return "write"
	case resolve.ReadWrite:
		return "readwrite"
	}
	return "none"
}

// node describes the syntax node that opened a scope.
func node(n syntax.Node) *structpb.Value {
	if n == nil {
		return structpb.NewNullValue()
	}
	start := syntax.Start(n)
	return object(map[string]*structpb.Value{
		"node": structpb.NewStringValue(strings.TrimPrefix(reflect.TypeOf(n).String(), "*syntax.")),
		"line": number(int(start.Line)),
		"col":  number(int(start.Col)),
	})
}

func object(fields map[string]*structpb.Value) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: fields})
}

func list(vals []*structpb.Value) *structpb.Value {
	return structpb.NewListValue(&structpb.ListValue{Values: vals})
}

func number(i int) *structpb.Value { return structpb.NewNumberValue(float64(i)) }
