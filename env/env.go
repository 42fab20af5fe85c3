// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env defines named sets of predeclared global variables,
// one for each environment a program may be written for.
//
// A client passes the names of an environment to
// (*resolve.Manager).AddGlobals so that references to the host's
// globals do not appear as free variables.
//
//	names, err := env.Parse("browser,es2021")
//	...
//	err = m.AddGlobals(names)
package env // import "go.esscope.net/env"

import (
	"fmt"
	"sort"
	"strings"
)

// A Set is a named collection of global variable names.
// A set also provides the globals of each set it includes.
type Set struct {
	Name     string
	Includes []string
	Globals  []string
}

// All returns the globals of s and of the sets it includes, sorted
// and without duplicates.
func (s *Set) All() []string {
	seen := make(map[string]bool)
	var names []string
	var visit func(s *Set)
	visit = func(s *Set) {
		for _, inc := range s.Includes {
			visit(sets[inc])
		}
		for _, name := range s.Globals {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	visit(s)
	sort.Strings(names)
	return names
}

// Lookup returns the set of the given name.
func Lookup(name string) (*Set, bool) {
	s, ok := sets[name]
	return s, ok
}

// Names returns the names of all sets, in sorted order.
func Names() []string {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Globals returns the union of the globals of the named sets,
// sorted and without duplicates.
func Globals(names ...string) ([]string, error) {
	seen := make(map[string]bool)
	var all []string
	for _, name := range names {
		s, ok := sets[name]
		if !ok {
			return nil, fmt.Errorf("unknown environment %q (want one of %s)", name, strings.Join(Names(), ", "))
		}
		for _, g := range s.All() {
			if !seen[g] {
				seen[g] = true
				all = append(all, g)
			}
		}
	}
	sort.Strings(all)
	return all, nil
}

// Parse returns the globals of a comma-separated list of set names,
// such as the value of a command-line flag. Empty elements are ignored.
func Parse(list string) ([]string, error) {
	var names []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return Globals(names...)
}

var sets = map[string]*Set{
	"builtin": {
		Name: "builtin",
		Globals: []string{
			"Array", "Boolean", "Date", "Error", "EvalError", "Function",
			"Infinity", "Math", "NaN", "Number", "Object", "RangeError",
			"ReferenceError", "RegExp", "String", "SyntaxError", "TypeError",
			"URIError", "decodeURI", "decodeURIComponent", "encodeURI",
			"encodeURIComponent", "escape", "eval", "isFinite", "isNaN",
			"parseFloat", "parseInt", "undefined", "unescape",
		},
	},
	"es5": {
		Name:     "es5",
		Includes: []string{"builtin"},
		Globals:  []string{"JSON"},
	},
	"es2015": {
		Name:     "es2015",
		Includes: []string{"es5"},
		Globals: []string{
			"ArrayBuffer", "DataView", "Float32Array", "Float64Array",
			"Int16Array", "Int32Array", "Int8Array", "Map", "Promise",
			"Proxy", "Reflect", "Set", "Symbol", "Uint16Array",
			"Uint32Array", "Uint8Array", "Uint8ClampedArray", "WeakMap",
			"WeakSet",
		},
	},
	"es2017": {
		Name:     "es2017",
		Includes: []string{"es2015"},
		Globals:  []string{"Atomics", "SharedArrayBuffer"},
	},
	"es2020": {
		Name:     "es2020",
		Includes: []string{"es2017"},
		Globals:  []string{"BigInt", "BigInt64Array", "BigUint64Array", "globalThis"},
	},
	"es2021": {
		Name:     "es2021",
		Includes: []string{"es2020"},
		Globals:  []string{"AggregateError", "FinalizationRegistry", "WeakRef"},
	},
	"browser": {
		Name: "browser",
		Globals: []string{
			"AbortController", "AbortSignal", "Audio", "Blob", "CustomEvent",
			"Element", "Event", "EventTarget", "File", "FileReader",
			"FormData", "HTMLElement", "Headers", "Image",
			"IntersectionObserver", "MutationObserver", "Node", "Request",
			"Response", "TextDecoder", "TextEncoder", "URL",
			"URLSearchParams", "WebSocket", "Worker", "XMLHttpRequest",
			"alert", "atob", "btoa", "cancelAnimationFrame", "clearInterval",
			"clearTimeout", "confirm", "console", "crypto", "document",
			"fetch", "frames", "getComputedStyle", "history",
			"localStorage", "location", "matchMedia", "navigator", "parent",
			"performance", "prompt", "queueMicrotask",
			"requestAnimationFrame", "screen", "self", "sessionStorage",
			"setInterval", "setTimeout", "structuredClone", "top", "window",
		},
	},
	"commonjs": {
		Name:    "commonjs",
		Globals: []string{"exports", "global", "module", "require"},
	},
	"node": {
		Name:     "node",
		Includes: []string{"commonjs"},
		Globals: []string{
			"AbortController", "AbortSignal", "Buffer", "TextDecoder",
			"TextEncoder", "URL", "URLSearchParams", "__dirname",
			"__filename", "clearImmediate", "clearInterval", "clearTimeout",
			"console", "fetch", "performance", "process", "queueMicrotask",
			"setImmediate", "setInterval", "setTimeout", "structuredClone",
		},
	},
	"worker": {
		Name: "worker",
		Globals: []string{
			"caches", "clearInterval", "clearTimeout", "close", "console",
			"fetch", "importScripts", "indexedDB", "location", "navigator",
			"onmessage", "postMessage", "self", "setInterval", "setTimeout",
		},
	},
	"jest": {
		Name: "jest",
		Globals: []string{
			"afterAll", "afterEach", "beforeAll", "beforeEach", "describe",
			"expect", "fit", "it", "jest", "test", "xdescribe", "xit",
			"xtest",
		},
	},
}
