// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

// AddGlobals declares the names of the execution environment (such
// as window or require) in the global scope and binds to them the
// value references left unresolved by the analysis. Type references
// stay unresolved: environments supply values only.
//
// Names already declared in the global scope are left alone, as are
// empty and repeated names, so the result does not depend on the
// order of names. A call without any non-empty name is a no-op.
// Otherwise AddGlobals may be called once per Manager; later calls
// change nothing and return ErrGlobalsFinalized.
func (m *Manager) AddGlobals(names []string) error {
	if m.finalized {
		return ErrGlobalsFinalized
	}
	for _, name := range names {
		if name != "" {
			m.finalized = true
			break
		}
	}
	if !m.finalized {
		return nil
	}

	g := m.Global
	added := make(map[string]*Variable)
	for _, name := range names {
		if name == "" || g.Set[name] != nil {
			continue
		}
		v := g.declare(name)
		v.addDef(&Definition{Kind: ImplicitGlobalDef, Capability: Value})
		added[name] = v
	}
	if len(added) == 0 {
		return nil
	}

	through := g.Through[:0]
	for _, ref := range g.Through {
		if v := added[ref.Identifier.Name]; v != nil && v.accepts(ref) {
			ref.Resolved = v
			v.References = append(v.References, ref)
			continue
		}
		through = append(through, ref)
	}
	g.Through = through

	implicit := g.Implicit[:0]
	for _, ref := range g.Implicit {
		if ref.Resolved == nil {
			implicit = append(implicit, ref)
		}
	}
	g.Implicit = implicit
	return nil
}
