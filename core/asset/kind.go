// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

// Package asset defines the kind hierarchy and the contracts the export
// machinery consumes: an Asset is an identified, classified member of a
// Graph, and a Kind is the type-identity token dispatch is keyed on.
package asset

import (
	"github.com/juju/errors"
)

// Kind identifies a nominal asset type. Kinds form a single-inheritance
// hierarchy rooted at Object; dispatch walks the parent chain when no
// exporter answers for the kind itself.
type Kind struct {
	name   string
	parent *Kind
}

// kindIndex maps kind names to declared kinds so manifests can refer to
// kinds by name. Populated by NewKind during package init; never mutated
// afterwards.
var kindIndex = make(map[string]*Kind)

// NewKind declares a kind with the given name under the given parent.
// The root kind is declared with a nil parent. Declaring two kinds with
// the same name panics; kinds are program structure, not runtime data.
func NewKind(name string, parent *Kind) *Kind {
	if _, ok := kindIndex[name]; ok {
		panic(errors.Errorf("kind %q already declared", name))
	}
	k := &Kind{name: name, parent: parent}
	kindIndex[name] = k
	return k
}

// KindNamed returns the declared kind with the given name.
func KindNamed(name string) (*Kind, bool) {
	k, ok := kindIndex[name]
	return k, ok
}

// Name returns the kind's declared name.
func (k *Kind) Name() string {
	return k.name
}

// Parent returns the kind's declared parent, or nil for the root kind.
func (k *Kind) Parent() *Kind {
	return k.parent
}

// IsA reports whether k is other or a descendant of other.
func (k *Kind) IsA(other *Kind) bool {
	for cur := k; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (k *Kind) String() string {
	return k.name
}

// The built-in kind hierarchy. External packages may declare further
// sub-kinds under any of these.
var (
	// Object is the root of the hierarchy; every asset kind descends
	// from it.
	Object = NewKind("object", nil)

	// Resource covers assets that carry an opaque binary payload.
	Resource = NewKind("resource", Object)
	Texture  = NewKind("texture", Resource)
	Audio    = NewKind("audio", Resource)

	// Record covers structured data assets.
	Record   = NewKind("record", Object)
	Script   = NewKind("script", Record)
	Dialogue = NewKind("dialogue", Record)

	// Table covers lookup data that other assets depend on but which is
	// never exported on its own.
	Table = NewKind("table", Object)
)
