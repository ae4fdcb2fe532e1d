// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

// Package export implements the dispatch registry and the orchestration
// pipeline that turn an asset graph into exported collections.
package export

import (
	"github.com/juju/errors"

	"github.com/assetforge/assetforge/core/asset"
)

// Claimed reports whether the named asset has already been assigned to
// a collection earlier in the current partitioning pass. Exporters
// consult it when pulling related assets so that every asset lands in
// exactly one collection.
type Claimed func(id string) bool

// Exporter is the capability the registry dispatches on. An exporter is
// registered against exactly one kind; either predicate may decline,
// causing dispatch to try the next entry in the chain and then the
// chains of the kind's ancestors.
type Exporter interface {
	// Classifies reports whether the exporter can classify the given
	// kind into an output artifact kind. This is a type-level query,
	// independent of any live asset.
	Classifies(kind *asset.Kind) bool

	// Accepts reports whether the exporter can build a collection for
	// this specific asset.
	Accepts(a asset.Asset) bool

	// NewCollection builds the collection owning the given asset. The
	// exporter may pull further related assets into the collection,
	// skipping any the claimed predicate reports as taken; every member
	// is then claimed for this collection by the partitioner. claimed
	// is never nil. Only called after Accepts has returned true for the
	// asset.
	NewCollection(a asset.Asset, claimed Claimed) (Collection, error)
}

// entry is a single registration in a kind's chain.
type entry struct {
	exporter Exporter
	// inherit marks the entry as visible to lookups issued for strict
	// sub-kinds of the declaring kind. Entries with inherit false only
	// answer lookups for the declaring kind itself.
	inherit bool
}

// Registry maps kinds to ordered exporter chains, resolved through the
// kind's ancestry. Not safe for concurrent use: registration is a
// single-threaded setup phase that completes before any export run.
type Registry struct {
	chains map[*asset.Kind][]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{chains: make(map[*asset.Kind][]entry)}
}

// Register inserts the exporter at the front of the kind's chain, so the
// most recent registration is consulted first. Earlier registrations for
// the same kind are shadowed, not removed; they remain reachable when a
// later exporter declines. If allowInheritance is false the entry only
// answers lookups for kind itself, never for its sub-kinds.
func (r *Registry) Register(kind *asset.Kind, exp Exporter, allowInheritance bool) {
	r.chains[kind] = append([]entry{{exporter: exp, inherit: allowInheritance}}, r.chains[kind]...)
}

// resolve walks the chains for the query kind and its ancestors, newest
// registration first, and returns the first exporter accepted by the
// given predicate. The walk is lazy: a chain is only consulted once the
// previous chains are exhausted. A nil return from every chain is a
// not-found error naming the query kind.
func (r *Registry) resolve(query *asset.Kind, accept func(Exporter) bool) (Exporter, error) {
	for kind := query; kind != nil; kind = kind.Parent() {
		for _, e := range r.chains[kind] {
			if kind != query && !e.inherit {
				continue
			}
			if accept(e.exporter) {
				return e.exporter, nil
			}
		}
	}
	return nil, errors.NotFoundf("exporter for kind %q", query.Name())
}

// Classify returns the exporter that classifies the given kind. It is a
// fatal condition for no exporter in the kind's ancestry to answer; the
// returned error satisfies errors.IsNotFound and names the kind.
func (r *Registry) Classify(kind *asset.Kind) (Exporter, error) {
	exp, err := r.resolve(kind, func(e Exporter) bool {
		return e.Classifies(kind)
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return exp, nil
}

// CollectionFor dispatches the asset to the first exporter in its kind's
// resolution order that accepts it, and returns the built collection.
// A nil claimed predicate means no asset is claimed yet.
func (r *Registry) CollectionFor(a asset.Asset, claimed Claimed) (Collection, error) {
	if claimed == nil {
		claimed = func(string) bool { return false }
	}
	exp, err := r.resolve(a.Kind(), func(e Exporter) bool {
		return e.Accepts(a)
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	coll, err := exp.NewCollection(a, claimed)
	if err != nil {
		return nil, errors.Annotatef(err, "building collection for asset %q", a.ID())
	}
	return coll, nil
}
