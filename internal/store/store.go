// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

// Package store provides an in-memory asset graph, loaded from a YAML
// manifest, that feeds the export pipeline.
package store

import (
	"github.com/juju/errors"

	"github.com/assetforge/assetforge/core/asset"
)

// Entry is a concrete asset held by a Store. Beyond the core contract
// it carries an optional binary payload and a free-form attribute map;
// exporters reach these through the PayloadCarrier and AttrCarrier
// upgrades without widening the core Asset interface.
type Entry struct {
	id      string
	kind    *asset.Kind
	class   string
	payload []byte
	attrs   map[string]interface{}
}

// NewEntry returns an asset with the given identity.
func NewEntry(id string, kind *asset.Kind, classification string) *Entry {
	return &Entry{id: id, kind: kind, class: classification}
}

// WithPayload sets the entry's binary payload and returns the entry.
func (e *Entry) WithPayload(payload []byte) *Entry {
	e.payload = payload
	return e
}

// WithAttributes sets the entry's attribute map and returns the entry.
func (e *Entry) WithAttributes(attrs map[string]interface{}) *Entry {
	e.attrs = attrs
	return e
}

// ID is part of asset.Asset.
func (e *Entry) ID() string {
	return e.id
}

// Kind is part of asset.Asset.
func (e *Entry) Kind() *asset.Kind {
	return e.kind
}

// Classification is part of asset.Asset.
func (e *Entry) Classification() string {
	return e.class
}

// Payload returns the entry's binary payload, which may be empty.
func (e *Entry) Payload() []byte {
	return e.payload
}

// Attributes returns the entry's attribute map, which may be nil.
func (e *Entry) Attributes() map[string]interface{} {
	return e.attrs
}

// Store is an insertion-ordered asset graph. It implements asset.Graph;
// the order assets were added is the order Assets returns them in, and
// so the order the pipeline partitions them in.
type Store struct {
	order   []asset.Asset
	byID    map[string]*Entry
	related map[string][]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		byID:    make(map[string]*Entry),
		related: make(map[string][]string),
	}
}

// Add inserts the entry at the end of the store's order. Adding two
// entries with the same ID is an error.
func (s *Store) Add(e *Entry) error {
	if _, ok := s.byID[e.id]; ok {
		return errors.AlreadyExistsf("asset %q", e.id)
	}
	s.byID[e.id] = e
	s.order = append(s.order, e)
	return nil
}

// Relate declares that the assets named by ids must be co-located with
// the asset named by id in one output unit. Both ends must already be
// in the store.
func (s *Store) Relate(id string, ids ...string) error {
	if _, ok := s.byID[id]; !ok {
		return errors.NotFoundf("asset %q", id)
	}
	for _, other := range ids {
		if _, ok := s.byID[other]; !ok {
			return errors.NotFoundf("related asset %q of %q", other, id)
		}
	}
	s.related[id] = append(s.related[id], ids...)
	return nil
}

// Assets is part of asset.Graph.
func (s *Store) Assets() []asset.Asset {
	return append([]asset.Asset(nil), s.order...)
}

// Related is part of asset.Graph.
func (s *Store) Related(id string) []asset.Asset {
	ids := s.related[id]
	if len(ids) == 0 {
		return nil
	}
	result := make([]asset.Asset, 0, len(ids))
	for _, other := range ids {
		result = append(result, s.byID[other])
	}
	return result
}

// Lookup is part of asset.Graph.
func (s *Store) Lookup(id string) (asset.Asset, bool) {
	e, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return e, true
}

// Len returns the number of assets in the store.
func (s *Store) Len() int {
	return len(s.order)
}
