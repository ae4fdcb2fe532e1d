// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

package export

import (
	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/assetforge/assetforge/core/asset"
)

// CollectionBuilder partitions an asset sequence into disjoint
// collections using the registry for dispatch.
type CollectionBuilder struct {
	registry *Registry
}

// NewCollectionBuilder returns a builder dispatching on the given
// registry.
func NewCollectionBuilder(registry *Registry) *CollectionBuilder {
	return &CollectionBuilder{registry: registry}
}

// Partition walks the assets once, in the given order, and groups every
// asset into exactly one collection. An exporter may pull related assets
// into the collection it builds; those are claimed immediately, any
// later occurrence of a claimed asset in the input is skipped, and the
// exporter is handed the claimed set so it leaves already-claimed
// assets where they are. A collection that claims an asset some earlier
// collection owns is an error, as is an asset whose kind resolves to no
// exporter: partitioning is all-or-nothing.
//
// Collection order follows the first-encounter order of each
// collection's seed asset, so partitioning the same sequence twice
// yields collections in the same relative order.
func (b *CollectionBuilder) Partition(assets []asset.Asset) ([]Collection, error) {
	queued := set.NewStrings()
	var collections []Collection
	for _, a := range assets {
		if queued.Contains(a.ID()) {
			// Already claimed by an earlier collection.
			continue
		}
		coll, err := b.registry.CollectionFor(a, queued.Contains)
		if err != nil {
			return nil, errors.Annotatef(err, "partitioning asset %q of kind %q", a.ID(), a.Kind().Name())
		}
		for _, member := range coll.Assets() {
			if queued.Contains(member.ID()) {
				return nil, errors.Errorf(
					"collection %q claims already-assigned asset %q", coll.Name(), member.ID())
			}
			queued.Add(member.ID())
		}
		if !queued.Contains(a.ID()) {
			return nil, errors.Errorf(
				"collection %q built for asset %q does not contain it", coll.Name(), a.ID())
		}
		collections = append(collections, coll)
	}
	return collections, nil
}
