// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

package asset

// Asset is a single exportable domain object. Assets are owned by the
// graph that produced them; the export machinery only holds references.
type Asset interface {
	// ID returns the asset's unique identifier within its graph.
	ID() string

	// Kind returns the asset's declared kind.
	Kind() *Kind

	// Classification returns the asset's classification code, a short
	// domain tag (for example "TX_DIFFUSE") used to group assets of the
	// same kind into one output artifact.
	Classification() string
}

// Graph is the source of assets for an export run. Implementations must
// return assets in a stable order: partitioning follows it, and the
// resulting collection order is a specified property of the export.
type Graph interface {
	// Assets returns every asset in the graph, in stable order.
	Assets() []Asset

	// Related returns the assets that must be co-located with the given
	// asset in one output unit, in declaration order.
	Related(id string) []Asset

	// Lookup returns the asset with the given ID.
	Lookup(id string) (Asset, bool)
}
