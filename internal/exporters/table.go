// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

package exporters

import (
	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/assetforge/assetforge/core/asset"
	"github.com/assetforge/assetforge/core/export"
)

// TableExporter claims lookup tables into non-exportable placeholder
// collections. Tables exist only as dependencies of other assets; they
// must be partitioned so coverage holds, but they never produce output
// of their own.
type TableExporter struct {
	graph asset.Graph
}

// NewTableExporter returns an exporter for lookup tables.
func NewTableExporter(graph asset.Graph) *TableExporter {
	return &TableExporter{graph: graph}
}

// Classifies is part of export.Exporter.
func (e *TableExporter) Classifies(kind *asset.Kind) bool {
	return kind.IsA(asset.Table)
}

// Accepts is part of export.Exporter.
func (e *TableExporter) Accepts(a asset.Asset) bool {
	return a.Kind().IsA(asset.Table)
}

// NewCollection is part of export.Exporter. Related tables are grouped
// into the same placeholder so they are claimed in one step.
func (e *TableExporter) NewCollection(a asset.Asset, claimed export.Claimed) (export.Collection, error) {
	members := []asset.Asset{a}
	seen := set.NewStrings(a.ID())
	for _, rel := range e.graph.Related(a.ID()) {
		if !rel.Kind().IsA(asset.Table) || seen.Contains(rel.ID()) || claimed(rel.ID()) {
			continue
		}
		seen.Add(rel.ID())
		members = append(members, rel)
	}
	return &tableCollection{
		name:    "tables:" + a.ID(),
		members: members,
	}, nil
}

type tableCollection struct {
	name    string
	members []asset.Asset
}

// Name is part of export.Collection.
func (c *tableCollection) Name() string {
	return c.name
}

// Exportable is part of export.Collection. Always false: the
// collection is a placeholder holding dependency assets.
func (c *tableCollection) Exportable() bool {
	return false
}

// Assets is part of export.Collection.
func (c *tableCollection) Assets() []asset.Asset {
	return c.members
}

// Export is part of export.Collection. The pipeline never invokes it
// for non-exportable collections; reaching here is a programming error.
func (c *tableCollection) Export(ctx *export.Context, outputRoot string) error {
	return errors.Errorf("placeholder collection %q is not exportable", c.name)
}
