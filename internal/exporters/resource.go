// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

package exporters

import (
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/assetforge/assetforge/core/asset"
	"github.com/assetforge/assetforge/core/export"
)

// ResourceExporter groups a resource asset with its related resources
// into one collection and writes their payloads out verbatim.
type ResourceExporter struct {
	graph  asset.Graph
	prefix string
}

// NewResourceExporter returns an exporter writing payloads under the
// given subdirectory of the output root.
func NewResourceExporter(graph asset.Graph, prefix string) *ResourceExporter {
	return &ResourceExporter{graph: graph, prefix: prefix}
}

// Classifies is part of export.Exporter.
func (e *ResourceExporter) Classifies(kind *asset.Kind) bool {
	return kind.IsA(asset.Resource)
}

// Accepts is part of export.Exporter.
func (e *ResourceExporter) Accepts(a asset.Asset) bool {
	return a.Kind().IsA(asset.Resource)
}

// NewCollection is part of export.Exporter. Related resource assets
// are pulled into the seed's collection so they land in one output
// unit, unless an earlier collection has already claimed them.
func (e *ResourceExporter) NewCollection(a asset.Asset, claimed export.Claimed) (export.Collection, error) {
	members := []asset.Asset{a}
	seen := set.NewStrings(a.ID())
	for _, rel := range e.graph.Related(a.ID()) {
		if !rel.Kind().IsA(asset.Resource) || seen.Contains(rel.ID()) || claimed(rel.ID()) {
			continue
		}
		seen.Add(rel.ID())
		members = append(members, rel)
	}
	return &resourceCollection{
		name:    "resource:" + a.ID(),
		members: members,
		prefix:  e.prefix,
	}, nil
}

type resourceCollection struct {
	name    string
	members []asset.Asset
	prefix  string
}

// Name is part of export.Collection.
func (c *resourceCollection) Name() string {
	return c.name
}

// Exportable is part of export.Collection.
func (c *resourceCollection) Exportable() bool {
	return true
}

// Assets is part of export.Collection.
func (c *resourceCollection) Assets() []asset.Asset {
	return c.members
}

// Export is part of export.Collection. Each member's payload is written
// to its own file under the resource prefix.
func (c *resourceCollection) Export(ctx *export.Context, outputRoot string) error {
	dir := filepath.Join(outputRoot, c.prefix)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Trace(err)
	}
	var total uint64
	for _, member := range c.members {
		carrier, ok := member.(PayloadCarrier)
		if !ok || len(carrier.Payload()) == 0 {
			return errors.Errorf("resource %q has no payload", member.ID())
		}
		path := filepath.Join(dir, member.ID())
		if err := os.WriteFile(path, carrier.Payload(), 0644); err != nil {
			return errors.Annotatef(err, "writing resource %q", member.ID())
		}
		total += uint64(len(carrier.Payload()))
	}
	logger.Debugf("collection %q wrote %s in %d files", c.name, humanize.Bytes(total), len(c.members))
	return nil
}
