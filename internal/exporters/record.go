// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

package exporters

import (
	"os"
	"path/filepath"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/naturalsort"
	"gopkg.in/yaml.v2"

	"github.com/assetforge/assetforge/core/asset"
	"github.com/assetforge/assetforge/core/export"
)

// RecordExporter groups a record asset with the related records that
// share its classification into one YAML document.
type RecordExporter struct {
	graph  asset.Graph
	prefix string
}

// NewRecordExporter returns an exporter writing documents under the
// given subdirectory of the output root.
func NewRecordExporter(graph asset.Graph, prefix string) *RecordExporter {
	return &RecordExporter{graph: graph, prefix: prefix}
}

// Classifies is part of export.Exporter.
func (e *RecordExporter) Classifies(kind *asset.Kind) bool {
	return kind.IsA(asset.Record)
}

// Accepts is part of export.Exporter.
func (e *RecordExporter) Accepts(a asset.Asset) bool {
	return a.Kind().IsA(asset.Record)
}

// NewCollection is part of export.Exporter.
func (e *RecordExporter) NewCollection(a asset.Asset, claimed export.Claimed) (export.Collection, error) {
	members := []asset.Asset{a}
	seen := set.NewStrings(a.ID())
	for _, rel := range e.graph.Related(a.ID()) {
		if !rel.Kind().IsA(asset.Record) || rel.Classification() != a.Classification() {
			continue
		}
		if seen.Contains(rel.ID()) || claimed(rel.ID()) {
			continue
		}
		seen.Add(rel.ID())
		members = append(members, rel)
	}
	name := "records:" + a.ID()
	if a.Classification() != "" {
		name = "records:" + a.Classification()
	}
	return &recordCollection{
		name:    name,
		seed:    a,
		members: members,
		prefix:  e.prefix,
	}, nil
}

type recordCollection struct {
	name    string
	seed    asset.Asset
	members []asset.Asset
	prefix  string
}

// Name is part of export.Collection.
func (c *recordCollection) Name() string {
	return c.name
}

// Exportable is part of export.Collection.
func (c *recordCollection) Exportable() bool {
	return true
}

// Assets is part of export.Collection.
func (c *recordCollection) Assets() []asset.Asset {
	return c.members
}

// recordDocument is the YAML shape a record collection exports as.
type recordDocument struct {
	Collection     string        `yaml:"collection"`
	Classification string        `yaml:"classification,omitempty"`
	Records        []recordEntry `yaml:"records"`
}

type recordEntry struct {
	ID         string                 `yaml:"id"`
	Kind       string                 `yaml:"kind"`
	Attributes map[string]interface{} `yaml:"attributes,omitempty"`
}

// Export is part of export.Collection. Members are naturally sorted in
// the document so "rec2" comes before "rec10"; the document header
// carries the name of the collection the pipeline is currently
// exporting, read back from the shared context cursor.
func (c *recordCollection) Export(ctx *export.Context, outputRoot string) error {
	byID := make(map[string]asset.Asset, len(c.members))
	ids := make([]string, 0, len(c.members))
	for _, member := range c.members {
		byID[member.ID()] = member
		ids = append(ids, member.ID())
	}
	naturalsort.Sort(ids)

	doc := recordDocument{
		Collection:     ctx.Current().Name(),
		Classification: c.seed.Classification(),
	}
	for _, id := range ids {
		member := byID[id]
		entry := recordEntry{ID: id, Kind: member.Kind().Name()}
		if carrier, ok := member.(AttrCarrier); ok {
			entry.Attributes = carrier.Attributes()
		}
		doc.Records = append(doc.Records, entry)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Trace(err)
	}

	dir := filepath.Join(outputRoot, c.prefix)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Trace(err)
	}
	filename := c.seed.ID()
	if c.seed.Classification() != "" {
		filename = c.seed.Classification()
	}
	path := filepath.Join(dir, filename+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Annotatef(err, "writing record document %q", filename)
	}
	logger.Debugf("collection %q wrote %d records to %q", c.name, len(doc.Records), path)
	return nil
}
