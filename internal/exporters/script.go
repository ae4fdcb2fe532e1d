// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

package exporters

import (
	"os"
	"path/filepath"

	"github.com/juju/errors"

	"github.com/assetforge/assetforge/core/asset"
	"github.com/assetforge/assetforge/core/export"
)

// sourceAttr is the attribute a script's source text lives under.
const sourceAttr = "source"

// ScriptExporter writes scripts that carry source text to standalone
// files. It is registered for the script kind only, without
// inheritance, and declines scripts with no source so the chain falls
// through to the generic record exporter.
type ScriptExporter struct {
	prefix string
}

// NewScriptExporter returns an exporter writing scripts under the
// given subdirectory of the output root.
func NewScriptExporter(prefix string) *ScriptExporter {
	return &ScriptExporter{prefix: prefix}
}

// Classifies is part of export.Exporter.
func (e *ScriptExporter) Classifies(kind *asset.Kind) bool {
	return kind == asset.Script
}

// Accepts is part of export.Exporter. A script with no source text is
// declined; dispatch then tries the rest of the chain.
func (e *ScriptExporter) Accepts(a asset.Asset) bool {
	if a.Kind() != asset.Script {
		return false
	}
	return scriptSource(a) != ""
}

// NewCollection is part of export.Exporter. Scripts export alone, so
// the claimed set is never consulted.
func (e *ScriptExporter) NewCollection(a asset.Asset, _ export.Claimed) (export.Collection, error) {
	return &scriptCollection{
		name:   "script:" + a.ID(),
		script: a,
		prefix: e.prefix,
	}, nil
}

func scriptSource(a asset.Asset) string {
	carrier, ok := a.(AttrCarrier)
	if !ok {
		return ""
	}
	source, _ := carrier.Attributes()[sourceAttr].(string)
	return source
}

type scriptCollection struct {
	name   string
	script asset.Asset
	prefix string
}

// Name is part of export.Collection.
func (c *scriptCollection) Name() string {
	return c.name
}

// Exportable is part of export.Collection.
func (c *scriptCollection) Exportable() bool {
	return true
}

// Assets is part of export.Collection.
func (c *scriptCollection) Assets() []asset.Asset {
	return []asset.Asset{c.script}
}

// Export is part of export.Collection.
func (c *scriptCollection) Export(ctx *export.Context, outputRoot string) error {
	dir := filepath.Join(outputRoot, c.prefix)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Trace(err)
	}
	path := filepath.Join(dir, c.script.ID()+".script")
	if err := os.WriteFile(path, []byte(scriptSource(c.script)), 0644); err != nil {
		return errors.Annotatef(err, "writing script %q", c.script.ID())
	}
	return nil
}
