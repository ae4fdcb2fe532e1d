// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

// Package exporters holds the built-in exporter implementations the
// dispatch registry hands assets to, and the collections they build.
package exporters

import (
	"github.com/juju/loggo"

	"github.com/assetforge/assetforge/core/asset"
	"github.com/assetforge/assetforge/core/export"
	"github.com/assetforge/assetforge/internal/config"
)

var logger = loggo.GetLogger("assetforge.exporters")

// PayloadCarrier is implemented by assets that carry a binary payload.
type PayloadCarrier interface {
	Payload() []byte
}

// AttrCarrier is implemented by assets that carry an attribute map.
type AttrCarrier interface {
	Attributes() map[string]interface{}
}

// RegisterAll registers the built-in exporters. Generic exporters are
// registered before specific ones: registration pushes to the front of
// a kind's chain, so the most specific registration is consulted first
// and the generic ones remain as fallbacks.
func RegisterAll(registry *export.Registry, graph asset.Graph, cfg *config.Config) {
	registry.Register(asset.Record, NewRecordExporter(graph, cfg.RecordPrefix()), true)
	registry.Register(asset.Resource, NewResourceExporter(graph, cfg.ResourcePrefix()), true)
	registry.Register(asset.Table, NewTableExporter(graph), true)
	// Scripts with source text get their own treatment; the entry does
	// not inherit, so sub-kinds of script would still resolve to the
	// generic record exporter.
	registry.Register(asset.Script, NewScriptExporter(cfg.RecordPrefix()), false)
}
