// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

package export

import (
	"github.com/assetforge/assetforge/core/asset"
)

// Collection is a disjoint group of assets exported together as one
// output unit. Membership is fixed once the collection is built.
type Collection interface {
	// Name returns the collection's display name.
	Name() string

	// Exportable reports whether the collection should produce output.
	// Non-exportable collections exist only to hold assets that other
	// collections depend on.
	Exportable() bool

	// Assets returns the collection's members.
	Assets() []asset.Asset

	// Export writes the collection under the given output root. A
	// returned error signals per-collection failure and is reported by
	// the pipeline without aborting the run; implementations must not
	// panic for ordinary failures.
	Export(ctx *Context, outputRoot string) error
}

// Settings supplies exporter options. The export machinery passes it
// through to collections without interpreting it.
type Settings interface {
	// Option returns the named exporter option.
	Option(name string) (string, bool)
}

// Context is the state shared across all collections during one export
// run. It is created by the pipeline at the start of Export and must not
// be retained past it. The current-collection cursor is unsynchronized
// shared state: the pipeline is single-threaded and is the only mutator,
// and exporters only read it during their own export step.
type Context struct {
	settings    Settings
	graph       asset.Graph
	collections []Collection
	current     Collection
}

// NewContext returns a context for one export run.
func NewContext(settings Settings, graph asset.Graph, collections []Collection) *Context {
	return &Context{
		settings:    settings,
		graph:       graph,
		collections: collections,
	}
}

// Settings returns the run's exporter settings.
func (ctx *Context) Settings() Settings {
	return ctx.settings
}

// Graph returns the full asset graph being exported.
func (ctx *Context) Graph() asset.Graph {
	return ctx.graph
}

// Collections returns the full partitioned collection list, in export
// order.
func (ctx *Context) Collections() []Collection {
	return ctx.collections
}

// Current returns the collection the pipeline is currently exporting.
// Exporters invoked during a collection's export step may call this to
// learn which collection they are producing output for.
func (ctx *Context) Current() Collection {
	return ctx.current
}

// setCurrent advances the cursor. Only the pipeline calls this.
func (ctx *Context) setCurrent(c Collection) {
	ctx.current = c
}
