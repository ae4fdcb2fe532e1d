// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

package export

import (
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/juju/pubsub/v2"

	"github.com/assetforge/assetforge/core/asset"
)

var logger = loggo.GetLogger("assetforge.export")

// PipelineConfig holds the dependencies a Pipeline needs.
type PipelineConfig struct {
	// Registry dispatches assets to exporters during partitioning.
	Registry *Registry

	// Hub carries the pipeline's lifecycle and progress notifications.
	Hub *pubsub.SimpleHub

	// Clock times the run.
	Clock clock.Clock
}

// Validate returns an error if the configuration is incomplete.
func (config PipelineConfig) Validate() error {
	if config.Registry == nil {
		return errors.NotValidf("nil Registry")
	}
	if config.Hub == nil {
		return errors.NotValidf("nil Hub")
	}
	if config.Clock == nil {
		return errors.NotValidf("nil Clock")
	}
	return nil
}

// Pipeline sequences a full export run: partition the graph once, then
// export the resulting collections in order, tolerating per-collection
// failure. A pipeline runs single-threaded and synchronous; collection
// exports share one Context whose current-collection cursor would race
// under concurrent execution.
type Pipeline struct {
	config  PipelineConfig
	builder *CollectionBuilder
}

// NewPipeline returns a pipeline for the given configuration.
func NewPipeline(config PipelineConfig) (*Pipeline, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &Pipeline{
		config:  config,
		builder: NewCollectionBuilder(config.Registry),
	}, nil
}

// publish sends a notification and waits until every subscriber has
// processed it, so observers receive events in pipeline order before
// the run proceeds. Publish hands back a wait function for exactly
// this purpose.
func (p *Pipeline) publish(topic string, data interface{}) {
	p.config.Hub.Publish(topic, data)()
}

// Export partitions the graph's assets into collections and exports
// them under outputRoot in partition order.
//
// A dispatch failure during partitioning (an asset the registry cannot
// classify) is fatal and aborts the run before any collection is
// exported. A failure from an individual collection's export step is
// logged, reported once on the progress topic, and does not stop the
// run; the finished notification fires exactly once regardless.
func (p *Pipeline) Export(graph asset.Graph, settings Settings, outputRoot string) error {
	start := p.config.Clock.Now()
	assets := graph.Assets()

	p.publish(TopicPreparationStarted, PreparationStarted{Assets: len(assets)})
	collections, err := p.builder.Partition(assets)
	if err != nil {
		return errors.Trace(err)
	}
	p.publish(TopicPreparationFinished, PreparationFinished{Collections: len(collections)})

	ctx := NewContext(settings, graph, collections)

	exportable := 0
	for _, coll := range collections {
		if coll.Exportable() {
			exportable++
		}
	}
	logger.Infof("exporting %d of %d collections to %q", exportable, len(collections), outputRoot)
	p.publish(TopicExportStarted, Started{
		Collections: len(collections),
		Exportable:  exportable,
	})

	seq, failed := 0, 0
	for i, coll := range collections {
		ctx.setCurrent(coll)
		exported, collFailed := false, false
		if coll.Exportable() {
			seq++
			logger.Infof("exporting collection %q (%d of %d)", coll.Name(), seq, exportable)
			if err := coll.Export(ctx, outputRoot); err != nil {
				logger.Errorf("collection %q failed to export: %v", coll.Name(), err)
				failed++
				collFailed = true
			} else {
				exported = true
			}
		} else {
			logger.Debugf("skipping non-exportable collection %q", coll.Name())
		}
		p.publish(TopicProgress, Progress{
			Index:    i,
			Total:    len(collections),
			Name:     coll.Name(),
			Exported: exported,
			Failed:   collFailed,
		})
	}
	ctx.setCurrent(nil)

	elapsed := p.config.Clock.Now().Sub(start)
	if failed > 0 {
		logger.Warningf("export finished in %v with %d of %d collections failed", elapsed, failed, exportable)
	} else {
		logger.Infof("export finished in %v", elapsed)
	}
	p.publish(TopicExportFinished, Finished{
		Collections: len(collections),
		Exportable:  exportable,
		Failed:      failed,
		Elapsed:     elapsed,
	})
	return nil
}
