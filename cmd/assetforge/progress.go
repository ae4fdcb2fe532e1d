// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"
	"io"

	"github.com/juju/pubsub/v2"

	"github.com/assetforge/assetforge/core/export"
)

// subscribeProgressPrinter attaches a plain-text progress reporter to
// the pipeline's notification topics. The returned function removes
// the subscriptions.
func subscribeProgressPrinter(hub *pubsub.SimpleHub, w io.Writer) func() {
	var unsubs []func()
	sub := func(topic string, handler func(string, interface{})) {
		unsubs = append(unsubs, hub.Subscribe(topic, handler))
	}

	sub(export.TopicPreparationStarted, func(_ string, data interface{}) {
		started := data.(export.PreparationStarted)
		fmt.Fprintf(w, "partitioning %d assets\n", started.Assets)
	})
	sub(export.TopicExportStarted, func(_ string, data interface{}) {
		started := data.(export.Started)
		fmt.Fprintf(w, "exporting %d of %d collections\n", started.Exportable, started.Collections)
	})
	sub(export.TopicProgress, func(_ string, data interface{}) {
		progress := data.(export.Progress)
		switch {
		case progress.Failed:
			fmt.Fprintf(w, "[%d/%d] %s FAILED\n", progress.Index+1, progress.Total, progress.Name)
		case progress.Exported:
			fmt.Fprintf(w, "[%d/%d] %s\n", progress.Index+1, progress.Total, progress.Name)
		default:
			fmt.Fprintf(w, "[%d/%d] %s (skipped)\n", progress.Index+1, progress.Total, progress.Name)
		}
	})
	sub(export.TopicExportFinished, func(_ string, data interface{}) {
		finished := data.(export.Finished)
		if finished.Failed > 0 {
			fmt.Fprintf(w, "done: %d of %d collections failed (%v)\n",
				finished.Failed, finished.Exportable, finished.Elapsed)
		} else {
			fmt.Fprintf(w, "done: %d collections exported (%v)\n",
				finished.Exportable, finished.Elapsed)
		}
	})

	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
