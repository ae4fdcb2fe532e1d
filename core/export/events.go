// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

package export

import (
	"time"
)

// Topics published by the pipeline over its notification hub. Multiple
// independent observers may subscribe; the pipeline waits for delivery
// of each publication before proceeding, so subscribers see events in
// pipeline order.
const (
	// TopicPreparationStarted fires before the asset graph is
	// partitioned into collections.
	TopicPreparationStarted = "export.preparation-started"

	// TopicPreparationFinished fires once partitioning has completed
	// successfully. It does not fire if partitioning fails.
	TopicPreparationFinished = "export.preparation-finished"

	// TopicExportStarted fires before the first collection is
	// processed.
	TopicExportStarted = "export.started"

	// TopicProgress fires after every collection, exportable or not.
	TopicProgress = "export.progress"

	// TopicExportFinished fires exactly once after the last collection,
	// however many individual collections failed.
	TopicExportFinished = "export.finished"
)

// PreparationStarted is the payload for TopicPreparationStarted.
type PreparationStarted struct {
	// Assets is the number of assets in the input graph.
	Assets int
}

// PreparationFinished is the payload for TopicPreparationFinished.
type PreparationFinished struct {
	// Collections is the number of collections partitioning produced.
	Collections int
}

// Started is the payload for TopicExportStarted.
type Started struct {
	// Collections is the total number of collections to process.
	Collections int
	// Exportable is how many of them will actually produce output; it
	// is the denominator for human-readable progress reporting.
	Exportable int
}

// Progress is the payload for TopicProgress.
type Progress struct {
	// Index is the zero-based position of the collection just
	// processed, in partition order.
	Index int
	// Total is the total number of collections.
	Total int
	// Name is the collection's display name.
	Name string
	// Exported is true if the collection produced output successfully.
	// It is false for non-exportable collections and for failures.
	Exported bool
	// Failed is true if the collection's export step reported failure.
	Failed bool
}

// Finished is the payload for TopicExportFinished.
type Finished struct {
	// Collections is the total number of collections processed.
	Collections int
	// Exportable is how many were due to produce output.
	Exportable int
	// Failed is how many exportable collections reported failure.
	Failed int
	// Elapsed is the wall-clock duration of the whole run, including
	// preparation.
	Elapsed time.Duration
}
