// Copyright 2025 opencomply.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var IngestionsStarted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sbomhub_ingestions_started_total",
	Help: "Total number of started ingestion pipeline runs",
})

var IngestionsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sbomhub_ingestions_completed_total",
	Help: "Total number of completed ingestion pipeline runs by terminal status",
}, []string{"status"})

var IngestionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "sbomhub_ingestion_duration_seconds",
	Help:    "Duration of the full ingestion pipeline in seconds",
	Buckets: prometheus.DefBuckets,
})

var EnrichmentBatchesFailed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sbomhub_enrichment_batches_failed_total",
	Help: "Total number of enrichment batches that exhausted their retries",
})

var ComponentsPersisted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sbomhub_components_persisted_total",
	Help: "Total number of component rows written by the pipeline",
})
