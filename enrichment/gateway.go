// Copyright (C) 2025 opencomply
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package enrichment

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/opencomply/sbomhub/normalize"
	"github.com/opencomply/sbomhub/utils"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize    = 200
	defaultMaxAttempts  = 3
	defaultInitialDelay = 500 * time.Millisecond
	defaultParallelism  = 4
)

// Result summarizes one enrichment pass. A pass never fails the
// pipeline: batches that exhaust their retries are recorded in
// FailedBatches and the affected components simply stay unenriched.
type Result struct {
	EnrichedComponents int
	FindingCount       int
	FailedBatches      int
	TotalBatches       int
}

// Degraded reports whether at least one batch could not be enriched.
func (r Result) Degraded() bool {
	return r.FailedBatches > 0
}

// Gateway enriches a component graph with licenses, latest versions
// and known vulnerabilities from an external analysis service.
type Gateway struct {
	client       Client
	batchSize    int
	maxAttempts  int
	initialDelay time.Duration
	parallelism  int
}

type GatewayOption func(*Gateway)

func WithBatchSize(size int) GatewayOption {
	return func(g *Gateway) { g.batchSize = size }
}

func WithMaxAttempts(attempts int) GatewayOption {
	return func(g *Gateway) { g.maxAttempts = attempts }
}

func WithInitialDelay(delay time.Duration) GatewayOption {
	return func(g *Gateway) { g.initialDelay = delay }
}

func WithParallelism(parallelism int) GatewayOption {
	return func(g *Gateway) { g.parallelism = parallelism }
}

func NewGateway(client Client, opts ...GatewayOption) *Gateway {
	gateway := &Gateway{
		client:       client,
		batchSize:    defaultBatchSize,
		maxAttempts:  defaultMaxAttempts,
		initialDelay: defaultInitialDelay,
		parallelism:  defaultParallelism,
	}
	for _, opt := range opts {
		opt(gateway)
	}
	return gateway
}

// GatewayOptionsFromEnv reads ENRICHMENT_BATCH_SIZE,
// ENRICHMENT_MAX_ATTEMPTS, ENRICHMENT_INITIAL_DELAY and
// ENRICHMENT_PARALLELISM. Unset or unparsable variables keep the
// compiled-in defaults.
func GatewayOptionsFromEnv() []GatewayOption {
	var opts []GatewayOption
	if size, err := strconv.Atoi(os.Getenv("ENRICHMENT_BATCH_SIZE")); err == nil && size > 0 {
		opts = append(opts, WithBatchSize(size))
	}
	if attempts, err := strconv.Atoi(os.Getenv("ENRICHMENT_MAX_ATTEMPTS")); err == nil && attempts > 0 {
		opts = append(opts, WithMaxAttempts(attempts))
	}
	if delay, err := time.ParseDuration(os.Getenv("ENRICHMENT_INITIAL_DELAY")); err == nil && delay > 0 {
		opts = append(opts, WithInitialDelay(delay))
	}
	if parallelism, err := strconv.Atoi(os.Getenv("ENRICHMENT_PARALLELISM")); err == nil && parallelism > 0 {
		opts = append(opts, WithParallelism(parallelism))
	}
	return opts
}

// Enrich mutates the graph in place. Batches run in parallel with a
// bounded errgroup; a cancelled context aborts the pass with the
// context error, everything else degrades instead of failing.
func (g *Gateway) Enrich(ctx context.Context, graph *normalize.ComponentGraph) (Result, error) {
	components := graph.Components()
	if len(components) == 0 {
		return Result{}, nil
	}

	batches := utils.Chunk(components, g.batchSize)

	var mut sync.Mutex
	result := Result{TotalBatches: len(batches)}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.parallelism)

	for _, batch := range batches {
		group.Go(func() error {
			intelligence, err := g.lookupWithRetry(groupCtx, batch)
			if err != nil {
				if groupCtx.Err() != nil {
					return err
				}
				slog.Warn("enrichment batch failed, keeping components unenriched", "batchSize", len(batch), "err", err)
				mut.Lock()
				result.FailedBatches++
				mut.Unlock()
				return nil
			}

			enriched, findings := applyIntelligence(batch, intelligence)
			mut.Lock()
			result.EnrichedComponents += enriched
			result.FindingCount += findings
			mut.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	return result, nil
}

func (g *Gateway) lookupWithRetry(ctx context.Context, batch []*normalize.Component) ([]ComponentIntelligence, error) {
	queries := utils.Map(batch, func(c *normalize.Component) ComponentQuery {
		return ComponentQuery{
			Purl:      c.Purl,
			Name:      c.Name,
			Version:   c.Version,
			Ecosystem: c.Ecosystem,
		}
	})

	delay := g.initialDelay
	var lastErr error
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		intelligence, err := g.client.LookupBatch(ctx, queries)
		if err == nil {
			return intelligence, nil
		}
		lastErr = err

		var lookupErr *LookupError
		if errors.As(err, &lookupErr) && !lookupErr.Retryable {
			return nil, err
		}
		// client timeouts satisfy errors.Is(err, context.DeadlineExceeded)
		// but are transient; only an actually cancelled context aborts
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// applyIntelligence merges service responses into the batch. Responses
// are matched by purl; components without a matching response keep
// their declared data.
func applyIntelligence(batch []*normalize.Component, intelligence []ComponentIntelligence) (int, int) {
	byPurl := make(map[string]ComponentIntelligence, len(intelligence))
	for _, entry := range intelligence {
		byPurl[entry.Purl] = entry
	}

	enriched := 0
	findings := 0
	for _, component := range batch {
		entry, ok := byPurl[component.Purl]
		if !ok {
			continue
		}
		enriched++

		if entry.License != "" {
			component.ConfirmedLicense = utils.Ptr(entry.License)
		}
		if entry.LatestVersion != "" {
			component.LatestVersion = utils.Ptr(entry.LatestVersion)
		}

		for _, advisory := range entry.Advisories {
			finding := normalize.NormalizeFinding(normalize.Finding{
				AdvisoryID: advisory.ID,
				Severity:   advisory.Severity,
				CVSS:       advisory.CVSS,
				Vector:     advisory.Vector,
				Source:     advisory.Source,
			})
			component.Findings = append(component.Findings, finding)
			findings++
		}
	}
	return enriched, findings
}
