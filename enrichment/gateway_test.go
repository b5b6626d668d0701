package enrichment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/opencomply/sbomhub/manifest"
	"github.com/opencomply/sbomhub/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	mut       sync.Mutex
	calls     int
	responses func(call int, queries []ComponentQuery) ([]ComponentIntelligence, error)
}

func (s *stubClient) LookupBatch(ctx context.Context, queries []ComponentQuery) ([]ComponentIntelligence, error) {
	s.mut.Lock()
	s.calls++
	call := s.calls
	s.mut.Unlock()
	return s.responses(call, queries)
}

func buildTestGraph(t *testing.T, components ...manifest.ProvisionalComponent) *normalize.ComponentGraph {
	t.Helper()
	graph, err := normalize.BuildGraph(components)
	require.NoError(t, err)
	return graph
}

func TestEnrich(t *testing.T) {
	t.Run("should merge licenses and findings into the graph", func(t *testing.T) {
		graph := buildTestGraph(t,
			manifest.ProvisionalComponent{Name: "lodash", Version: "4.17.20", Ecosystem: "npm"},
		)
		purl := graph.Components()[0].Purl

		client := &stubClient{responses: func(_ int, queries []ComponentQuery) ([]ComponentIntelligence, error) {
			return []ComponentIntelligence{{
				Purl:          purl,
				License:       "MIT",
				LatestVersion: "4.17.21",
				Advisories: []AdvisoryEntry{
					{ID: "CVE-2021-23337", Severity: "HIGH", CVSS: 7.2, Source: "NVD"},
				},
			}}, nil
		}}

		result, err := NewGateway(client).Enrich(context.Background(), graph)
		require.NoError(t, err)

		assert.Equal(t, 1, result.EnrichedComponents)
		assert.Equal(t, 1, result.FindingCount)
		assert.False(t, result.Degraded())

		component := graph.Components()[0]
		require.NotNil(t, component.ConfirmedLicense)
		assert.Equal(t, "MIT", *component.ConfirmedLicense)
		require.Len(t, component.Findings, 1)
		assert.Equal(t, "high", component.Findings[0].Severity)
	})

	t.Run("should keep unknown components unenriched", func(t *testing.T) {
		graph := buildTestGraph(t,
			manifest.ProvisionalComponent{Name: "internal-lib", Version: "0.0.1", Ecosystem: "npm"},
		)

		client := &stubClient{responses: func(_ int, _ []ComponentQuery) ([]ComponentIntelligence, error) {
			return nil, nil
		}}

		result, err := NewGateway(client).Enrich(context.Background(), graph)
		require.NoError(t, err)

		assert.Zero(t, result.EnrichedComponents)
		assert.False(t, result.Degraded())
		assert.Nil(t, graph.Components()[0].ConfirmedLicense)
	})

	t.Run("should retry transient failures with backoff", func(t *testing.T) {
		graph := buildTestGraph(t,
			manifest.ProvisionalComponent{Name: "flask", Version: "3.0.0", Ecosystem: "pypi"},
		)
		purl := graph.Components()[0].Purl

		client := &stubClient{responses: func(call int, _ []ComponentQuery) ([]ComponentIntelligence, error) {
			if call < 3 {
				return nil, &LookupError{Retryable: true, Inner: errors.New("503 Service Unavailable")}
			}
			return []ComponentIntelligence{{Purl: purl, License: "BSD-3-Clause"}}, nil
		}}

		result, err := NewGateway(client, WithInitialDelay(time.Millisecond)).Enrich(context.Background(), graph)
		require.NoError(t, err)

		assert.Equal(t, 3, client.calls)
		assert.Equal(t, 1, result.EnrichedComponents)
		assert.False(t, result.Degraded())
	})

	t.Run("should not retry terminal failures", func(t *testing.T) {
		graph := buildTestGraph(t,
			manifest.ProvisionalComponent{Name: "flask", Version: "3.0.0", Ecosystem: "pypi"},
		)

		client := &stubClient{responses: func(_ int, _ []ComponentQuery) ([]ComponentIntelligence, error) {
			return nil, &LookupError{Retryable: false, Inner: errors.New("401 Unauthorized")}
		}}

		result, err := NewGateway(client, WithInitialDelay(time.Millisecond)).Enrich(context.Background(), graph)
		require.NoError(t, err)

		assert.Equal(t, 1, client.calls)
		assert.Equal(t, 1, result.FailedBatches)
		assert.True(t, result.Degraded())
	})

	t.Run("should degrade per batch instead of failing the pass", func(t *testing.T) {
		components := make([]manifest.ProvisionalComponent, 0, 4)
		for _, name := range []string{"a", "b", "c", "d"} {
			components = append(components, manifest.ProvisionalComponent{Name: name, Version: "1.0.0", Ecosystem: "npm"})
		}
		graph := buildTestGraph(t, components...)

		var mut sync.Mutex
		failed := false
		client := &stubClient{responses: func(_ int, queries []ComponentQuery) ([]ComponentIntelligence, error) {
			mut.Lock()
			defer mut.Unlock()
			// fail exactly one of the two batches
			if !failed {
				failed = true
				return nil, &LookupError{Retryable: true, Inner: errors.New("500 Internal Server Error")}
			}
			return []ComponentIntelligence{{Purl: queries[0].Purl, License: "Apache-2.0"}}, nil
		}}

		result, err := NewGateway(client, WithBatchSize(2), WithMaxAttempts(1)).Enrich(context.Background(), graph)
		require.NoError(t, err)

		assert.Equal(t, 2, result.TotalBatches)
		assert.Equal(t, 1, result.FailedBatches)
		assert.Equal(t, 1, result.EnrichedComponents)
	})

	t.Run("should retry attempt timeouts and degrade when they persist", func(t *testing.T) {
		graph := buildTestGraph(t,
			manifest.ProvisionalComponent{Name: "flask", Version: "3.0.0", Ecosystem: "pypi"},
		)

		// http.Client timeouts unwrap to context.DeadlineExceeded even
		// though nobody cancelled the pass
		client := &stubClient{responses: func(_ int, _ []ComponentQuery) ([]ComponentIntelligence, error) {
			return nil, fmt.Errorf("Post %q: %w (Client.Timeout exceeded while awaiting headers)", "http://analysis.local/v1/component/batch", context.DeadlineExceeded)
		}}

		result, err := NewGateway(client, WithInitialDelay(time.Millisecond)).Enrich(context.Background(), graph)
		require.NoError(t, err)

		assert.Equal(t, 3, client.calls)
		assert.Equal(t, 1, result.FailedBatches)
		assert.Equal(t, 1, result.TotalBatches)
		assert.True(t, result.Degraded())
	})

	t.Run("should abort on a cancelled context", func(t *testing.T) {
		graph := buildTestGraph(t,
			manifest.ProvisionalComponent{Name: "flask", Version: "3.0.0", Ecosystem: "pypi"},
		)

		ctx, cancel := context.WithCancel(context.Background())
		client := &stubClient{responses: func(_ int, _ []ComponentQuery) ([]ComponentIntelligence, error) {
			cancel()
			return nil, ctx.Err()
		}}

		_, err := NewGateway(client).Enrich(ctx, graph)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("should do nothing for an empty graph", func(t *testing.T) {
		graph := normalize.NewGraph()
		client := &stubClient{responses: func(_ int, _ []ComponentQuery) ([]ComponentIntelligence, error) {
			t.Fatal("no lookup expected")
			return nil, nil
		}}

		result, err := NewGateway(client).Enrich(context.Background(), graph)
		require.NoError(t, err)
		assert.Zero(t, result.TotalBatches)
		assert.Zero(t, client.calls)
	})
}

func TestGatewayOptionsFromEnv(t *testing.T) {
	t.Run("should keep the defaults for unset or unparsable variables", func(t *testing.T) {
		t.Setenv("ENRICHMENT_BATCH_SIZE", "-1")
		t.Setenv("ENRICHMENT_MAX_ATTEMPTS", "plenty")
		t.Setenv("ENRICHMENT_INITIAL_DELAY", "")
		t.Setenv("ENRICHMENT_PARALLELISM", "")

		gateway := NewGateway(&stubClient{}, GatewayOptionsFromEnv()...)

		assert.Equal(t, defaultBatchSize, gateway.batchSize)
		assert.Equal(t, defaultMaxAttempts, gateway.maxAttempts)
		assert.Equal(t, defaultInitialDelay, gateway.initialDelay)
		assert.Equal(t, defaultParallelism, gateway.parallelism)
	})

	t.Run("should apply the tuning variables", func(t *testing.T) {
		t.Setenv("ENRICHMENT_BATCH_SIZE", "50")
		t.Setenv("ENRICHMENT_MAX_ATTEMPTS", "5")
		t.Setenv("ENRICHMENT_INITIAL_DELAY", "250ms")
		t.Setenv("ENRICHMENT_PARALLELISM", "2")

		gateway := NewGateway(&stubClient{}, GatewayOptionsFromEnv()...)

		assert.Equal(t, 50, gateway.batchSize)
		assert.Equal(t, 5, gateway.maxAttempts)
		assert.Equal(t, 250*time.Millisecond, gateway.initialDelay)
		assert.Equal(t, 2, gateway.parallelism)
	})
}
