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
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/opencomply/sbomhub/database/models"
	"github.com/opencomply/sbomhub/dtos"
	"github.com/opencomply/sbomhub/enrichment"
	"github.com/opencomply/sbomhub/mocks"
	"github.com/opencomply/sbomhub/utils"
)

var goModArtifact = []byte(`module example.com/service

go 1.23

require (
	github.com/spf13/cobra v1.8.0
	github.com/google/uuid v1.6.0
)
`)

type pipelineMocks struct {
	projectRepository   *mocks.ProjectRepository
	snapshotRepository  *mocks.SnapshotRepository
	componentRepository *mocks.ComponentRepository
	findingRepository   *mocks.FindingRepository
	enrichmentGateway   *mocks.EnrichmentGateway
	artifactStore       *mocks.ArtifactStore
}

func newPipelineService(t *testing.T) (*pipelineService, pipelineMocks) {
	m := pipelineMocks{
		projectRepository:   mocks.NewProjectRepository(t),
		snapshotRepository:  mocks.NewSnapshotRepository(t),
		componentRepository: mocks.NewComponentRepository(t),
		findingRepository:   mocks.NewFindingRepository(t),
		enrichmentGateway:   mocks.NewEnrichmentGateway(t),
		artifactStore:       mocks.NewArtifactStore(t),
	}
	// synchronous processing keeps the background pipeline observable
	svc := NewPipelineService(
		m.projectRepository,
		m.snapshotRepository,
		m.componentRepository,
		m.findingRepository,
		m.enrichmentGateway,
		m.artifactStore,
		utils.NewSyncFireAndForgetSynchronizer(),
	)
	return svc, m
}

// passThroughTransactions makes the snapshot repository run lock and
// transaction callbacks inline, as the real repository would.
func passThroughTransactions(m pipelineMocks) {
	m.snapshotRepository.On("Transaction", mock.Anything).Return(func(f func(tx *gorm.DB) error) error {
		return f(nil)
	})
	m.snapshotRepository.On("WithProjectLock", mock.Anything, mock.Anything).Return(func(_ uuid.UUID, f func() error) error {
		return f()
	})
}

func expectStatusTransition(m pipelineMocks, to models.SnapshotStatus) {
	m.snapshotRepository.On("UpdateStatus", mock.Anything, mock.Anything, to).Return(func(_ *gorm.DB, snapshot *models.Snapshot, status models.SnapshotStatus) error {
		snapshot.Status = status
		return nil
	})
}

func TestSubmit(t *testing.T) {
	callerID := uuid.New()
	projectID := uuid.New()
	snapshotID := uuid.New()

	t.Run("should reject an empty artifact", func(t *testing.T) {
		svc, _ := newPipelineService(t)

		_, err := svc.Submit(context.Background(), callerID, dtos.IngestRequest{ProjectName: "billing"}, nil)

		assert.Error(t, err)
		httpErr := err.(*echo.HTTPError)
		assert.Equal(t, 400, httpErr.Code)
	})

	t.Run("should reject an unknown language hint", func(t *testing.T) {
		svc, _ := newPipelineService(t)

		hint := "cobol"
		_, err := svc.Submit(context.Background(), callerID, dtos.IngestRequest{ProjectName: "billing", LanguageHint: &hint}, goModArtifact)

		assert.Error(t, err)
		httpErr := err.(*echo.HTTPError)
		assert.Equal(t, 400, httpErr.Code)
	})

	t.Run("should run the full pipeline and mark the snapshot current", func(t *testing.T) {
		svc, m := newPipelineService(t)
		passThroughTransactions(m)

		m.projectRepository.On("UpsertByOwnerAndName", mock.Anything, callerID, "billing", mock.Anything, mock.Anything).Return(models.Project{
			Model:   models.Model{ID: projectID},
			OwnerID: callerID,
			Name:    "billing",
		}, nil)
		m.snapshotRepository.On("NextSeq", mock.Anything, projectID).Return(1, nil)
		m.snapshotRepository.On("Create", mock.Anything, mock.Anything).Return(func(_ *gorm.DB, snapshot *models.Snapshot) error {
			snapshot.ID = snapshotID
			return nil
		})
		m.artifactStore.On("Save", mock.Anything, snapshotID, goModArtifact).Return(nil)

		expectStatusTransition(m, models.SnapshotStatusParsed)
		m.enrichmentGateway.On("Enrich", mock.Anything, mock.Anything).Return(enrichment.Result{EnrichedComponents: 2, TotalBatches: 1}, nil)

		var persistedComponents []models.Component
		m.componentRepository.On("SaveComponents", mock.Anything, mock.Anything).Return(func(_ *gorm.DB, components []models.Component) error {
			persistedComponents = components
			return nil
		})
		m.componentRepository.On("CreateSnapshotComponents", mock.Anything, mock.Anything).Return(nil)
		m.componentRepository.On("CreateEdges", mock.Anything, mock.Anything).Return(nil)
		m.findingRepository.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

		expectStatusTransition(m, models.SnapshotStatusEnriched)
		m.snapshotRepository.On("Save", mock.Anything, mock.Anything).Return(nil)
		m.snapshotRepository.On("MarkCurrent", mock.Anything, mock.Anything).Return(func(_ *gorm.DB, snapshot *models.Snapshot) error {
			snapshot.Current = true
			return nil
		})

		dto, err := svc.Submit(context.Background(), callerID, dtos.IngestRequest{ProjectName: "billing"}, goModArtifact)

		assert.NoError(t, err)
		assert.Equal(t, snapshotID, dto.ID)
		assert.Equal(t, 1, dto.Seq)
		assert.Equal(t, "go.mod", dto.Format)
		assert.NotEmpty(t, dto.ArtifactDigest)
		assert.Len(t, persistedComponents, 2)
		for _, component := range persistedComponents {
			assert.Equal(t, "golang", component.Ecosystem)
			assert.Len(t, component.ID, 64)
		}
	})

	t.Run("should mark the snapshot failed when the manifest format is unsupported", func(t *testing.T) {
		svc, m := newPipelineService(t)
		passThroughTransactions(m)

		var snapshot *models.Snapshot
		m.projectRepository.On("UpsertByOwnerAndName", mock.Anything, callerID, "billing", mock.Anything, mock.Anything).Return(models.Project{
			Model: models.Model{ID: projectID},
		}, nil)
		m.snapshotRepository.On("NextSeq", mock.Anything, projectID).Return(4, nil)
		m.snapshotRepository.On("Create", mock.Anything, mock.Anything).Return(func(_ *gorm.DB, s *models.Snapshot) error {
			s.ID = snapshotID
			snapshot = s
			return nil
		})
		m.artifactStore.On("Save", mock.Anything, snapshotID, mock.Anything).Return(nil)

		expectStatusTransition(m, models.SnapshotStatusFailed)
		m.snapshotRepository.On("Save", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Submit(context.Background(), callerID, dtos.IngestRequest{ProjectName: "billing"}, []byte("not a manifest at all"))

		assert.NoError(t, err)
		assert.Equal(t, models.SnapshotStatusFailed, snapshot.Status)
		assert.Equal(t, "manifest format is not supported", *snapshot.FailureReason)
	})

	t.Run("should mark the snapshot failed when the parsed transition cannot be stored", func(t *testing.T) {
		svc, m := newPipelineService(t)
		passThroughTransactions(m)

		var snapshot *models.Snapshot
		m.projectRepository.On("UpsertByOwnerAndName", mock.Anything, callerID, "billing", mock.Anything, mock.Anything).Return(models.Project{
			Model: models.Model{ID: projectID},
		}, nil)
		m.snapshotRepository.On("NextSeq", mock.Anything, projectID).Return(5, nil)
		m.snapshotRepository.On("Create", mock.Anything, mock.Anything).Return(func(_ *gorm.DB, s *models.Snapshot) error {
			s.ID = snapshotID
			snapshot = s
			return nil
		})
		m.artifactStore.On("Save", mock.Anything, snapshotID, mock.Anything).Return(nil)

		m.snapshotRepository.On("UpdateStatus", mock.Anything, mock.Anything, models.SnapshotStatusParsed).Return(errors.New("connection reset by peer"))
		expectStatusTransition(m, models.SnapshotStatusFailed)
		m.snapshotRepository.On("Save", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Submit(context.Background(), callerID, dtos.IngestRequest{ProjectName: "billing"}, goModArtifact)

		assert.NoError(t, err)
		assert.Equal(t, models.SnapshotStatusFailed, snapshot.Status)
		assert.Equal(t, "could not record parse progress", *snapshot.FailureReason)
	})

	t.Run("should record a degradation instead of failing when enrichment batches fail", func(t *testing.T) {
		svc, m := newPipelineService(t)
		passThroughTransactions(m)

		var snapshot *models.Snapshot
		m.projectRepository.On("UpsertByOwnerAndName", mock.Anything, callerID, "billing", mock.Anything, mock.Anything).Return(models.Project{
			Model: models.Model{ID: projectID},
		}, nil)
		m.snapshotRepository.On("NextSeq", mock.Anything, projectID).Return(2, nil)
		m.snapshotRepository.On("Create", mock.Anything, mock.Anything).Return(func(_ *gorm.DB, s *models.Snapshot) error {
			s.ID = snapshotID
			snapshot = s
			return nil
		})
		m.artifactStore.On("Save", mock.Anything, snapshotID, mock.Anything).Return(nil)

		expectStatusTransition(m, models.SnapshotStatusParsed)
		m.enrichmentGateway.On("Enrich", mock.Anything, mock.Anything).Return(enrichment.Result{FailedBatches: 1, TotalBatches: 2}, nil)

		m.componentRepository.On("SaveComponents", mock.Anything, mock.Anything).Return(nil)
		m.componentRepository.On("CreateSnapshotComponents", mock.Anything, mock.Anything).Return(nil)
		m.componentRepository.On("CreateEdges", mock.Anything, mock.Anything).Return(nil)
		m.findingRepository.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

		expectStatusTransition(m, models.SnapshotStatusEnriched)
		m.snapshotRepository.On("Save", mock.Anything, mock.Anything).Return(nil)
		m.snapshotRepository.On("MarkCurrent", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Submit(context.Background(), callerID, dtos.IngestRequest{ProjectName: "billing"}, goModArtifact)

		assert.NoError(t, err)
		assert.Equal(t, models.SnapshotStatusEnriched, snapshot.Status)
		assert.NotNil(t, snapshot.Degradation)
		assert.Nil(t, snapshot.FailureReason)
	})

	t.Run("should fail the snapshot when processing is cancelled during enrichment", func(t *testing.T) {
		svc, m := newPipelineService(t)
		passThroughTransactions(m)

		var snapshot *models.Snapshot
		m.projectRepository.On("UpsertByOwnerAndName", mock.Anything, callerID, "billing", mock.Anything, mock.Anything).Return(models.Project{
			Model: models.Model{ID: projectID},
		}, nil)
		m.snapshotRepository.On("NextSeq", mock.Anything, projectID).Return(3, nil)
		m.snapshotRepository.On("Create", mock.Anything, mock.Anything).Return(func(_ *gorm.DB, s *models.Snapshot) error {
			s.ID = snapshotID
			snapshot = s
			return nil
		})
		m.artifactStore.On("Save", mock.Anything, snapshotID, mock.Anything).Return(nil)

		expectStatusTransition(m, models.SnapshotStatusParsed)
		m.enrichmentGateway.On("Enrich", mock.Anything, mock.Anything).Return(enrichment.Result{}, errors.Wrap(context.Canceled, "enrichment interrupted"))

		expectStatusTransition(m, models.SnapshotStatusFailed)
		m.snapshotRepository.On("Save", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Submit(context.Background(), callerID, dtos.IngestRequest{ProjectName: "billing"}, goModArtifact)

		assert.NoError(t, err)
		assert.Equal(t, models.SnapshotStatusFailed, snapshot.Status)
		assert.Equal(t, "processing cancelled before enrichment finished", *snapshot.FailureReason)
	})

	t.Run("should keep a best effort artifact store failure out of the pipeline", func(t *testing.T) {
		svc, m := newPipelineService(t)
		passThroughTransactions(m)

		m.projectRepository.On("UpsertByOwnerAndName", mock.Anything, callerID, "billing", mock.Anything, mock.Anything).Return(models.Project{
			Model: models.Model{ID: projectID},
		}, nil)
		m.snapshotRepository.On("NextSeq", mock.Anything, projectID).Return(1, nil)
		m.snapshotRepository.On("Create", mock.Anything, mock.Anything).Return(func(_ *gorm.DB, s *models.Snapshot) error {
			s.ID = snapshotID
			return nil
		})
		m.artifactStore.On("Save", mock.Anything, snapshotID, mock.Anything).Return(errors.New("bucket unavailable"))

		expectStatusTransition(m, models.SnapshotStatusParsed)
		m.enrichmentGateway.On("Enrich", mock.Anything, mock.Anything).Return(enrichment.Result{TotalBatches: 1}, nil)
		m.componentRepository.On("SaveComponents", mock.Anything, mock.Anything).Return(nil)
		m.componentRepository.On("CreateSnapshotComponents", mock.Anything, mock.Anything).Return(nil)
		m.componentRepository.On("CreateEdges", mock.Anything, mock.Anything).Return(nil)
		m.findingRepository.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
		expectStatusTransition(m, models.SnapshotStatusEnriched)
		m.snapshotRepository.On("Save", mock.Anything, mock.Anything).Return(nil)
		m.snapshotRepository.On("MarkCurrent", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Submit(context.Background(), callerID, dtos.IngestRequest{ProjectName: "billing"}, goModArtifact)

		assert.NoError(t, err)
	})
}

func TestSnapshotReads(t *testing.T) {
	callerID := uuid.New()
	otherCaller := uuid.New()
	projectID := uuid.New()
	snapshotID := uuid.New()

	t.Run("should not resolve another caller's project", func(t *testing.T) {
		svc, m := newPipelineService(t)

		m.projectRepository.On("FindByOwnerAndID", mock.Anything, otherCaller, projectID).Return(models.Project{}, gorm.ErrRecordNotFound)

		_, err := svc.GetSnapshot(otherCaller, projectID, snapshotID)

		assert.Error(t, err)
		httpErr := err.(*echo.HTTPError)
		assert.Equal(t, 404, httpErr.Code)
	})

	t.Run("should return 404 when the project has no current snapshot", func(t *testing.T) {
		svc, m := newPipelineService(t)

		m.projectRepository.On("FindByOwnerAndID", mock.Anything, callerID, projectID).Return(models.Project{
			Model: models.Model{ID: projectID},
		}, nil)
		m.snapshotRepository.On("GetCurrentByProject", projectID).Return(models.Snapshot{}, gorm.ErrRecordNotFound)

		_, err := svc.GetCurrentSnapshot(callerID, projectID)

		assert.Error(t, err)
		httpErr := err.(*echo.HTTPError)
		assert.Equal(t, 404, httpErr.Code)
	})

	t.Run("should aggregate findings by severity in the summary", func(t *testing.T) {
		svc, m := newPipelineService(t)

		m.projectRepository.On("FindByOwnerAndID", mock.Anything, callerID, projectID).Return(models.Project{
			Model: models.Model{ID: projectID},
		}, nil)
		m.snapshotRepository.On("FindByProjectAndID", projectID, snapshotID).Return(models.Snapshot{
			Model:          models.Model{ID: snapshotID},
			Status:         models.SnapshotStatusEnriched,
			ComponentCount: 3,
			FindingCount:   3,
		}, nil)
		m.findingRepository.On("ListBySnapshot", snapshotID).Return([]models.Finding{
			{AdvisoryID: "GHSA-1", Severity: "critical"},
			{AdvisoryID: "GHSA-2", Severity: "critical"},
			{AdvisoryID: "GHSA-3", Severity: "low"},
		}, nil)

		summary, err := svc.GetSummary(callerID, projectID, snapshotID)

		assert.NoError(t, err)
		assert.Equal(t, 2, summary.BySeverity["critical"])
		assert.Equal(t, 1, summary.BySeverity["low"])
		assert.Equal(t, "enriched", summary.Status)
	})

	t.Run("should assemble the graph with per component findings", func(t *testing.T) {
		svc, m := newPipelineService(t)

		m.projectRepository.On("FindByOwnerAndID", mock.Anything, callerID, projectID).Return(models.Project{
			Model: models.Model{ID: projectID},
		}, nil)
		m.snapshotRepository.On("FindByProjectAndID", projectID, snapshotID).Return(models.Snapshot{
			Model:    models.Model{ID: snapshotID},
			HasCycle: true,
		}, nil)
		m.componentRepository.On("LoadSnapshotComponents", mock.Anything, snapshotID).Return([]models.SnapshotComponent{
			{SnapshotID: snapshotID, ComponentID: "aaa", Component: models.Component{ID: "aaa", Name: "left-pad", Version: "1.3.0", Ecosystem: "npm"}},
			{SnapshotID: snapshotID, ComponentID: "bbb", Component: models.Component{ID: "bbb", Name: "lodash", Version: "4.17.21", Ecosystem: "npm"}},
		}, nil)
		m.componentRepository.On("LoadEdges", mock.Anything, snapshotID).Return([]models.DependencyEdge{
			{SnapshotID: snapshotID, ParentID: "aaa", ChildID: "bbb"},
		}, nil)
		m.findingRepository.On("ListBySnapshot", snapshotID).Return([]models.Finding{
			{SnapshotID: snapshotID, ComponentID: "bbb", AdvisoryID: "CVE-2021-23337", Severity: "high"},
		}, nil)

		graph, err := svc.GetGraph(callerID, projectID, snapshotID)

		assert.NoError(t, err)
		assert.True(t, graph.HasCycle)
		assert.Len(t, graph.Components, 2)
		assert.Len(t, graph.Edges, 1)
		assert.Empty(t, graph.Components[0].Findings)
		assert.Len(t, graph.Components[1].Findings, 1)
		assert.Equal(t, "CVE-2021-23337", graph.Components[1].Findings[0].AdvisoryID)
	})

	t.Run("should list the findings of a single component", func(t *testing.T) {
		svc, m := newPipelineService(t)

		m.projectRepository.On("FindByOwnerAndID", mock.Anything, callerID, projectID).Return(models.Project{
			Model: models.Model{ID: projectID},
		}, nil)
		m.snapshotRepository.On("FindByProjectAndID", projectID, snapshotID).Return(models.Snapshot{
			Model: models.Model{ID: snapshotID},
		}, nil)
		m.findingRepository.On("ListBySnapshotAndComponent", snapshotID, "bbb").Return([]models.Finding{
			{SnapshotID: snapshotID, ComponentID: "bbb", AdvisoryID: "CVE-2021-23337", Severity: "high"},
			{SnapshotID: snapshotID, ComponentID: "bbb", AdvisoryID: "GHSA-35jh-r3h4-6jhm", Severity: "medium"},
		}, nil)

		findings, err := svc.GetComponentFindings(callerID, projectID, snapshotID, "bbb")

		assert.NoError(t, err)
		assert.Len(t, findings, 2)
		assert.Equal(t, "CVE-2021-23337", findings[0].AdvisoryID)
		assert.Equal(t, "medium", findings[1].Severity)
	})

	t.Run("should export a stored snapshot as a cyclonedx bom", func(t *testing.T) {
		svc, m := newPipelineService(t)

		m.projectRepository.On("FindByOwnerAndID", mock.Anything, callerID, projectID).Return(models.Project{
			Model: models.Model{ID: projectID},
			Name:  "billing",
		}, nil)
		m.snapshotRepository.On("FindByProjectAndID", projectID, snapshotID).Return(models.Snapshot{
			Model: models.Model{ID: snapshotID},
			Seq:   3,
		}, nil)
		m.componentRepository.On("LoadSnapshotComponents", mock.Anything, snapshotID).Return([]models.SnapshotComponent{
			{SnapshotID: snapshotID, ComponentID: "aaa", Component: models.Component{ID: "aaa", Purl: "pkg:npm/left-pad@1.3.0", Name: "left-pad", Version: "1.3.0", Ecosystem: "npm"}},
			{SnapshotID: snapshotID, ComponentID: "bbb", Component: models.Component{ID: "bbb", Purl: "pkg:npm/lodash@4.17.21", Name: "lodash", Version: "4.17.21", Ecosystem: "npm"}},
		}, nil)
		m.componentRepository.On("LoadEdges", mock.Anything, snapshotID).Return([]models.DependencyEdge{
			{SnapshotID: snapshotID, ParentID: "aaa", ChildID: "bbb"},
		}, nil)

		bom, err := svc.GetSBOM(callerID, projectID, snapshotID)

		assert.NoError(t, err)
		assert.Equal(t, "billing", bom.Metadata.Component.Name)
		assert.Equal(t, "snapshot-3", bom.Metadata.Component.Version)
		assert.Len(t, *bom.Components, 2)
		// root dependency entry plus the left-pad -> lodash edge
		assert.Len(t, *bom.Dependencies, 2)
	})
}
