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
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/opencomply/sbomhub/database/models"
	databasetypes "github.com/opencomply/sbomhub/database/types"
	"github.com/opencomply/sbomhub/dtos"
	"github.com/opencomply/sbomhub/manifest"
	"github.com/opencomply/sbomhub/monitoring"
	"github.com/opencomply/sbomhub/normalize"
	"github.com/opencomply/sbomhub/shared"
	"github.com/opencomply/sbomhub/transformer"
	"github.com/opencomply/sbomhub/utils"
)

type pipelineService struct {
	projectRepository   shared.ProjectRepository
	snapshotRepository  shared.SnapshotRepository
	componentRepository shared.ComponentRepository
	findingRepository   shared.FindingRepository
	enrichmentGateway   shared.EnrichmentGateway
	artifactStore       shared.ArtifactStore
	fireAndForget       utils.FireAndForgetSynchronizer
}

func NewPipelineService(
	projectRepository shared.ProjectRepository,
	snapshotRepository shared.SnapshotRepository,
	componentRepository shared.ComponentRepository,
	findingRepository shared.FindingRepository,
	enrichmentGateway shared.EnrichmentGateway,
	artifactStore shared.ArtifactStore,
	fireAndForget utils.FireAndForgetSynchronizer,
) *pipelineService {
	return &pipelineService{
		projectRepository:   projectRepository,
		snapshotRepository:  snapshotRepository,
		componentRepository: componentRepository,
		findingRepository:   findingRepository,
		enrichmentGateway:   enrichmentGateway,
		artifactStore:       artifactStore,
		fireAndForget:       fireAndForget,
	}
}

// Submit registers a pending snapshot and kicks off processing in the
// background. The returned DTO carries the snapshot id for status
// polling.
func (s *pipelineService) Submit(ctx context.Context, callerID uuid.UUID, req dtos.IngestRequest, artifact []byte) (dtos.SnapshotDTO, error) {
	if len(artifact) == 0 {
		return dtos.SnapshotDTO{}, echo.NewHTTPError(400, "artifact is empty")
	}

	if req.LanguageHint != nil && !slices.Contains(manifest.SupportedLanguages(), *req.LanguageHint) {
		return dtos.SnapshotDTO{}, echo.NewHTTPError(400, fmt.Sprintf("unsupported language hint %q", *req.LanguageHint))
	}

	digest := sha256.Sum256(artifact)

	var snapshot models.Snapshot
	err := s.snapshotRepository.Transaction(func(tx shared.DB) error {
		project, err := s.projectRepository.UpsertByOwnerAndName(tx, callerID, req.ProjectName, req.Description, utils.SafeDereference(req.LanguageHint))
		if err != nil {
			return echo.NewHTTPError(500, "could not resolve project").WithInternal(err)
		}

		return s.snapshotRepository.WithProjectLock(project.ID, func() error {
			seq, err := s.snapshotRepository.NextSeq(tx, project.ID)
			if err != nil {
				return echo.NewHTTPError(500, "could not allocate snapshot sequence").WithInternal(err)
			}

			snapshot = models.Snapshot{
				ProjectID:      project.ID,
				Seq:            seq,
				Status:         models.SnapshotStatusPending,
				LanguageHint:   req.LanguageHint,
				Format:         manifest.DetectFormatName(artifact),
				ArtifactDigest: hex.EncodeToString(digest[:]),
				ArtifactSize:   int64(len(artifact)),
			}
			return s.snapshotRepository.Create(tx, &snapshot)
		})
	})
	if err != nil {
		return dtos.SnapshotDTO{}, err
	}

	if err := s.artifactStore.Save(ctx, snapshot.ID, artifact); err != nil {
		// retention is best effort, the pipeline works off the in-memory copy
		slog.Warn("could not retain uploaded artifact", "snapshotID", snapshot.ID, "err", err)
	}

	monitoring.IngestionsStarted.Inc()
	hint := utils.SafeDereference(req.LanguageHint)
	s.fireAndForget.FireAndForget(func() {
		s.process(context.WithoutCancel(ctx), &snapshot, artifact, hint)
	})

	return transformer.SnapshotModelToDTO(snapshot), nil
}

// process runs parse, build, enrich and persist for one snapshot. All
// failures before the persistence transaction mark the snapshot failed
// with a classified reason; a degraded enrichment does not.
func (s *pipelineService) process(ctx context.Context, snapshot *models.Snapshot, artifact []byte, languageHint string) {
	start := time.Now()
	defer func() {
		monitoring.IngestionDuration.Observe(time.Since(start).Seconds())
	}()

	provisional, err := manifest.Parse(artifact, languageHint)
	if err != nil {
		s.markFailed(snapshot, classifyParseError(err))
		return
	}

	graph, err := normalize.BuildGraph(provisional)
	if err != nil {
		s.markFailed(snapshot, fmt.Sprintf("graph construction failed: %s", err.Error()))
		return
	}

	if err := s.snapshotRepository.UpdateStatus(nil, snapshot, models.SnapshotStatusParsed); err != nil {
		slog.Error("could not advance snapshot to parsed", "snapshotID", snapshot.ID, "err", err)
		s.markFailed(snapshot, "could not record parse progress")
		return
	}

	result, err := s.enrichmentGateway.Enrich(ctx, graph)
	if err != nil {
		// only cancellation surfaces here, lookup failures degrade
		s.markFailed(snapshot, "processing cancelled before enrichment finished")
		return
	}
	if result.Degraded() {
		monitoring.EnrichmentBatchesFailed.Add(float64(result.FailedBatches))
	}

	if ctx.Err() != nil {
		s.markFailed(snapshot, "processing cancelled before persistence")
		return
	}

	if err := s.persist(snapshot, graph, result.FailedBatches, result.TotalBatches); err != nil {
		slog.Error("could not persist snapshot", "snapshotID", snapshot.ID, "err", err)
		s.markFailed(snapshot, "persistence failed")
		return
	}

	monitoring.IngestionsCompleted.WithLabelValues(string(models.SnapshotStatusEnriched)).Inc()
	slog.Info("snapshot enriched", "snapshotID", snapshot.ID, "components", snapshot.ComponentCount, "findings", snapshot.FindingCount, "degraded", result.Degraded())
}

// persist writes graph, findings and the snapshot result columns in one
// transaction, serialized per project.
func (s *pipelineService) persist(snapshot *models.Snapshot, graph *normalize.ComponentGraph, failedBatches, totalBatches int) error {
	return s.snapshotRepository.WithProjectLock(snapshot.ProjectID, func() error {
		return s.snapshotRepository.Transaction(func(tx shared.DB) error {
			components := make([]models.Component, 0, graph.ComponentCount())
			memberships := make([]models.SnapshotComponent, 0, graph.ComponentCount())
			var findings []models.Finding

			for _, component := range graph.Components() {
				components = append(components, models.Component{
					ID:               component.ID,
					Purl:             component.Purl,
					Name:             component.Name,
					Version:          component.Version,
					Ecosystem:        component.Ecosystem,
					DeclaredLicense:  component.DeclaredLicense,
					ConfirmedLicense: component.ConfirmedLicense,
					LatestVersion:    component.LatestVersion,
				})
				memberships = append(memberships, models.SnapshotComponent{
					SnapshotID:  snapshot.ID,
					ComponentID: component.ID,
				})
				for _, finding := range component.Findings {
					findings = append(findings, models.Finding{
						SnapshotID:  snapshot.ID,
						ComponentID: component.ID,
						AdvisoryID:  finding.AdvisoryID,
						Severity:    finding.Severity,
						CVSS:        finding.CVSS,
						Vector:      finding.Vector,
						Source:      finding.Source,
					})
				}
			}

			edges := utils.Map(graph.Edges(), func(edge normalize.Edge) models.DependencyEdge {
				return models.DependencyEdge{
					SnapshotID: snapshot.ID,
					ParentID:   edge.ParentID,
					ChildID:    edge.ChildID,
				}
			})

			if err := s.componentRepository.SaveComponents(tx, components); err != nil {
				return err
			}
			if err := s.componentRepository.CreateSnapshotComponents(tx, memberships); err != nil {
				return err
			}
			if err := s.componentRepository.CreateEdges(tx, edges); err != nil {
				return err
			}
			if err := s.findingRepository.CreateBatch(tx, findings); err != nil {
				return err
			}

			snapshot.HasCycle = graph.HasCycle
			snapshot.ComponentCount = graph.ComponentCount()
			snapshot.FindingCount = len(findings)
			if failedBatches > 0 {
				degradation := databasetypes.MustJSONBFromStruct(models.DegradationInfo{
					FailedBatches: failedBatches,
					TotalBatches:  totalBatches,
				})
				snapshot.Degradation = &degradation
			}

			if err := s.snapshotRepository.UpdateStatus(tx, snapshot, models.SnapshotStatusEnriched); err != nil {
				return err
			}
			if err := s.snapshotRepository.Save(tx, snapshot); err != nil {
				return err
			}

			monitoring.ComponentsPersisted.Add(float64(len(components)))
			return s.snapshotRepository.MarkCurrent(tx, snapshot)
		})
	})
}

func (s *pipelineService) markFailed(snapshot *models.Snapshot, reason string) {
	snapshot.FailureReason = &reason
	if err := s.snapshotRepository.UpdateStatus(nil, snapshot, models.SnapshotStatusFailed); err != nil {
		slog.Error("could not mark snapshot failed", "snapshotID", snapshot.ID, "err", err)
		return
	}
	if err := s.snapshotRepository.Save(nil, snapshot); err != nil {
		slog.Error("could not persist failure reason", "snapshotID", snapshot.ID, "err", err)
	}
	monitoring.IngestionsCompleted.WithLabelValues(string(models.SnapshotStatusFailed)).Inc()
	slog.Warn("snapshot failed", "snapshotID", snapshot.ID, "reason", reason)
}

func classifyParseError(err error) string {
	var parseErr *manifest.ParseError
	if errors.As(err, &parseErr) {
		switch parseErr.Reason {
		case manifest.ReasonSyntax:
			return fmt.Sprintf("manifest is syntactically invalid (%s)", parseErr.Format)
		case manifest.ReasonUnsupported:
			return "manifest format is not supported"
		case manifest.ReasonEmpty:
			return "manifest declares no components"
		}
	}
	return "manifest could not be parsed"
}

func (s *pipelineService) resolveProject(callerID uuid.UUID, projectID uuid.UUID) (models.Project, error) {
	project, err := s.projectRepository.FindByOwnerAndID(nil, callerID, projectID)
	if err != nil {
		return models.Project{}, echo.NewHTTPError(404, "project not found").WithInternal(err)
	}
	return project, nil
}

func (s *pipelineService) GetSnapshot(callerID uuid.UUID, projectID uuid.UUID, snapshotID uuid.UUID) (dtos.SnapshotDTO, error) {
	project, err := s.resolveProject(callerID, projectID)
	if err != nil {
		return dtos.SnapshotDTO{}, err
	}

	snapshot, err := s.snapshotRepository.FindByProjectAndID(project.ID, snapshotID)
	if err != nil {
		return dtos.SnapshotDTO{}, echo.NewHTTPError(404, "snapshot not found").WithInternal(err)
	}
	return transformer.SnapshotModelToDTO(snapshot), nil
}

func (s *pipelineService) GetCurrentSnapshot(callerID uuid.UUID, projectID uuid.UUID) (dtos.SnapshotDTO, error) {
	project, err := s.resolveProject(callerID, projectID)
	if err != nil {
		return dtos.SnapshotDTO{}, err
	}

	snapshot, err := s.snapshotRepository.GetCurrentByProject(project.ID)
	if err != nil {
		return dtos.SnapshotDTO{}, echo.NewHTTPError(404, "project has no current snapshot").WithInternal(err)
	}
	return transformer.SnapshotModelToDTO(snapshot), nil
}

func (s *pipelineService) ListSnapshots(callerID uuid.UUID, projectID uuid.UUID) ([]dtos.SnapshotDTO, error) {
	project, err := s.resolveProject(callerID, projectID)
	if err != nil {
		return nil, err
	}

	snapshots, err := s.snapshotRepository.ListByProject(project.ID)
	if err != nil {
		return nil, echo.NewHTTPError(500, "could not list snapshots").WithInternal(err)
	}
	return transformer.SnapshotModelsToDTOs(snapshots), nil
}

func (s *pipelineService) GetGraph(callerID uuid.UUID, projectID uuid.UUID, snapshotID uuid.UUID) (dtos.GraphDTO, error) {
	project, err := s.resolveProject(callerID, projectID)
	if err != nil {
		return dtos.GraphDTO{}, err
	}

	snapshot, err := s.snapshotRepository.FindByProjectAndID(project.ID, snapshotID)
	if err != nil {
		return dtos.GraphDTO{}, echo.NewHTTPError(404, "snapshot not found").WithInternal(err)
	}

	memberships, err := s.componentRepository.LoadSnapshotComponents(nil, snapshot.ID)
	if err != nil {
		return dtos.GraphDTO{}, echo.NewHTTPError(500, "could not load components").WithInternal(err)
	}
	edges, err := s.componentRepository.LoadEdges(nil, snapshot.ID)
	if err != nil {
		return dtos.GraphDTO{}, echo.NewHTTPError(500, "could not load dependency edges").WithInternal(err)
	}
	findings, err := s.findingRepository.ListBySnapshot(snapshot.ID)
	if err != nil {
		return dtos.GraphDTO{}, echo.NewHTTPError(500, "could not load findings").WithInternal(err)
	}

	findingsByComponent := make(map[string][]models.Finding, len(findings))
	for _, finding := range findings {
		findingsByComponent[finding.ComponentID] = append(findingsByComponent[finding.ComponentID], finding)
	}

	graph := dtos.GraphDTO{
		SnapshotID: snapshot.ID,
		HasCycle:   snapshot.HasCycle,
		Components: make([]dtos.ComponentDTO, 0, len(memberships)),
		Edges: utils.Map(edges, func(edge models.DependencyEdge) dtos.EdgeDTO {
			return dtos.EdgeDTO{ParentID: edge.ParentID, ChildID: edge.ChildID}
		}),
	}
	for _, membership := range memberships {
		graph.Components = append(graph.Components, transformer.ComponentModelToDTO(membership.Component, findingsByComponent[membership.ComponentID]))
	}

	return graph, nil
}

// GetComponentFindings lists the findings of a single component inside
// a snapshot, ordered by descending cvss.
func (s *pipelineService) GetComponentFindings(callerID uuid.UUID, projectID uuid.UUID, snapshotID uuid.UUID, componentID string) ([]dtos.FindingDTO, error) {
	project, err := s.resolveProject(callerID, projectID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshotRepository.FindByProjectAndID(project.ID, snapshotID)
	if err != nil {
		return nil, echo.NewHTTPError(404, "snapshot not found").WithInternal(err)
	}

	findings, err := s.findingRepository.ListBySnapshotAndComponent(snapshot.ID, componentID)
	if err != nil {
		return nil, echo.NewHTTPError(500, "could not load findings").WithInternal(err)
	}

	return utils.Map(findings, transformer.FindingModelToDTO), nil
}

// GetSBOM exports a stored snapshot as a CycloneDX BOM, rebuilt from
// the persisted components and edges.
func (s *pipelineService) GetSBOM(callerID uuid.UUID, projectID uuid.UUID, snapshotID uuid.UUID) (*cdx.BOM, error) {
	project, err := s.resolveProject(callerID, projectID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshotRepository.FindByProjectAndID(project.ID, snapshotID)
	if err != nil {
		return nil, echo.NewHTTPError(404, "snapshot not found").WithInternal(err)
	}

	memberships, err := s.componentRepository.LoadSnapshotComponents(nil, snapshot.ID)
	if err != nil {
		return nil, echo.NewHTTPError(500, "could not load components").WithInternal(err)
	}
	edges, err := s.componentRepository.LoadEdges(nil, snapshot.ID)
	if err != nil {
		return nil, echo.NewHTTPError(500, "could not load dependency edges").WithInternal(err)
	}

	graph := normalize.NewGraph()
	for _, membership := range memberships {
		component := membership.Component
		graph.AddComponent(&normalize.Component{
			ID:               component.ID,
			Purl:             component.Purl,
			Name:             component.Name,
			Version:          component.Version,
			Ecosystem:        component.Ecosystem,
			DeclaredLicense:  component.DeclaredLicense,
			ConfirmedLicense: component.ConfirmedLicense,
			LatestVersion:    component.LatestVersion,
		})
	}
	for _, edge := range edges {
		graph.AddEdge(edge.ParentID, edge.ChildID)
	}
	graph.HasCycle = snapshot.HasCycle

	return graph.ToCycloneDX(normalize.BOMMetadata{
		ProjectName: project.Name,
		Version:     fmt.Sprintf("snapshot-%d", snapshot.Seq),
	}), nil
}

func (s *pipelineService) GetSummary(callerID uuid.UUID, projectID uuid.UUID, snapshotID uuid.UUID) (dtos.SnapshotSummaryDTO, error) {
	project, err := s.resolveProject(callerID, projectID)
	if err != nil {
		return dtos.SnapshotSummaryDTO{}, err
	}

	snapshot, err := s.snapshotRepository.FindByProjectAndID(project.ID, snapshotID)
	if err != nil {
		return dtos.SnapshotSummaryDTO{}, echo.NewHTTPError(404, "snapshot not found").WithInternal(err)
	}

	findings, err := s.findingRepository.ListBySnapshot(snapshot.ID)
	if err != nil {
		return dtos.SnapshotSummaryDTO{}, echo.NewHTTPError(500, "could not load findings").WithInternal(err)
	}

	bySeverity := make(map[string]int)
	for _, finding := range findings {
		bySeverity[finding.Severity]++
	}

	return dtos.SnapshotSummaryDTO{
		SnapshotID:     snapshot.ID,
		Status:         string(snapshot.Status),
		ComponentCount: snapshot.ComponentCount,
		FindingCount:   snapshot.FindingCount,
		BySeverity:     bySeverity,
	}, nil
}
