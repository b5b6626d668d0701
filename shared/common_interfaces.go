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

package shared

import (
	"context"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"

	"github.com/opencomply/sbomhub/database/models"
	"github.com/opencomply/sbomhub/dtos"
	"github.com/opencomply/sbomhub/enrichment"
	"github.com/opencomply/sbomhub/normalize"
	"github.com/opencomply/sbomhub/utils"
)

type ProjectRepository interface {
	utils.Repository[uuid.UUID, models.Project, DB]
	FindByOwnerAndName(tx DB, ownerID uuid.UUID, name string) (models.Project, error)
	FindByOwnerAndID(tx DB, ownerID uuid.UUID, id uuid.UUID) (models.Project, error)
	ListByOwnerPaged(ownerID uuid.UUID, pageInfo PageInfo, search string, language string) (Paged[models.Project], error)
	UpsertByOwnerAndName(tx DB, ownerID uuid.UUID, name string, description string, language string) (models.Project, error)
}

type SnapshotRepository interface {
	utils.Repository[uuid.UUID, models.Snapshot, DB]
	WithProjectLock(projectID uuid.UUID, f func() error) error
	NextSeq(tx DB, projectID uuid.UUID) (int, error)
	UpdateStatus(tx DB, snapshot *models.Snapshot, to models.SnapshotStatus) error
	MarkCurrent(tx DB, snapshot *models.Snapshot) error
	GetCurrentByProject(projectID uuid.UUID) (models.Snapshot, error)
	ListByProject(projectID uuid.UUID) ([]models.Snapshot, error)
	FindByProjectAndID(projectID uuid.UUID, snapshotID uuid.UUID) (models.Snapshot, error)
}

type ComponentRepository interface {
	utils.Repository[string, models.Component, DB]
	SaveComponents(tx DB, components []models.Component) error
	CreateSnapshotComponents(tx DB, memberships []models.SnapshotComponent) error
	CreateEdges(tx DB, edges []models.DependencyEdge) error
	LoadSnapshotComponents(tx DB, snapshotID uuid.UUID) ([]models.SnapshotComponent, error)
	LoadEdges(tx DB, snapshotID uuid.UUID) ([]models.DependencyEdge, error)
	FindAllWithoutConfirmedLicense() ([]models.Component, error)
	DeleteOrphaned(tx DB) (int64, error)
}

type FindingRepository interface {
	CreateBatch(tx DB, findings []models.Finding) error
	ListBySnapshot(snapshotID uuid.UUID) ([]models.Finding, error)
	ListBySnapshotAndComponent(snapshotID uuid.UUID, componentID string) ([]models.Finding, error)
}

// EnrichmentGateway is the degrade-not-fail boundary to the external
// component analysis service.
type EnrichmentGateway interface {
	Enrich(ctx context.Context, graph *normalize.ComponentGraph) (enrichment.Result, error)
}

// ArtifactStore retains the raw uploaded manifests keyed by snapshot.
type ArtifactStore interface {
	Save(ctx context.Context, snapshotID uuid.UUID, data []byte) error
	Load(ctx context.Context, snapshotID uuid.UUID) ([]byte, error)
	Delete(ctx context.Context, snapshotID uuid.UUID) error
}

type ProjectService interface {
	Create(callerID uuid.UUID, req dtos.ProjectCreateRequest) (dtos.ProjectDTO, error)
	List(callerID uuid.UUID, pageInfo PageInfo, search string, language string) (Paged[dtos.ProjectDTO], error)
	Get(callerID uuid.UUID, projectID uuid.UUID) (dtos.ProjectDTO, error)
	Update(callerID uuid.UUID, projectID uuid.UUID, req dtos.ProjectUpdateRequest) (dtos.ProjectDTO, error)
	Delete(callerID uuid.UUID, projectID uuid.UUID) error
}

// PipelineService runs the ingestion pipeline: parse, build, enrich,
// persist.
type PipelineService interface {
	Submit(ctx context.Context, callerID uuid.UUID, req dtos.IngestRequest, artifact []byte) (dtos.SnapshotDTO, error)
	GetSnapshot(callerID uuid.UUID, projectID uuid.UUID, snapshotID uuid.UUID) (dtos.SnapshotDTO, error)
	GetCurrentSnapshot(callerID uuid.UUID, projectID uuid.UUID) (dtos.SnapshotDTO, error)
	ListSnapshots(callerID uuid.UUID, projectID uuid.UUID) ([]dtos.SnapshotDTO, error)
	GetGraph(callerID uuid.UUID, projectID uuid.UUID, snapshotID uuid.UUID) (dtos.GraphDTO, error)
	GetComponentFindings(callerID uuid.UUID, projectID uuid.UUID, snapshotID uuid.UUID, componentID string) ([]dtos.FindingDTO, error)
	GetSummary(callerID uuid.UUID, projectID uuid.UUID, snapshotID uuid.UUID) (dtos.SnapshotSummaryDTO, error)
	GetSBOM(callerID uuid.UUID, projectID uuid.UUID, snapshotID uuid.UUID) (*cdx.BOM, error)
}
