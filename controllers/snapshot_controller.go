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

package controllers

import (
	"fmt"
	"io"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/opencomply/sbomhub/dtos"
	"github.com/opencomply/sbomhub/shared"
	"github.com/opencomply/sbomhub/utils"
)

// uploads above this limit get rejected before parsing
const maxArtifactSize = 32 << 20

type SnapshotController struct {
	pipelineService shared.PipelineService
}

func NewSnapshotController(pipelineService shared.PipelineService) *SnapshotController {
	return &SnapshotController{
		pipelineService: pipelineService,
	}
}

// @Summary Submit a manifest for ingestion
// @Accept multipart/form-data
// @Param file formData file true "Dependency manifest or CycloneDX BOM"
// @Param projectName formData string true "Project name, created on first submission"
// @Param description formData string false "Project description, applied on first submission"
// @Param languageHint formData string false "Optional language hint"
// @Success 202 {object} dtos.SnapshotDTO
// @Router /ingest [post]
func (c *SnapshotController) Ingest(ctx shared.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(400, "missing file upload").WithInternal(err)
	}
	if fileHeader.Size > maxArtifactSize {
		return echo.NewHTTPError(413, "artifact exceeds the upload limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(400, "could not open file upload").WithInternal(err)
	}
	defer file.Close()

	artifact, err := io.ReadAll(io.LimitReader(file, maxArtifactSize+1))
	if err != nil {
		return echo.NewHTTPError(400, "could not read file upload").WithInternal(err)
	}
	if len(artifact) > maxArtifactSize {
		return echo.NewHTTPError(413, "artifact exceeds the upload limit")
	}

	req := dtos.IngestRequest{
		ProjectName:  ctx.FormValue("projectName"),
		Description:  ctx.FormValue("description"),
		LanguageHint: utils.EmptyThenNil(ctx.FormValue("languageHint")),
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	snapshot, err := c.pipelineService.Submit(ctx.Request().Context(), shared.GetCallerID(ctx), req, artifact)
	if err != nil {
		return err
	}

	return ctx.JSON(202, snapshot)
}

// @Summary Read a snapshot, used for status polling
// @Param projectID path string true "Project id"
// @Param snapshotID path string true "Snapshot id"
// @Success 200 {object} dtos.SnapshotDTO
// @Router /projects/{projectID}/snapshots/{snapshotID} [get]
func (c *SnapshotController) Read(ctx shared.Context) error {
	snapshotID, err := parseSnapshotID(ctx)
	if err != nil {
		return err
	}

	snapshot, err := c.pipelineService.GetSnapshot(shared.GetCallerID(ctx), shared.GetProject(ctx).ID, snapshotID)
	if err != nil {
		return err
	}
	return ctx.JSON(200, snapshot)
}

// @Summary Read the current snapshot of a project
// @Param projectID path string true "Project id"
// @Success 200 {object} dtos.SnapshotDTO
// @Router /projects/{projectID}/snapshots/current [get]
func (c *SnapshotController) ReadCurrent(ctx shared.Context) error {
	snapshot, err := c.pipelineService.GetCurrentSnapshot(shared.GetCallerID(ctx), shared.GetProject(ctx).ID)
	if err != nil {
		return err
	}
	return ctx.JSON(200, snapshot)
}

// @Summary List the append-only snapshot history of a project
// @Param projectID path string true "Project id"
// @Success 200 {array} dtos.SnapshotDTO
// @Router /projects/{projectID}/snapshots [get]
func (c *SnapshotController) List(ctx shared.Context) error {
	snapshots, err := c.pipelineService.ListSnapshots(shared.GetCallerID(ctx), shared.GetProject(ctx).ID)
	if err != nil {
		return err
	}
	return ctx.JSON(200, snapshots)
}

// @Summary Read the full component graph of a snapshot
// @Param projectID path string true "Project id"
// @Param snapshotID path string true "Snapshot id"
// @Success 200 {object} dtos.GraphDTO
// @Router /projects/{projectID}/snapshots/{snapshotID}/graph [get]
func (c *SnapshotController) Graph(ctx shared.Context) error {
	snapshotID, err := parseSnapshotID(ctx)
	if err != nil {
		return err
	}

	graph, err := c.pipelineService.GetGraph(shared.GetCallerID(ctx), shared.GetProject(ctx).ID, snapshotID)
	if err != nil {
		return err
	}
	return ctx.JSON(200, graph)
}

// @Summary List the findings of one component inside a snapshot
// @Param projectID path string true "Project id"
// @Param snapshotID path string true "Snapshot id"
// @Param componentID path string true "Component id"
// @Success 200 {array} dtos.FindingDTO
// @Router /projects/{projectID}/snapshots/{snapshotID}/components/{componentID}/findings [get]
func (c *SnapshotController) ComponentFindings(ctx shared.Context) error {
	snapshotID, err := parseSnapshotID(ctx)
	if err != nil {
		return err
	}

	componentID := ctx.Param("componentID")
	if componentID == "" {
		return echo.NewHTTPError(400, "invalid component id")
	}

	findings, err := c.pipelineService.GetComponentFindings(shared.GetCallerID(ctx), shared.GetProject(ctx).ID, snapshotID, componentID)
	if err != nil {
		return err
	}
	return ctx.JSON(200, findings)
}

// @Summary Read the severity summary of a snapshot
// @Param projectID path string true "Project id"
// @Param snapshotID path string true "Snapshot id"
// @Success 200 {object} dtos.SnapshotSummaryDTO
// @Router /projects/{projectID}/snapshots/{snapshotID}/summary [get]
func (c *SnapshotController) Summary(ctx shared.Context) error {
	snapshotID, err := parseSnapshotID(ctx)
	if err != nil {
		return err
	}

	summary, err := c.pipelineService.GetSummary(shared.GetCallerID(ctx), shared.GetProject(ctx).ID, snapshotID)
	if err != nil {
		return err
	}
	return ctx.JSON(200, summary)
}

// @Summary Export a snapshot as a CycloneDX JSON BOM
// @Param projectID path string true "Project id"
// @Param snapshotID path string true "Snapshot id"
// @Produce json
// @Router /projects/{projectID}/snapshots/{snapshotID}/sbom.json [get]
func (c *SnapshotController) SBOMJSON(ctx shared.Context) error {
	snapshotID, err := parseSnapshotID(ctx)
	if err != nil {
		return err
	}

	bom, err := c.pipelineService.GetSBOM(shared.GetCallerID(ctx), shared.GetProject(ctx).ID, snapshotID)
	if err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentType, "application/json")
	return cdx.NewBOMEncoder(ctx.Response().Writer, cdx.BOMFileFormatJSON).Encode(bom)
}

func parseSnapshotID(ctx shared.Context) (uuid.UUID, error) {
	snapshotID, err := uuid.Parse(shared.SanitizeParam(ctx.Param("snapshotID")))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(400, "invalid snapshot id").WithInternal(err)
	}
	return snapshotID, nil
}
