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
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/opencomply/sbomhub/database"
	"github.com/opencomply/sbomhub/database/models"
	"github.com/opencomply/sbomhub/dtos"
	"github.com/opencomply/sbomhub/shared"
	"github.com/opencomply/sbomhub/transformer"
	"gorm.io/gorm"
)

type projectService struct {
	projectRepository  shared.ProjectRepository
	snapshotRepository shared.SnapshotRepository
	artifactStore      shared.ArtifactStore
}

func NewProjectService(projectRepository shared.ProjectRepository, snapshotRepository shared.SnapshotRepository, artifactStore shared.ArtifactStore) *projectService {
	return &projectService{
		projectRepository:  projectRepository,
		snapshotRepository: snapshotRepository,
		artifactStore:      artifactStore,
	}
}

func (s *projectService) Create(callerID uuid.UUID, req dtos.ProjectCreateRequest) (dtos.ProjectDTO, error) {
	project := models.Project{
		OwnerID:     callerID,
		Name:        req.Name,
		Description: req.Description,
		Language:    req.Language,
	}

	if err := s.projectRepository.Create(nil, &project); err != nil {
		if database.IsDuplicateKeyError(err) {
			return dtos.ProjectDTO{}, echo.NewHTTPError(409, "a project with this name already exists").WithInternal(err)
		}
		slog.Error("could not create project", "err", err, "projectName", req.Name)
		return dtos.ProjectDTO{}, echo.NewHTTPError(500, "could not create project").WithInternal(err)
	}

	return transformer.ProjectModelToDTO(project), nil
}

func (s *projectService) List(callerID uuid.UUID, pageInfo shared.PageInfo, search string, language string) (shared.Paged[dtos.ProjectDTO], error) {
	projects, err := s.projectRepository.ListByOwnerPaged(callerID, pageInfo, search, language)
	if err != nil {
		return shared.Paged[dtos.ProjectDTO]{}, echo.NewHTTPError(500, "could not list projects").WithInternal(err)
	}
	return shared.NewPaged(projects.PageInfo, projects.Total, transformer.ProjectModelsToDTOs(projects.Data)), nil
}

func (s *projectService) Update(callerID uuid.UUID, projectID uuid.UUID, req dtos.ProjectUpdateRequest) (dtos.ProjectDTO, error) {
	project, err := s.projectRepository.FindByOwnerAndID(nil, callerID, projectID)
	if err != nil {
		return dtos.ProjectDTO{}, echo.NewHTTPError(404, "project not found").WithInternal(err)
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Language != nil {
		project.Language = *req.Language
	}

	if err := s.projectRepository.Save(nil, &project); err != nil {
		if database.IsDuplicateKeyError(err) {
			return dtos.ProjectDTO{}, echo.NewHTTPError(409, "a project with this name already exists").WithInternal(err)
		}
		return dtos.ProjectDTO{}, echo.NewHTTPError(500, "could not update project").WithInternal(err)
	}

	return transformer.ProjectModelToDTO(project), nil
}

func (s *projectService) Get(callerID uuid.UUID, projectID uuid.UUID) (dtos.ProjectDTO, error) {
	project, err := s.projectRepository.FindByOwnerAndID(nil, callerID, projectID)
	if err != nil {
		return dtos.ProjectDTO{}, echo.NewHTTPError(404, "project not found").WithInternal(err)
	}

	dto := transformer.ProjectModelToDTO(project)

	current, err := s.snapshotRepository.GetCurrentByProject(project.ID)
	if err == nil {
		currentDTO := transformer.SnapshotModelToDTO(current)
		dto.CurrentSnapshot = &currentDTO
	} else if err != gorm.ErrRecordNotFound {
		return dtos.ProjectDTO{}, echo.NewHTTPError(500, "could not load current snapshot").WithInternal(err)
	}

	return dto, nil
}

func (s *projectService) Delete(callerID uuid.UUID, projectID uuid.UUID) error {
	project, err := s.projectRepository.FindByOwnerAndID(nil, callerID, projectID)
	if err != nil {
		return echo.NewHTTPError(404, "project not found").WithInternal(err)
	}

	snapshots, err := s.snapshotRepository.ListByProject(project.ID)
	if err != nil {
		return echo.NewHTTPError(500, "could not delete project").WithInternal(err)
	}

	if err := s.projectRepository.Delete(nil, project.ID); err != nil {
		return echo.NewHTTPError(500, "could not delete project").WithInternal(err)
	}

	// retained artifacts go with the project, best effort
	for _, snapshot := range snapshots {
		if err := s.artifactStore.Delete(context.Background(), snapshot.ID); err != nil {
			slog.Warn("could not delete retained artifact", "snapshotID", snapshot.ID, "err", err)
		}
	}

	slog.Info("project deleted", "projectID", project.ID, "projectName", project.Name)
	return nil
}
