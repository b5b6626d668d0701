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
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/opencomply/sbomhub/database/models"
	"github.com/opencomply/sbomhub/dtos"
	"github.com/opencomply/sbomhub/mocks"
	"github.com/opencomply/sbomhub/shared"
	"github.com/opencomply/sbomhub/utils"
)

func TestProjectCreate(t *testing.T) {
	callerID := uuid.New()

	t.Run("should create a project owned by the caller", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		snapshotRepository := mocks.NewSnapshotRepository(t)
		svc := NewProjectService(projectRepository, snapshotRepository, mocks.NewArtifactStore(t))

		projectRepository.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Project) bool {
			return p.OwnerID == callerID && p.Name == "billing"
		})).Return(nil)

		dto, err := svc.Create(callerID, dtos.ProjectCreateRequest{Name: "billing", Description: "invoicing service"})

		assert.NoError(t, err)
		assert.Equal(t, "billing", dto.Name)
	})

	t.Run("should answer 409 on a duplicate project name", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		snapshotRepository := mocks.NewSnapshotRepository(t)
		svc := NewProjectService(projectRepository, snapshotRepository, mocks.NewArtifactStore(t))

		projectRepository.On("Create", mock.Anything, mock.Anything).Return(errors.New(`ERROR: duplicate key value violates unique constraint "idx_projects_owner_name" (SQLSTATE 23505)`))

		_, err := svc.Create(callerID, dtos.ProjectCreateRequest{Name: "billing"})

		assert.Error(t, err)
		httpErr := err.(*echo.HTTPError)
		assert.Equal(t, 409, httpErr.Code)
	})
}

func TestProjectGet(t *testing.T) {
	callerID := uuid.New()
	projectID := uuid.New()

	t.Run("should attach the current snapshot when one exists", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		snapshotRepository := mocks.NewSnapshotRepository(t)
		svc := NewProjectService(projectRepository, snapshotRepository, mocks.NewArtifactStore(t))

		projectRepository.On("FindByOwnerAndID", mock.Anything, callerID, projectID).Return(models.Project{
			Model:   models.Model{ID: projectID},
			OwnerID: callerID,
			Name:    "billing",
		}, nil)
		snapshotRepository.On("GetCurrentByProject", projectID).Return(models.Snapshot{
			Model:     models.Model{ID: uuid.New()},
			ProjectID: projectID,
			Seq:       7,
			Status:    models.SnapshotStatusEnriched,
			Current:   true,
		}, nil)

		dto, err := svc.Get(callerID, projectID)

		assert.NoError(t, err)
		assert.NotNil(t, dto.CurrentSnapshot)
		assert.Equal(t, 7, dto.CurrentSnapshot.Seq)
	})

	t.Run("should tolerate a project without a current snapshot", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		snapshotRepository := mocks.NewSnapshotRepository(t)
		svc := NewProjectService(projectRepository, snapshotRepository, mocks.NewArtifactStore(t))

		projectRepository.On("FindByOwnerAndID", mock.Anything, callerID, projectID).Return(models.Project{
			Model: models.Model{ID: projectID},
		}, nil)
		snapshotRepository.On("GetCurrentByProject", projectID).Return(models.Snapshot{}, gorm.ErrRecordNotFound)

		dto, err := svc.Get(callerID, projectID)

		assert.NoError(t, err)
		assert.Nil(t, dto.CurrentSnapshot)
	})

	t.Run("should hide other callers' projects behind 404", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		snapshotRepository := mocks.NewSnapshotRepository(t)
		svc := NewProjectService(projectRepository, snapshotRepository, mocks.NewArtifactStore(t))

		projectRepository.On("FindByOwnerAndID", mock.Anything, callerID, projectID).Return(models.Project{}, gorm.ErrRecordNotFound)

		_, err := svc.Get(callerID, projectID)

		assert.Error(t, err)
		httpErr := err.(*echo.HTTPError)
		assert.Equal(t, 404, httpErr.Code)
	})
}

func TestProjectDelete(t *testing.T) {
	callerID := uuid.New()
	projectID := uuid.New()

	t.Run("should delete a project and its retained artifacts", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		snapshotRepository := mocks.NewSnapshotRepository(t)
		artifactStore := mocks.NewArtifactStore(t)
		svc := NewProjectService(projectRepository, snapshotRepository, artifactStore)

		snapshotID := uuid.New()
		projectRepository.On("FindByOwnerAndID", mock.Anything, callerID, projectID).Return(models.Project{
			Model: models.Model{ID: projectID},
			Name:  "billing",
		}, nil)
		snapshotRepository.On("ListByProject", projectID).Return([]models.Snapshot{
			{Model: models.Model{ID: snapshotID}, ProjectID: projectID, Seq: 1},
		}, nil)
		projectRepository.On("Delete", mock.Anything, projectID).Return(nil)
		artifactStore.On("Delete", mock.Anything, snapshotID).Return(nil)

		err := svc.Delete(callerID, projectID)

		assert.NoError(t, err)
	})
}

func TestProjectList(t *testing.T) {
	callerID := uuid.New()

	t.Run("should pass filters through and page the result", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		snapshotRepository := mocks.NewSnapshotRepository(t)
		svc := NewProjectService(projectRepository, snapshotRepository, mocks.NewArtifactStore(t))

		pageInfo := shared.PageInfo{Page: 2, PageSize: 10}
		projectRepository.On("ListByOwnerPaged", callerID, pageInfo, "bill", "golang").Return(shared.NewPaged(pageInfo, 11, []models.Project{
			{Model: models.Model{ID: uuid.New()}, Name: "billing", Language: "golang"},
		}), nil)

		paged, err := svc.List(callerID, pageInfo, "bill", "golang")

		assert.NoError(t, err)
		assert.Equal(t, int64(11), paged.Total)
		assert.Equal(t, 2, paged.Page)
		assert.Len(t, paged.Data, 1)
		assert.Equal(t, "billing", paged.Data[0].Name)
		assert.Equal(t, "golang", paged.Data[0].Language)
	})
}

func TestProjectUpdate(t *testing.T) {
	callerID := uuid.New()
	projectID := uuid.New()

	t.Run("should only touch fields present in the request", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		snapshotRepository := mocks.NewSnapshotRepository(t)
		svc := NewProjectService(projectRepository, snapshotRepository, mocks.NewArtifactStore(t))

		projectRepository.On("FindByOwnerAndID", mock.Anything, callerID, projectID).Return(models.Project{
			Model:       models.Model{ID: projectID},
			Name:        "billing",
			Description: "payment backend",
			Language:    "golang",
		}, nil)
		projectRepository.On("Save", mock.Anything, mock.MatchedBy(func(project *models.Project) bool {
			return project.Name == "billing" && project.Description == "invoicing backend" && project.Language == "golang"
		})).Return(nil)

		dto, err := svc.Update(callerID, projectID, dtos.ProjectUpdateRequest{
			Description: utils.Ptr("invoicing backend"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "billing", dto.Name)
		assert.Equal(t, "invoicing backend", dto.Description)
	})

	t.Run("should map a rename collision to 409", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		snapshotRepository := mocks.NewSnapshotRepository(t)
		svc := NewProjectService(projectRepository, snapshotRepository, mocks.NewArtifactStore(t))

		projectRepository.On("FindByOwnerAndID", mock.Anything, callerID, projectID).Return(models.Project{
			Model: models.Model{ID: projectID},
			Name:  "billing",
		}, nil)
		projectRepository.On("Save", mock.Anything, mock.Anything).Return(errors.New(`ERROR: duplicate key value violates unique constraint "idx_projects_owner_name" (SQLSTATE 23505)`))

		_, err := svc.Update(callerID, projectID, dtos.ProjectUpdateRequest{Name: utils.Ptr("checkout")})

		assert.Error(t, err)
		httpErr := err.(*echo.HTTPError)
		assert.Equal(t, 409, httpErr.Code)
	})

	t.Run("should hide other callers' projects behind 404", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		snapshotRepository := mocks.NewSnapshotRepository(t)
		svc := NewProjectService(projectRepository, snapshotRepository, mocks.NewArtifactStore(t))

		projectRepository.On("FindByOwnerAndID", mock.Anything, callerID, projectID).Return(models.Project{}, gorm.ErrRecordNotFound)

		_, err := svc.Update(callerID, projectID, dtos.ProjectUpdateRequest{Name: utils.Ptr("checkout")})

		assert.Error(t, err)
		httpErr := err.(*echo.HTTPError)
		assert.Equal(t, 404, httpErr.Code)
	})
}
