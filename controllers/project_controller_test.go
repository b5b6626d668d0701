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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/opencomply/sbomhub/database/models"
	"github.com/opencomply/sbomhub/dtos"
	"github.com/opencomply/sbomhub/mocks"
	"github.com/opencomply/sbomhub/shared"
)

func TestProjectControllerCreate(t *testing.T) {
	e := echo.New()

	t.Run("should create a project for the default caller", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"billing"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)

		projectService := mocks.NewProjectService(t)
		projectService.On("Create", uuid.MustParse(shared.DefaultCallerID), dtos.ProjectCreateRequest{Name: "billing"}).Return(dtos.ProjectDTO{
			ID:   uuid.New(),
			Name: "billing",
		}, nil)

		controller := NewProjectController(projectService)

		err := controller.Create(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 200, rec.Code)
		assert.Contains(t, rec.Body.String(), `"billing"`)
	})

	t.Run("should reject a body without a project name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)

		projectService := mocks.NewProjectService(t)
		controller := NewProjectController(projectService)

		err := controller.Create(ctx)

		assert.Error(t, err)
		httpErr := err.(*echo.HTTPError)
		assert.Equal(t, 400, httpErr.Code)
	})

	t.Run("should pass the caller from the context through to the service", func(t *testing.T) {
		callerID := uuid.New()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"billing"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		shared.SetCaller(ctx, callerID.String())

		projectService := mocks.NewProjectService(t)
		projectService.On("Create", callerID, mock.Anything).Return(dtos.ProjectDTO{Name: "billing"}, nil)

		controller := NewProjectController(projectService)

		assert.NoError(t, controller.Create(ctx))
	})
}

func TestProjectControllerRead(t *testing.T) {
	e := echo.New()

	t.Run("should read the project resolved by the middleware", func(t *testing.T) {
		projectID := uuid.New()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		shared.SetProject(ctx, models.Project{Model: models.Model{ID: projectID}, Name: "billing"})

		projectService := mocks.NewProjectService(t)
		projectService.On("Get", uuid.MustParse(shared.DefaultCallerID), projectID).Return(dtos.ProjectDTO{
			ID:   projectID,
			Name: "billing",
		}, nil)

		controller := NewProjectController(projectService)

		err := controller.Read(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 200, rec.Code)
	})
}
