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

	"github.com/labstack/echo/v4"
	"github.com/opencomply/sbomhub/dtos"
	"github.com/opencomply/sbomhub/shared"
)

type ProjectController struct {
	projectService shared.ProjectService
}

func NewProjectController(projectService shared.ProjectService) *ProjectController {
	return &ProjectController{
		projectService: projectService,
	}
}

// @Summary Create project
// @Param body body dtos.ProjectCreateRequest true "Request body"
// @Success 200 {object} dtos.ProjectDTO
// @Router /projects [post]
func (c *ProjectController) Create(ctx shared.Context) error {
	var req dtos.ProjectCreateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	project, err := c.projectService.Create(shared.GetCallerID(ctx), req)
	if err != nil {
		return err
	}

	return ctx.JSON(200, project)
}

// @Summary List projects of the caller, paged
// @Param page query int false "Page, 1-based"
// @Param pageSize query int false "Page size, capped at 100"
// @Param search query string false "Name substring filter"
// @Param language query string false "Language filter"
// @Success 200 {object} shared.Paged[dtos.ProjectDTO]
// @Router /projects [get]
func (c *ProjectController) List(ctx shared.Context) error {
	projects, err := c.projectService.List(
		shared.GetCallerID(ctx),
		shared.GetPageInfo(ctx),
		ctx.QueryParam("search"),
		ctx.QueryParam("language"),
	)
	if err != nil {
		return err
	}
	return ctx.JSON(200, projects)
}

// @Summary Read a single project including its current snapshot
// @Param projectID path string true "Project id"
// @Success 200 {object} dtos.ProjectDTO
// @Router /projects/{projectID} [get]
func (c *ProjectController) Read(ctx shared.Context) error {
	project := shared.GetProject(ctx)
	dto, err := c.projectService.Get(shared.GetCallerID(ctx), project.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(200, dto)
}

// @Summary Update project metadata
// @Param projectID path string true "Project id"
// @Param body body dtos.ProjectUpdateRequest true "Request body"
// @Success 200 {object} dtos.ProjectDTO
// @Router /projects/{projectID} [patch]
func (c *ProjectController) Update(ctx shared.Context) error {
	var req dtos.ProjectUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	project := shared.GetProject(ctx)
	dto, err := c.projectService.Update(shared.GetCallerID(ctx), project.ID, req)
	if err != nil {
		return err
	}

	return ctx.JSON(200, dto)
}

// @Summary Delete a project and its snapshot history
// @Param projectID path string true "Project id"
// @Success 200
// @Router /projects/{projectID} [delete]
func (c *ProjectController) Delete(ctx shared.Context) error {
	project := shared.GetProject(ctx)
	if err := c.projectService.Delete(shared.GetCallerID(ctx), project.ID); err != nil {
		return err
	}
	return ctx.NoContent(200)
}
