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

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/opencomply/sbomhub/controllers"
	"github.com/opencomply/sbomhub/middlewares"
	"github.com/opencomply/sbomhub/shared"
)

type ProjectRouter struct {
	*echo.Group
}

func NewProjectRouter(
	apiV1Router APIV1Router,
	projectController *controllers.ProjectController,
	snapshotController *controllers.SnapshotController,
	projectRepository shared.ProjectRepository,
) ProjectRouter {
	apiV1Router.POST("/projects/", projectController.Create)
	apiV1Router.GET("/projects/", projectController.List)

	/**
	Project scoped router
	All routes below this line are scoped to a specific project.
	*/
	projectRouter := apiV1Router.Group.Group("/projects/:projectID", middlewares.ProjectMiddleware(projectRepository))
	projectRouter.GET("/", projectController.Read)
	projectRouter.PATCH("/", projectController.Update)
	projectRouter.DELETE("/", projectController.Delete)

	projectRouter.GET("/snapshots/", snapshotController.List)
	projectRouter.GET("/snapshots/current/", snapshotController.ReadCurrent)
	projectRouter.GET("/snapshots/:snapshotID/", snapshotController.Read)
	projectRouter.GET("/snapshots/:snapshotID/graph/", snapshotController.Graph)
	projectRouter.GET("/snapshots/:snapshotID/components/:componentID/findings/", snapshotController.ComponentFindings)
	projectRouter.GET("/snapshots/:snapshotID/summary/", snapshotController.Summary)
	projectRouter.GET("/snapshots/:snapshotID/sbom.json/", snapshotController.SBOMJSON)

	return ProjectRouter{Group: projectRouter}
}
