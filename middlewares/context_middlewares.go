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

package middlewares

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/opencomply/sbomhub/shared"
)

// all middlewares which modify the current request context and fetch
// some data from the database

// CallerMiddleware reads the caller identity from the X-Caller-ID
// header. Requests without the header run as the default caller, which
// keeps single-tenant deployments header-free.
func CallerMiddleware() shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			callerID := ctx.Request().Header.Get("X-Caller-ID")
			if callerID == "" {
				callerID = shared.DefaultCallerID
			}
			if _, err := uuid.Parse(callerID); err != nil {
				return echo.NewHTTPError(400, "invalid X-Caller-ID header").WithInternal(err)
			}
			shared.SetCaller(ctx, callerID)
			return next(ctx)
		}
	}
}

// ProjectMiddleware resolves the :projectID route parameter against the
// caller's namespace. Projects of other callers resolve to 404, never
// 403, so project IDs do not leak across namespaces.
func ProjectMiddleware(repository shared.ProjectRepository) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			projectID, err := uuid.Parse(ctx.Param("projectID"))
			if err != nil {
				return echo.NewHTTPError(400, "invalid project id").WithInternal(err)
			}

			project, err := repository.FindByOwnerAndID(nil, shared.GetCallerID(ctx), projectID)
			if err != nil {
				return echo.NewHTTPError(404, "could not find project").WithInternal(err)
			}

			shared.SetProject(ctx, project)

			return next(ctx)
		}
	}
}
