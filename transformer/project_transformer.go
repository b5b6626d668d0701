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

package transformer

import (
	"github.com/opencomply/sbomhub/database/models"
	"github.com/opencomply/sbomhub/dtos"
)

func ProjectModelsToDTOs(projects []models.Project) []dtos.ProjectDTO {
	projectDTOs := make([]dtos.ProjectDTO, len(projects))
	for i, project := range projects {
		projectDTOs[i] = ProjectModelToDTO(project)
	}
	return projectDTOs
}

func ProjectModelToDTO(project models.Project) dtos.ProjectDTO {
	return dtos.ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Language:    project.Language,
		CreatedAt:   project.CreatedAt,
	}
}
