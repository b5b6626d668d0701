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

func ComponentModelToDTO(component models.Component, findings []models.Finding) dtos.ComponentDTO {
	dto := dtos.ComponentDTO{
		ID:               component.ID,
		Purl:             component.Purl,
		Name:             component.Name,
		Version:          component.Version,
		Ecosystem:        component.Ecosystem,
		DeclaredLicense:  component.DeclaredLicense,
		ConfirmedLicense: component.ConfirmedLicense,
		LatestVersion:    component.LatestVersion,
	}
	for _, finding := range findings {
		dto.Findings = append(dto.Findings, FindingModelToDTO(finding))
	}
	return dto
}

func FindingModelToDTO(finding models.Finding) dtos.FindingDTO {
	return dtos.FindingDTO{
		AdvisoryID: finding.AdvisoryID,
		Severity:   finding.Severity,
		CVSS:       finding.CVSS,
		Vector:     finding.Vector,
		Source:     finding.Source,
	}
}
