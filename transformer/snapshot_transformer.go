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
	"encoding/json"

	"github.com/opencomply/sbomhub/database/models"
	"github.com/opencomply/sbomhub/dtos"
)

func SnapshotModelsToDTOs(snapshots []models.Snapshot) []dtos.SnapshotDTO {
	snapshotDTOs := make([]dtos.SnapshotDTO, len(snapshots))
	for i, snapshot := range snapshots {
		snapshotDTOs[i] = SnapshotModelToDTO(snapshot)
	}
	return snapshotDTOs
}

func SnapshotModelToDTO(snapshot models.Snapshot) dtos.SnapshotDTO {
	dto := dtos.SnapshotDTO{
		ID:        snapshot.ID,
		ProjectID: snapshot.ProjectID,
		Seq:       snapshot.Seq,
		Status:    string(snapshot.Status),
		Current:   snapshot.Current,
		CreatedAt: snapshot.CreatedAt,

		Format:         snapshot.Format,
		LanguageHint:   snapshot.LanguageHint,
		ArtifactDigest: snapshot.ArtifactDigest,

		HasCycle:       snapshot.HasCycle,
		ComponentCount: snapshot.ComponentCount,
		FindingCount:   snapshot.FindingCount,
		FailureReason:  snapshot.FailureReason,
	}

	if snapshot.Degradation != nil {
		var info models.DegradationInfo
		// round-trip through json, jsonb stores a generic map
		if raw, err := json.Marshal(snapshot.Degradation); err == nil {
			if err := json.Unmarshal(raw, &info); err == nil {
				dto.Degradation = &dtos.DegradationDTO{
					FailedBatches: info.FailedBatches,
					TotalBatches:  info.TotalBatches,
				}
			}
		}
	}

	return dto
}
