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

package models

import (
	"github.com/google/uuid"
)

// Finding is a vulnerability attached to one component of one
// snapshot. Findings are snapshot scoped because enrichment results
// change over time while component rows do not.
type Finding struct {
	SnapshotID  uuid.UUID `json:"snapshotId" gorm:"primaryKey;not null;type:uuid;"`
	ComponentID string    `json:"componentId" gorm:"primaryKey;not null;type:text;"`
	AdvisoryID  string    `json:"advisoryId" gorm:"primaryKey;not null;type:text;"`

	Severity string  `json:"severity" gorm:"type:text;"`
	CVSS     float64 `json:"cvss" gorm:"type:numeric(4,1);"`
	Vector   string  `json:"vector" gorm:"type:text;"`
	Source   string  `json:"source" gorm:"type:text;"`

	Component Component `json:"-" gorm:"foreignKey:ComponentID;references:ID;"`
}

func (f Finding) TableName() string {
	return "findings"
}
