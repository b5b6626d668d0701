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
	"gorm.io/gorm"
)

// Project is the ownership namespace for snapshots. OwnerID scopes
// every read: two callers with equally named projects never see each
// other's data.
type Project struct {
	Model
	OwnerID     uuid.UUID      `json:"ownerId" gorm:"uniqueIndex:idx_projects_owner_name;not null;type:uuid;"`
	Name        string         `json:"name" gorm:"uniqueIndex:idx_projects_owner_name;not null;type:text;"`
	Description string         `json:"description" gorm:"type:text"`
	Language    string         `json:"language" gorm:"type:text"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Snapshots []Snapshot `json:"snapshots,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (p Project) TableName() string {
	return "projects"
}
