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
	"time"

	"github.com/google/uuid"
)

// Component is content addressed: the ID is derived from the purl, so
// the same (name, version, ecosystem) triple is stored exactly once
// across all projects and snapshots.
type Component struct {
	ID        string    `json:"id" gorm:"primaryKey;not null;type:text;"`
	CreatedAt time.Time `json:"createdAt"`

	Purl             string  `json:"purl" gorm:"not null;type:text;"`
	Name             string  `json:"name" gorm:"not null;type:text;"`
	Version          string  `json:"version" gorm:"not null;type:text;"`
	Ecosystem        string  `json:"ecosystem" gorm:"not null;type:text;"`
	DeclaredLicense  string  `json:"declaredLicense" gorm:"type:text;"`
	ConfirmedLicense *string `json:"confirmedLicense,omitempty" gorm:"type:text;"`
	LatestVersion    *string `json:"latestVersion,omitempty" gorm:"type:text;"`
}

func (c Component) TableName() string {
	return "components"
}

// SnapshotComponent links a snapshot to the components it contains.
type SnapshotComponent struct {
	SnapshotID  uuid.UUID `json:"snapshotId" gorm:"primaryKey;not null;type:uuid;"`
	ComponentID string    `json:"componentId" gorm:"primaryKey;not null;type:text;"`

	Component Component `json:"component" gorm:"foreignKey:ComponentID;references:ID;"`
}

func (s SnapshotComponent) TableName() string {
	return "snapshot_components"
}

// DependencyEdge is one directed edge of a snapshot's graph. Edges are
// per snapshot so the shared component rows stay immutable.
type DependencyEdge struct {
	SnapshotID uuid.UUID `json:"snapshotId" gorm:"primaryKey;not null;type:uuid;"`
	ParentID   string    `json:"parentId" gorm:"primaryKey;not null;type:text;"`
	ChildID    string    `json:"childId" gorm:"primaryKey;not null;type:text;"`

	Parent Component `json:"-" gorm:"foreignKey:ParentID;references:ID;"`
	Child  Component `json:"-" gorm:"foreignKey:ChildID;references:ID;"`
}

func (d DependencyEdge) TableName() string {
	return "dependency_edges"
}
