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
	databasetypes "github.com/opencomply/sbomhub/database/types"
)

type SnapshotStatus string

const (
	SnapshotStatusPending  SnapshotStatus = "pending"
	SnapshotStatusParsed   SnapshotStatus = "parsed"
	SnapshotStatusEnriched SnapshotStatus = "enriched"
	SnapshotStatusFailed   SnapshotStatus = "failed"
)

// CanTransition encodes the forward-only status progression. Terminal
// states never transition, and a snapshot never moves backwards.
func (s SnapshotStatus) CanTransition(to SnapshotStatus) bool {
	switch s {
	case SnapshotStatusPending:
		return to == SnapshotStatusParsed || to == SnapshotStatusFailed
	case SnapshotStatusParsed:
		return to == SnapshotStatusEnriched || to == SnapshotStatusFailed
	default:
		return false
	}
}

func (s SnapshotStatus) IsTerminal() bool {
	return s == SnapshotStatusEnriched || s == SnapshotStatusFailed
}

// Snapshot is one immutable ingestion result. Seq increases strictly
// per project, and at most one snapshot per project carries Current.
type Snapshot struct {
	Model
	ProjectID uuid.UUID      `json:"projectId" gorm:"uniqueIndex:idx_snapshots_project_seq;not null;type:uuid;"`
	Seq       int            `json:"seq" gorm:"uniqueIndex:idx_snapshots_project_seq;not null;"`
	Status    SnapshotStatus `json:"status" gorm:"type:text;not null;default:'pending';"`
	Current   bool           `json:"current" gorm:"not null;default:false;"`

	LanguageHint   *string `json:"languageHint,omitempty" gorm:"type:text;"`
	Format         string  `json:"format" gorm:"type:text;"`
	ArtifactDigest string  `json:"artifactDigest" gorm:"type:text;"`
	ArtifactSize   int64   `json:"artifactSize"`

	HasCycle       bool                 `json:"hasCycle" gorm:"not null;default:false;"`
	ComponentCount int                  `json:"componentCount"`
	FindingCount   int                  `json:"findingCount"`
	Degradation    *databasetypes.JSONB `json:"degradation,omitempty" gorm:"type:jsonb;"`
	FailureReason  *string              `json:"failureReason,omitempty" gorm:"type:text;"`

	Project Project `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (s Snapshot) TableName() string {
	return "snapshots"
}

// DegradationInfo records which enrichment batches failed, so the API
// can explain a partially enriched snapshot.
type DegradationInfo struct {
	FailedBatches int `json:"failedBatches"`
	TotalBatches  int `json:"totalBatches"`
}
