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

package dtos

import (
	"time"

	"github.com/google/uuid"
)

// IngestRequest accompanies the uploaded artifact. The language hint is
// optional and validated against the supported language catalogue.
// Description only takes effect when the submission creates the
// project.
type IngestRequest struct {
	ProjectName  string  `json:"projectName" validate:"required,max=255"`
	Description  string  `json:"description" validate:"max=4096"`
	LanguageHint *string `json:"languageHint,omitempty"`
}

type SnapshotDTO struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"projectId"`
	Seq       int       `json:"seq"`
	Status    string    `json:"status"`
	Current   bool      `json:"current"`
	CreatedAt time.Time `json:"createdAt"`

	Format         string  `json:"format,omitempty"`
	LanguageHint   *string `json:"languageHint,omitempty"`
	ArtifactDigest string  `json:"artifactDigest,omitempty"`

	HasCycle       bool            `json:"hasCycle"`
	ComponentCount int             `json:"componentCount"`
	FindingCount   int             `json:"findingCount"`
	Degradation    *DegradationDTO `json:"degradation,omitempty"`
	FailureReason  *string         `json:"failureReason,omitempty"`
}

type DegradationDTO struct {
	FailedBatches int `json:"failedBatches"`
	TotalBatches  int `json:"totalBatches"`
}

type ComponentDTO struct {
	ID               string       `json:"id"`
	Purl             string       `json:"purl"`
	Name             string       `json:"name"`
	Version          string       `json:"version"`
	Ecosystem        string       `json:"ecosystem"`
	DeclaredLicense  string       `json:"declaredLicense,omitempty"`
	ConfirmedLicense *string      `json:"confirmedLicense,omitempty"`
	LatestVersion    *string      `json:"latestVersion,omitempty"`
	Findings         []FindingDTO `json:"findings,omitempty"`
}

type FindingDTO struct {
	AdvisoryID string  `json:"advisoryId"`
	Severity   string  `json:"severity"`
	CVSS       float64 `json:"cvss"`
	Vector     string  `json:"vector,omitempty"`
	Source     string  `json:"source,omitempty"`
}

type EdgeDTO struct {
	ParentID string `json:"parentId"`
	ChildID  string `json:"childId"`
}

// GraphDTO is the full component graph of one snapshot.
type GraphDTO struct {
	SnapshotID uuid.UUID      `json:"snapshotId"`
	HasCycle   bool           `json:"hasCycle"`
	Components []ComponentDTO `json:"components"`
	Edges      []EdgeDTO      `json:"edges"`
}

// SnapshotSummaryDTO aggregates findings per severity for dashboards.
type SnapshotSummaryDTO struct {
	SnapshotID     uuid.UUID      `json:"snapshotId"`
	Status         string         `json:"status"`
	ComponentCount int            `json:"componentCount"`
	FindingCount   int            `json:"findingCount"`
	BySeverity     map[string]int `json:"bySeverity"`
}
