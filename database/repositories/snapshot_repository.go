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

package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/opencomply/sbomhub/database/models"
	"github.com/opencomply/sbomhub/utils"
	"gorm.io/gorm"
)

type snapshotRepository struct {
	*GormRepository[uuid.UUID, models.Snapshot]
	db          *gorm.DB
	projectLock *utils.KeyedMutex[uuid.UUID]
}

func NewSnapshotRepository(db *gorm.DB) *snapshotRepository {
	return &snapshotRepository{
		GormRepository: newGormRepository[uuid.UUID, models.Snapshot](db),
		db:             db,
		projectLock:    utils.NewKeyedMutex[uuid.UUID](),
	}
}

// WithProjectLock serializes f against all other commits for the same
// project. Different projects are not affected. The lock spans the
// whole persistence transaction, parsing and enrichment happen before
// and stay concurrent.
func (s *snapshotRepository) WithProjectLock(projectID uuid.UUID, f func() error) error {
	s.projectLock.Lock(projectID)
	defer s.projectLock.Unlock(projectID)
	return f()
}

// NextSeq returns the next snapshot sequence number for a project.
// Callers have to hold the project lock, otherwise two concurrent
// submissions race on the same seq.
func (s *snapshotRepository) NextSeq(tx *gorm.DB, projectID uuid.UUID) (int, error) {
	var maxSeq *int
	err := s.GetDB(tx).Model(&models.Snapshot{}).
		Where("project_id = ?", projectID).
		Select("MAX(seq)").
		Scan(&maxSeq).Error
	if err != nil {
		return 0, err
	}
	if maxSeq == nil {
		return 1, nil
	}
	return *maxSeq + 1, nil
}

// UpdateStatus enforces the forward-only progression and persists the
// new status in one statement.
func (s *snapshotRepository) UpdateStatus(tx *gorm.DB, snapshot *models.Snapshot, to models.SnapshotStatus) error {
	if !snapshot.Status.CanTransition(to) {
		return fmt.Errorf("illegal snapshot status transition from %s to %s", snapshot.Status, to)
	}
	snapshot.Status = to
	return s.GetDB(tx).Model(snapshot).Update("status", to).Error
}

// MarkCurrent clears the previous current pointer of the project and
// sets it on the given snapshot. Has to run inside the project lock.
func (s *snapshotRepository) MarkCurrent(tx *gorm.DB, snapshot *models.Snapshot) error {
	err := s.GetDB(tx).Model(&models.Snapshot{}).
		Where("project_id = ? AND current", snapshot.ProjectID).
		Update("current", false).Error
	if err != nil {
		return err
	}
	snapshot.Current = true
	return s.GetDB(tx).Model(snapshot).Update("current", true).Error
}

// GetCurrentByProject returns the snapshot the current pointer of the
// project refers to.
func (s *snapshotRepository) GetCurrentByProject(projectID uuid.UUID) (models.Snapshot, error) {
	var snapshot models.Snapshot
	err := s.db.Where("project_id = ? AND current", projectID).First(&snapshot).Error
	return snapshot, err
}

// ListByProject returns the append-only snapshot history, newest
// first.
func (s *snapshotRepository) ListByProject(projectID uuid.UUID) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot
	err := s.db.Where("project_id = ?", projectID).Order("seq DESC").Find(&snapshots).Error
	return snapshots, err
}

func (s *snapshotRepository) FindByProjectAndID(projectID uuid.UUID, snapshotID uuid.UUID) (models.Snapshot, error) {
	var snapshot models.Snapshot
	err := s.db.Where("project_id = ? AND id = ?", projectID, snapshotID).First(&snapshot).Error
	return snapshot, err
}
