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
	"github.com/google/uuid"
	"github.com/opencomply/sbomhub/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type findingRepository struct {
	db *gorm.DB
}

func NewFindingRepository(db *gorm.DB) *findingRepository {
	return &findingRepository{db: db}
}

func (f *findingRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return f.db
}

func (f *findingRepository) CreateBatch(tx *gorm.DB, findings []models.Finding) error {
	if len(findings) == 0 {
		return nil
	}
	return f.getDB(tx).Clauses(clause.OnConflict{DoNothing: true}).Create(&findings).Error
}

func (f *findingRepository) ListBySnapshot(snapshotID uuid.UUID) ([]models.Finding, error) {
	var findings []models.Finding
	err := f.db.Preload("Component").
		Where("snapshot_id = ?", snapshotID).
		Order("cvss DESC").
		Find(&findings).Error
	return findings, err
}

func (f *findingRepository) ListBySnapshotAndComponent(snapshotID uuid.UUID, componentID string) ([]models.Finding, error) {
	var findings []models.Finding
	err := f.db.Where("snapshot_id = ? AND component_id = ?", snapshotID, componentID).
		Order("cvss DESC").
		Find(&findings).Error
	return findings, err
}
