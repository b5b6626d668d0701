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

type componentRepository struct {
	*GormRepository[string, models.Component]
	db *gorm.DB
}

func NewComponentRepository(db *gorm.DB) *componentRepository {
	return &componentRepository{
		GormRepository: newGormRepository[string, models.Component](db),
		db:             db,
	}
}

// SaveComponents inserts missing component rows and refreshes the
// enrichment columns of existing ones. Identity columns never change
// because the id is content addressed. Rows are shared across
// snapshots, so a degraded run must not blank out previously confirmed
// values; COALESCE keeps the stored value when the new one is null.
func (c *componentRepository) SaveComponents(tx *gorm.DB, components []models.Component) error {
	if len(components) == 0 {
		return nil
	}
	return c.GetDB(tx).Clauses(componentUpsertClause()).Create(&components).Error
}

func componentUpsertClause() clause.OnConflict {
	return clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"confirmed_license": gorm.Expr("COALESCE(excluded.confirmed_license, components.confirmed_license)"),
			"latest_version":    gorm.Expr("COALESCE(excluded.latest_version, components.latest_version)"),
		}),
	}
}

func (c *componentRepository) CreateSnapshotComponents(tx *gorm.DB, memberships []models.SnapshotComponent) error {
	if len(memberships) == 0 {
		return nil
	}
	return c.GetDB(tx).Clauses(clause.OnConflict{DoNothing: true}).Create(&memberships).Error
}

func (c *componentRepository) CreateEdges(tx *gorm.DB, edges []models.DependencyEdge) error {
	if len(edges) == 0 {
		return nil
	}
	return c.GetDB(tx).Clauses(clause.OnConflict{DoNothing: true}).Create(&edges).Error
}

func (c *componentRepository) LoadSnapshotComponents(tx *gorm.DB, snapshotID uuid.UUID) ([]models.SnapshotComponent, error) {
	var memberships []models.SnapshotComponent
	err := c.GetDB(tx).Preload("Component").
		Where("snapshot_id = ?", snapshotID).
		Find(&memberships).Error
	return memberships, err
}

func (c *componentRepository) LoadEdges(tx *gorm.DB, snapshotID uuid.UUID) ([]models.DependencyEdge, error) {
	var edges []models.DependencyEdge
	err := c.GetDB(tx).Where("snapshot_id = ?", snapshotID).Find(&edges).Error
	return edges, err
}

func (c *componentRepository) FindAllWithoutConfirmedLicense() ([]models.Component, error) {
	var components []models.Component
	err := c.db.Where("confirmed_license IS NULL").Find(&components).Error
	return components, err
}

// DeleteOrphaned removes component rows no snapshot references
// anymore, e.g. after projects were deleted. Returns the number of
// removed rows.
func (c *componentRepository) DeleteOrphaned(tx *gorm.DB) (int64, error) {
	result := c.GetDB(tx).Exec(`DELETE FROM components c
		WHERE NOT EXISTS (
			SELECT 1 FROM snapshot_components sc WHERE sc.component_id = c.id
		)`)
	return result.RowsAffected, result.Error
}
