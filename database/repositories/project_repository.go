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
	"github.com/opencomply/sbomhub/shared"
	"gorm.io/gorm"
)

type projectRepository struct {
	*GormRepository[uuid.UUID, models.Project]
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *projectRepository {
	return &projectRepository{
		GormRepository: newGormRepository[uuid.UUID, models.Project](db),
		db:             db,
	}
}

// FindByOwnerAndName is the namespace lookup: projects are unique per
// (owner, name), soft deleted rows excluded.
func (p *projectRepository) FindByOwnerAndName(tx *gorm.DB, ownerID uuid.UUID, name string) (models.Project, error) {
	var project models.Project
	err := p.GetDB(tx).Where("owner_id = ? AND name = ?", ownerID, name).First(&project).Error
	return project, err
}

func (p *projectRepository) FindByOwnerAndID(tx *gorm.DB, ownerID uuid.UUID, id uuid.UUID) (models.Project, error) {
	var project models.Project
	err := p.GetDB(tx).Where("owner_id = ? AND id = ?", ownerID, id).First(&project).Error
	return project, err
}

// ListByOwnerPaged lists the caller's projects, optionally filtered by
// a name substring and/or language.
func (p *projectRepository) ListByOwnerPaged(ownerID uuid.UUID, pageInfo shared.PageInfo, search string, language string) (shared.Paged[models.Project], error) {
	query := p.db.Model(&models.Project{}).Where("owner_id = ?", ownerID)
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if language != "" {
		query = query.Where("language = ?", language)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paged[models.Project]{}, err
	}

	var projects []models.Project
	err := pageInfo.ApplyOnDB(query.Order("name ASC")).Find(&projects).Error
	return shared.NewPaged(pageInfo, total, projects), err
}

// UpsertByOwnerAndName returns the existing project for the namespace
// key or creates a fresh one. Repeated submissions under the same name
// reuse the project row and only append snapshots; description and
// language are applied on first creation only.
func (p *projectRepository) UpsertByOwnerAndName(tx *gorm.DB, ownerID uuid.UUID, name string, description string, language string) (models.Project, error) {
	project, err := p.FindByOwnerAndName(tx, ownerID, name)
	if err == nil {
		return project, nil
	}
	if err != gorm.ErrRecordNotFound {
		return models.Project{}, err
	}

	project = models.Project{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Language:    language,
	}
	err = p.Create(tx, &project)
	return project, err
}
