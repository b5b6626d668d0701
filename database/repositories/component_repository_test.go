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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func TestComponentUpsertClause(t *testing.T) {
	t.Run("should only refresh the enrichment columns on conflict", func(t *testing.T) {
		onConflict := componentUpsertClause()

		require.Len(t, onConflict.Columns, 1)
		assert.Equal(t, "id", onConflict.Columns[0].Name)

		columns := make([]string, 0, len(onConflict.DoUpdates))
		for _, assignment := range onConflict.DoUpdates {
			columns = append(columns, assignment.Column.Name)
		}
		assert.ElementsMatch(t, []string{"confirmed_license", "latest_version"}, columns)
	})

	t.Run("should keep stored values when the incoming row carries null", func(t *testing.T) {
		// component rows are shared across snapshots, so a degraded
		// enrichment pass must not blank out values a previous pass
		// already confirmed
		for _, assignment := range componentUpsertClause().DoUpdates {
			expr, ok := assignment.Value.(clause.Expr)
			require.True(t, ok)
			assert.Equal(t, "COALESCE(excluded."+assignment.Column.Name+", components."+assignment.Column.Name+")", expr.SQL)
		}
	})
}
