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

package controllers

import (
	"github.com/opencomply/sbomhub/manifest"
	"github.com/opencomply/sbomhub/shared"
)

type LanguageController struct{}

func NewLanguageController() *LanguageController {
	return &LanguageController{}
}

// @Summary List the supported language hints
// @Success 200 {array} string
// @Router /languages [get]
func (c *LanguageController) List(ctx shared.Context) error {
	return ctx.JSON(200, manifest.SupportedLanguages())
}
