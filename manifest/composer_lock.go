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

package manifest

import (
	"encoding/json"
	"strings"
)

// composerLockFormat parses composer.lock. Packages carry their
// require map, so the dependency graph is recoverable by name.
type composerLockFormat struct{}

type composerLockFile struct {
	ContentHash string                `json:"content-hash"`
	Packages    []composerLockPackage `json:"packages"`
	PackagesDev []composerLockPackage `json:"packages-dev"`
}

type composerLockPackage struct {
	Name    string            `json:"name"`
	Version string            `json:"version"`
	License []string          `json:"license"`
	Require map[string]string `json:"require"`
}

func (composerLockFormat) Name() string {
	return "composer.lock"
}

func (composerLockFormat) Ecosystem() string {
	return "composer"
}

func (composerLockFormat) Detect(artifact []byte) bool {
	var probe struct {
		ContentHash *string          `json:"content-hash"`
		Packages    *json.RawMessage `json:"packages"`
	}
	if err := json.Unmarshal(artifact, &probe); err != nil {
		return false
	}
	return probe.ContentHash != nil && probe.Packages != nil
}

func (f composerLockFormat) Extract(artifact []byte) ([]ProvisionalComponent, error) {
	var lock composerLockFile
	if err := json.Unmarshal(artifact, &lock); err != nil {
		return nil, err
	}

	var components []ProvisionalComponent
	for _, pkg := range append(lock.Packages, lock.PackagesDev...) {
		refs := make([]Ref, 0, len(pkg.Require))
		for dep := range pkg.Require {
			// "php" and extension pseudo-packages are platform
			// requirements, not components
			if dep == "php" || strings.HasPrefix(dep, "ext-") || strings.HasPrefix(dep, "lib-") {
				continue
			}
			refs = append(refs, Ref{Name: dep})
		}

		license := ""
		if len(pkg.License) > 0 {
			license = pkg.License[0]
		}

		components = append(components, ProvisionalComponent{
			Name:      pkg.Name,
			Version:   strings.TrimPrefix(pkg.Version, "v"),
			Ecosystem: f.Ecosystem(),
			License:   license,
			DependsOn: refs,
		})
	}

	return components, nil
}
