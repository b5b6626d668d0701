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
	"fmt"
	"strings"
)

// packageLockFormat parses npm package-lock.json, lockfile version 2
// and 3. The "packages" map carries the full dependency graph.
type packageLockFormat struct{}

type packageLockFile struct {
	Name            string                      `json:"name"`
	LockfileVersion int                         `json:"lockfileVersion"`
	Packages        map[string]packageLockEntry `json:"packages"`
}

type packageLockEntry struct {
	Version      string            `json:"version"`
	License      string            `json:"license"`
	Dependencies map[string]string `json:"dependencies"`
}

func (packageLockFormat) Name() string {
	return "package-lock.json"
}

func (packageLockFormat) Ecosystem() string {
	return "npm"
}

func (packageLockFormat) Detect(artifact []byte) bool {
	var probe struct {
		LockfileVersion *int             `json:"lockfileVersion"`
		Packages        *json.RawMessage `json:"packages"`
	}
	if err := json.Unmarshal(artifact, &probe); err != nil {
		return false
	}
	return probe.LockfileVersion != nil && probe.Packages != nil
}

func (f packageLockFormat) Extract(artifact []byte) ([]ProvisionalComponent, error) {
	var lock packageLockFile
	if err := json.Unmarshal(artifact, &lock); err != nil {
		return nil, err
	}
	if lock.LockfileVersion < 2 {
		return nil, fmt.Errorf("lockfileVersion %d is not supported, regenerate with npm >= 7", lock.LockfileVersion)
	}

	var components []ProvisionalComponent
	for path, entry := range lock.Packages {
		// the "" entry is the project itself, not a dependency
		if path == "" {
			continue
		}
		name := nameFromLockPath(path)
		if name == "" {
			continue
		}

		refs := make([]Ref, 0, len(entry.Dependencies))
		for dep := range entry.Dependencies {
			// the lock file only gives us a range per edge; the graph
			// builder resolves the concrete node by name
			refs = append(refs, Ref{Name: dep})
		}

		components = append(components, ProvisionalComponent{
			Name:      name,
			Version:   entry.Version,
			Ecosystem: f.Ecosystem(),
			License:   entry.License,
			DependsOn: refs,
		})
	}

	return components, nil
}

// nameFromLockPath extracts the package name from a node_modules path,
// keeping the scope: "node_modules/@babel/core" -> "@babel/core",
// "node_modules/foo/node_modules/bar" -> "bar".
func nameFromLockPath(path string) string {
	idx := strings.LastIndex(path, "node_modules/")
	if idx == -1 {
		return ""
	}
	return path[idx+len("node_modules/"):]
}
