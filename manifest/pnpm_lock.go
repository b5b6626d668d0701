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
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// pnpmLockFormat parses pnpm-lock.yaml (lockfile format 6.x/9.x).
// Package keys look like "/@babel/core@7.24.0" (6.x) or
// "@babel/core@7.24.0" (9.x); snapshots carry resolved dependency
// versions, so edges are versioned.
type pnpmLockFormat struct{}

type pnpmLockFile struct {
	LockfileVersion string                   `yaml:"lockfileVersion"`
	Packages        map[string]pnpmLockEntry `yaml:"packages"`
	Snapshots       map[string]pnpmSnapshot  `yaml:"snapshots"`
}

type pnpmLockEntry struct {
	Dependencies map[string]string `yaml:"dependencies"`
}

type pnpmSnapshot struct {
	Dependencies map[string]string `yaml:"dependencies"`
}

func (pnpmLockFormat) Name() string {
	return "pnpm-lock.yaml"
}

func (pnpmLockFormat) Ecosystem() string {
	return "npm"
}

func (pnpmLockFormat) Detect(artifact []byte) bool {
	if !bytes.Contains(artifact, []byte("lockfileVersion")) {
		return false
	}
	var probe struct {
		LockfileVersion string                 `yaml:"lockfileVersion"`
		Packages        map[string]yaml.Node   `yaml:"packages"`
	}
	if err := yaml.Unmarshal(artifact, &probe); err != nil {
		return false
	}
	return probe.LockfileVersion != "" && probe.Packages != nil
}

func (f pnpmLockFormat) Extract(artifact []byte) ([]ProvisionalComponent, error) {
	var lock pnpmLockFile
	if err := yaml.Unmarshal(artifact, &lock); err != nil {
		return nil, err
	}

	var components []ProvisionalComponent
	for key, entry := range lock.Packages {
		name, version := splitPnpmKey(key)
		if name == "" {
			continue
		}

		deps := entry.Dependencies
		// 9.x moved resolved edges into the snapshots section
		if snapshot, ok := lock.Snapshots[key]; ok && len(snapshot.Dependencies) > 0 {
			deps = snapshot.Dependencies
		}

		refs := make([]Ref, 0, len(deps))
		for depName, depVersion := range deps {
			// peer-dependency suffixes like "1.2.3(react@18.2.0)" are
			// not part of the resolved version
			if idx := strings.IndexByte(depVersion, '('); idx != -1 {
				depVersion = depVersion[:idx]
			}
			refs = append(refs, Ref{Name: depName, Version: depVersion})
		}

		components = append(components, ProvisionalComponent{
			Name:      name,
			Version:   version,
			Ecosystem: f.Ecosystem(),
			DependsOn: refs,
		})
	}

	return components, nil
}

// splitPnpmKey splits "/@scope/name@1.2.3" or "name@1.2.3" into name
// and version. Peer-dependency suffixes are stripped.
func splitPnpmKey(key string) (string, string) {
	key = strings.TrimPrefix(key, "/")
	if idx := strings.IndexByte(key, '('); idx != -1 {
		key = key[:idx]
	}
	at := strings.LastIndexByte(key, '@')
	if at <= 0 { // leading @ belongs to the scope
		return key, ""
	}
	return key[:at], key[at+1:]
}
