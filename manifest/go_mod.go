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
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// goModFormat parses go.mod files. A plain declaration file: the
// require block is a flat list, edges live in the module graph which a
// go.mod alone does not carry.
type goModFormat struct{}

func (goModFormat) Name() string {
	return "go.mod"
}

func (goModFormat) Ecosystem() string {
	return "golang"
}

func (goModFormat) Detect(artifact []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(artifact))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		return strings.HasPrefix(line, "module ")
	}
	return false
}

func (f goModFormat) Extract(artifact []byte) ([]ProvisionalComponent, error) {
	var components []ProvisionalComponent

	inRequireBlock := false
	scanner := bufio.NewScanner(bytes.NewReader(artifact))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if idx := strings.Index(line, "//"); idx != -1 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}

		switch {
		case line == "require (":
			inRequireBlock = true
			continue
		case inRequireBlock && line == ")":
			inRequireBlock = false
			continue
		case strings.HasPrefix(line, "require "):
			line = strings.TrimPrefix(line, "require ")
		case !inRequireBlock:
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed require directive: %q", line)
		}

		components = append(components, ProvisionalComponent{
			Name:      fields[0],
			Version:   fields[1],
			Ecosystem: f.Ecosystem(),
		})
	}

	return components, scanner.Err()
}
