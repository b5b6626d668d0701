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
	"regexp"
	"strings"
)

// requirementsFormat parses pip requirements files. A plain dependency
// declaration file: no edges, versions only for pinned (==) entries.
type requirementsFormat struct{}

// e.g. "requests==2.31.0", "flask>=2,<3", "sqlalchemy[asyncio]~=2.0"
var requirementLine = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)(\[[A-Za-z0-9,._-]+\])?\s*(==|>=|<=|~=|!=|>|<|===)?\s*([^;#\s]*)`)

func (requirementsFormat) Name() string {
	return "requirements.txt"
}

func (requirementsFormat) Ecosystem() string {
	return "pypi"
}

func (requirementsFormat) Detect(artifact []byte) bool {
	trimmed := bytes.TrimSpace(artifact)
	if len(trimmed) == 0 || trimmed[0] == '{' || trimmed[0] == '<' {
		return false
	}

	// at least one non-comment line has to look like a requirement,
	// none may look like something else entirely
	matched := 0
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if !requirementLine.MatchString(line) || strings.ContainsAny(line, "{}:") {
			return false
		}
		matched++
	}
	return matched > 0
}

func (f requirementsFormat) Extract(artifact []byte) ([]ProvisionalComponent, error) {
	var components []ProvisionalComponent

	scanner := bufio.NewScanner(bytes.NewReader(artifact))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// option lines (-r, -e, --index-url ...) carry no component
		if strings.HasPrefix(line, "-") {
			continue
		}

		match := requirementLine.FindStringSubmatch(line)
		if match == nil {
			return nil, fmt.Errorf("line %d is not a valid requirement: %q", lineNo, line)
		}

		version := ""
		if match[3] == "==" || match[3] == "===" {
			version = match[4]
		}

		components = append(components, ProvisionalComponent{
			Name:      strings.ToLower(match[1]),
			Version:   version,
			Ecosystem: f.Ecosystem(),
		})
	}

	return components, scanner.Err()
}
