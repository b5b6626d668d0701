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
	"fmt"
	"slices"
	"strings"
)

// VersionUnresolved marks components whose manifest declares a range or
// no version at all. The sentinel keeps content addressing stable
// across re-submissions of the same manifest.
const VersionUnresolved = "unresolved"

// Ref points at another component declared in the same manifest.
// Version may be empty if the manifest only declares a range.
type Ref struct {
	Name    string
	Version string
}

// ProvisionalComponent is the raw parse result before graph
// normalization. DependsOn carries declared direct dependency edges;
// flat formats leave it empty.
type ProvisionalComponent struct {
	Name      string
	Version   string
	Ecosystem string
	License   string
	DependsOn []Ref
}

type ParseReason string

const (
	ReasonSyntax      ParseReason = "syntax"
	ReasonUnsupported ParseReason = "unsupported"
	ReasonEmpty       ParseReason = "empty"
)

type ParseError struct {
	Reason ParseReason
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("manifest parse failed (%s, format=%s): %s", e.Reason, e.Format, e.Err.Error())
	}
	return fmt.Sprintf("manifest parse failed (%s, format=%s)", e.Reason, e.Format)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(reason ParseReason, format string, err error) *ParseError {
	return &ParseError{Reason: reason, Format: format, Err: err}
}

// Format is the capability set every supported manifest format
// implements. Adding an ecosystem means adding a Format, not touching
// the dispatcher.
type Format interface {
	// Name of the manifest format, e.g. "package-lock.json".
	Name() string
	// Ecosystem the format belongs to ("npm", "pypi", ...). The
	// CycloneDX passthrough returns "" since a BOM can carry any
	// ecosystem.
	Ecosystem() string
	Detect(artifact []byte) bool
	Extract(artifact []byte) ([]ProvisionalComponent, error)
}

// ordered: lock files before plain declaration files, BOM passthrough
// first since its detection is exact.
var formats = []Format{
	cycloneDXFormat{},
	packageLockFormat{},
	pnpmLockFormat{},
	composerLockFormat{},
	goModFormat{},
	requirementsFormat{},
}

// hintEcosystems maps the submission language hint to the ecosystem a
// matching format must belong to. Unknown hints do not constrain
// detection.
var hintEcosystems = map[string]string{
	"python":     "pypi",
	"javascript": "npm",
	"golang":     "golang",
	"php":        "composer",
}

// SupportedLanguages returns the language hints the parser understands,
// sorted for a stable catalogue endpoint.
func SupportedLanguages() []string {
	languages := make([]string, 0, len(hintEcosystems))
	for hint := range hintEcosystems {
		languages = append(languages, hint)
	}
	slices.Sort(languages)
	return languages
}

// Parse converts raw artifact bytes into a deduplicated provisional
// component list. The language hint only reorders detection; detection
// itself decides the format. A hint that irreconcilably disagrees with
// the detected format fails closed.
func Parse(artifact []byte, languageHint string) ([]ProvisionalComponent, error) {
	if len(artifact) == 0 {
		return nil, newParseError(ReasonEmpty, "", fmt.Errorf("artifact is empty"))
	}

	hintedEcosystem := hintEcosystems[strings.ToLower(strings.TrimSpace(languageHint))]

	candidates := orderByHint(formats, hintedEcosystem)

	var detected Format
	for _, format := range candidates {
		if format.Detect(artifact) {
			detected = format
			break
		}
	}

	if detected == nil {
		return nil, newParseError(ReasonUnsupported, "", fmt.Errorf("no supported manifest format detected"))
	}

	// the CycloneDX passthrough is ecosystem-agnostic and never
	// conflicts with a hint
	if hintedEcosystem != "" && detected.Ecosystem() != "" && detected.Ecosystem() != hintedEcosystem {
		return nil, newParseError(ReasonUnsupported, detected.Name(), fmt.Errorf("detected %s manifest but language hint requires %s", detected.Ecosystem(), hintedEcosystem))
	}

	components, err := detected.Extract(artifact)
	if err != nil {
		return nil, newParseError(ReasonSyntax, detected.Name(), err)
	}

	components = dedupe(normalizeList(components))
	if len(components) == 0 {
		// a project with zero components is suspicious, not valid
		return nil, newParseError(ReasonEmpty, detected.Name(), fmt.Errorf("manifest declares no components"))
	}

	return components, nil
}

// DetectFormatName reports which format claims the artifact, or ""
// when none does. Used for snapshot metadata only, Parse re-runs the
// detection itself.
func DetectFormatName(artifact []byte) string {
	for _, format := range formats {
		if format.Detect(artifact) {
			return format.Name()
		}
	}
	return ""
}

func orderByHint(all []Format, hintedEcosystem string) []Format {
	if hintedEcosystem == "" {
		return all
	}
	ordered := make([]Format, 0, len(all))
	for _, f := range all {
		if f.Ecosystem() == hintedEcosystem {
			ordered = append(ordered, f)
		}
	}
	for _, f := range all {
		if f.Ecosystem() != hintedEcosystem {
			ordered = append(ordered, f)
		}
	}
	return ordered
}

func normalizeList(components []ProvisionalComponent) []ProvisionalComponent {
	result := make([]ProvisionalComponent, 0, len(components))
	for _, c := range components {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			continue
		}
		if strings.TrimSpace(c.Version) == "" {
			c.Version = VersionUnresolved
		}
		result = append(result, c)
	}
	return result
}

// dedupe removes duplicate (name, version) pairs while preserving
// order. Dependency refs and license information of duplicates merge
// into the first occurrence.
func dedupe(components []ProvisionalComponent) []ProvisionalComponent {
	type key struct{ name, version string }

	index := make(map[key]int, len(components))
	result := make([]ProvisionalComponent, 0, len(components))

	for _, c := range components {
		k := key{c.Name, c.Version}
		if i, ok := index[k]; ok {
			existing := &result[i]
			if existing.License == "" {
				existing.License = c.License
			}
			for _, ref := range c.DependsOn {
				if !slices.Contains(existing.DependsOn, ref) {
					existing.DependsOn = append(existing.DependsOn, ref)
				}
			}
			continue
		}
		index[k] = len(result)
		result = append(result, c)
	}

	return result
}
