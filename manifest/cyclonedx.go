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
	"encoding/json"
	"fmt"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/package-url/packageurl-go"
)

// cycloneDXFormat accepts an already generated CycloneDX JSON BOM as a
// manifest. Scanners like cyclonedx-npm or cdxgen emit these; the BOM
// carries the full dependency graph, so this is the richest input we
// support.
type cycloneDXFormat struct{}

func (cycloneDXFormat) Name() string {
	return "cyclonedx.json"
}

// a BOM can describe any ecosystem, so it never conflicts with the
// language hint
func (cycloneDXFormat) Ecosystem() string {
	return ""
}

func (cycloneDXFormat) Detect(artifact []byte) bool {
	var probe struct {
		BOMFormat string `json:"bomFormat"`
	}
	if err := json.Unmarshal(artifact, &probe); err != nil {
		return false
	}
	return probe.BOMFormat == "CycloneDX"
}

func (cycloneDXFormat) Extract(artifact []byte) ([]ProvisionalComponent, error) {
	var bom cdx.BOM
	decoder := cdx.NewBOMDecoder(bytes.NewReader(artifact), cdx.BOMFileFormatJSON)
	if err := decoder.Decode(&bom); err != nil {
		return nil, err
	}
	if bom.Components == nil {
		return nil, fmt.Errorf("bom has no components section")
	}

	byRef := make(map[string]Ref, len(*bom.Components))
	components := make([]ProvisionalComponent, 0, len(*bom.Components))
	index := make(map[Ref]int, len(*bom.Components))

	for _, component := range *bom.Components {
		provisional := ProvisionalComponent{
			Name:      component.Name,
			Version:   component.Version,
			Ecosystem: ecosystemFromPurl(component.PackageURL),
			License:   licenseFromCDX(component.Licenses),
		}
		ref := Ref{Name: provisional.Name, Version: provisional.Version}
		if component.BOMRef != "" {
			byRef[component.BOMRef] = ref
		}
		index[ref] = len(components)
		components = append(components, provisional)
	}

	if bom.Dependencies != nil {
		for _, dependency := range *bom.Dependencies {
			parent, ok := byRef[dependency.Ref]
			if !ok || dependency.Dependencies == nil {
				// the metadata root component is referenced here but is
				// not part of the component list
				continue
			}
			i, ok := index[parent]
			if !ok {
				continue
			}
			for _, childRef := range *dependency.Dependencies {
				if child, ok := byRef[childRef]; ok {
					components[i].DependsOn = append(components[i].DependsOn, child)
				}
			}
		}
	}

	return components, nil
}

func ecosystemFromPurl(purl string) string {
	if purl == "" {
		return "generic"
	}
	parsed, err := packageurl.FromString(purl)
	if err != nil {
		return "generic"
	}
	return parsed.Type
}

func licenseFromCDX(licenses *cdx.Licenses) string {
	if licenses == nil {
		return ""
	}
	for _, choice := range *licenses {
		if choice.Expression != "" {
			return choice.Expression
		}
		if choice.License != nil {
			if choice.License.ID != "" {
				return choice.License.ID
			}
			if choice.License.Name != "" {
				return choice.License.Name
			}
		}
	}
	return ""
}
