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

package normalize

import (
	"fmt"
	"slices"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/opencomply/sbomhub/manifest"
)

// Component is a node of the normalized graph. ConfirmedLicense and
// Findings stay empty until enrichment succeeds; their absence means
// "unknown", never "clean".
type Component struct {
	ID               string
	Purl             string
	Name             string
	Version          string
	Ecosystem        string
	DeclaredLicense  string
	ConfirmedLicense *string
	LatestVersion    *string
	Findings         []Finding
}

// Finding is a vulnerability reported by the enrichment service for a
// single component.
type Finding struct {
	AdvisoryID string
	Severity   string
	CVSS       float64
	Vector     string
	Source     string
}

// Edge is a directed dependency: parent depends on child.
type Edge struct {
	ParentID string
	ChildID  string
}

// ComponentGraph is the deduplicated dependency graph of one
// submission. Pure in-memory structure; building it touches neither
// network nor storage.
type ComponentGraph struct {
	HasCycle bool

	components map[string]*Component
	order      []string
	edges      []Edge
	edgeSet    map[Edge]struct{}
}

// GraphError signals structural corruption, e.g. an edge referencing a
// component the graph does not contain. A detected cycle is a flag, not
// a GraphError.
type GraphError struct {
	Reason string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("component graph is corrupt: %s", e.Reason)
}

func NewGraph() *ComponentGraph {
	return &ComponentGraph{
		components: make(map[string]*Component),
		edgeSet:    make(map[Edge]struct{}),
	}
}

// BuildGraph assembles the provisional list into a deduplicated graph
// with stable content-addressed identifiers. Dependency refs that do
// not resolve to a declared component are dropped (lock files routinely
// reference optional packages that were never installed). A flat list
// without edges yields a forest of singleton roots, which is a valid
// degenerate case, not an error.
func BuildGraph(provisional []manifest.ProvisionalComponent) (*ComponentGraph, error) {
	graph := NewGraph()

	type ref struct{ name, version, ecosystem string }
	byExact := make(map[ref]string, len(provisional))
	byName := make(map[string]string, len(provisional))

	for _, p := range provisional {
		purl := BuildPurl(p.Ecosystem, p.Name, p.Version)
		component := &Component{
			ID:              ComponentID(purl),
			Purl:            purl,
			Name:            p.Name,
			Version:         p.Version,
			Ecosystem:       p.Ecosystem,
			DeclaredLicense: p.License,
		}
		graph.AddComponent(component)

		byExact[ref{p.Name, p.Version, p.Ecosystem}] = component.ID
		if _, ok := byName[p.Name]; !ok {
			byName[p.Name] = component.ID
		}
	}

	for _, p := range provisional {
		parentID := byExact[ref{p.Name, p.Version, p.Ecosystem}]
		for _, dep := range p.DependsOn {
			childID, ok := byExact[ref{dep.Name, dep.Version, p.Ecosystem}]
			if !ok {
				childID, ok = byName[dep.Name]
			}
			if !ok {
				continue
			}
			graph.AddEdge(parentID, childID)
		}
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}

	graph.HasCycle = graph.detectCycle()
	return graph, nil
}

// AddComponent inserts a node; a node with the same identifier is a
// duplicate and ignored.
func (g *ComponentGraph) AddComponent(component *Component) {
	if _, ok := g.components[component.ID]; ok {
		return
	}
	g.components[component.ID] = component
	g.order = append(g.order, component.ID)
}

// AddEdge inserts a directed dependency edge. Self-loops are dropped,
// duplicate edges collapse.
func (g *ComponentGraph) AddEdge(parentID, childID string) {
	if parentID == childID {
		return
	}
	edge := Edge{ParentID: parentID, ChildID: childID}
	if _, ok := g.edgeSet[edge]; ok {
		return
	}
	g.edgeSet[edge] = struct{}{}
	g.edges = append(g.edges, edge)
}

func (g *ComponentGraph) Component(id string) (*Component, bool) {
	c, ok := g.components[id]
	return c, ok
}

// Components returns all nodes in insertion order.
func (g *ComponentGraph) Components() []*Component {
	result := make([]*Component, 0, len(g.order))
	for _, id := range g.order {
		result = append(result, g.components[id])
	}
	return result
}

func (g *ComponentGraph) Edges() []Edge {
	return slices.Clone(g.edges)
}

func (g *ComponentGraph) ComponentCount() int {
	return len(g.order)
}

func (g *ComponentGraph) FindingCount() int {
	count := 0
	for _, id := range g.order {
		count += len(g.components[id].Findings)
	}
	return count
}

// Roots returns all components without incoming edges. In a flat
// manifest every component is a root.
func (g *ComponentGraph) Roots() []*Component {
	hasParent := make(map[string]bool, len(g.edges))
	for _, edge := range g.edges {
		hasParent[edge.ChildID] = true
	}
	result := make([]*Component, 0, len(g.order))
	for _, id := range g.order {
		if !hasParent[id] {
			result = append(result, g.components[id])
		}
	}
	return result
}

// Validate checks structural integrity: every edge has to reference
// declared components on both ends.
func (g *ComponentGraph) Validate() error {
	for _, edge := range g.edges {
		if _, ok := g.components[edge.ParentID]; !ok {
			return &GraphError{Reason: fmt.Sprintf("edge references unknown parent %s", edge.ParentID)}
		}
		if _, ok := g.components[edge.ChildID]; !ok {
			return &GraphError{Reason: fmt.Sprintf("edge references unknown child %s", edge.ChildID)}
		}
	}
	return nil
}

// detectCycle runs an iterative three-color depth first search. Edges
// of a cycle stay in the graph, consumers must not assume acyclicity.
func (g *ComponentGraph) detectCycle() bool {
	adjacency := make(map[string][]string, len(g.components))
	for _, edge := range g.edges {
		adjacency[edge.ParentID] = append(adjacency[edge.ParentID], edge.ChildID)
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(g.components))

	for _, start := range g.order {
		if color[start] != white {
			continue
		}

		// stack frames track the next child index to visit
		type frame struct {
			id   string
			next int
		}
		stack := []frame{{id: start}}
		color[start] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := adjacency[top.id]
			if top.next >= len(children) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := children[top.next]
			top.next++

			switch color[child] {
			case gray:
				return true
			case white:
				color[child] = gray
				stack = append(stack, frame{id: child})
			}
		}
	}

	return false
}

// BOMMetadata carries snapshot level information into an exported BOM.
type BOMMetadata struct {
	ProjectName string
	Version     string
}

// ToCycloneDX exports the graph as a CycloneDX BOM so callers can feed
// the stored snapshot back into other tooling.
func (g *ComponentGraph) ToCycloneDX(metadata BOMMetadata) *cdx.BOM {
	bom := cdx.NewBOM()
	bom.Metadata = &cdx.Metadata{
		Component: &cdx.Component{
			BOMRef:  "root",
			Type:    cdx.ComponentTypeApplication,
			Name:    metadata.ProjectName,
			Version: metadata.Version,
		},
	}

	components := make([]cdx.Component, 0, len(g.order))
	for _, component := range g.Components() {
		license := component.DeclaredLicense
		if component.ConfirmedLicense != nil {
			license = *component.ConfirmedLicense
		}
		cdxComponent := cdx.Component{
			BOMRef:     component.Purl,
			Type:       cdx.ComponentTypeLibrary,
			Name:       component.Name,
			Version:    component.Version,
			PackageURL: component.Purl,
		}
		if license != "" {
			cdxComponent.Licenses = &cdx.Licenses{cdx.LicenseChoice{License: &cdx.License{Name: license}}}
		}
		components = append(components, cdxComponent)
	}
	bom.Components = &components

	childrenByParent := make(map[string][]string)
	for _, edge := range g.edges {
		parent := g.components[edge.ParentID]
		child := g.components[edge.ChildID]
		childrenByParent[parent.Purl] = append(childrenByParent[parent.Purl], child.Purl)
	}

	rootRefs := make([]string, 0)
	for _, root := range g.Roots() {
		rootRefs = append(rootRefs, root.Purl)
	}

	dependencies := make([]cdx.Dependency, 0, len(childrenByParent)+1)
	dependencies = append(dependencies, cdx.Dependency{Ref: "root", Dependencies: &rootRefs})
	for _, component := range g.Components() {
		children, ok := childrenByParent[component.Purl]
		if !ok {
			continue
		}
		slices.Sort(children)
		dependencies = append(dependencies, cdx.Dependency{Ref: component.Purl, Dependencies: &children})
	}
	bom.Dependencies = &dependencies

	return bom
}
