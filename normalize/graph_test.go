package normalize

import (
	"testing"

	"github.com/opencomply/sbomhub/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGraph(t *testing.T) {
	t.Run("should assign stable content addressed identifiers", func(t *testing.T) {
		first, err := BuildGraph([]manifest.ProvisionalComponent{
			{Name: "requests", Version: "2.31.0", Ecosystem: "pypi"},
		})
		require.NoError(t, err)
		second, err := BuildGraph([]manifest.ProvisionalComponent{
			{Name: "requests", Version: "2.31.0", Ecosystem: "pypi"},
		})
		require.NoError(t, err)

		assert.Equal(t, first.Components()[0].ID, second.Components()[0].ID)
		assert.Len(t, first.Components()[0].ID, 64)
	})

	t.Run("should deduplicate components with identical coordinates", func(t *testing.T) {
		graph, err := BuildGraph([]manifest.ProvisionalComponent{
			{Name: "lodash", Version: "4.17.21", Ecosystem: "npm"},
			{Name: "lodash", Version: "4.17.21", Ecosystem: "npm"},
			{Name: "lodash", Version: "4.17.20", Ecosystem: "npm"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, graph.ComponentCount())
	})

	t.Run("should resolve versioned refs before falling back to name only", func(t *testing.T) {
		graph, err := BuildGraph([]manifest.ProvisionalComponent{
			{Name: "app", Version: "1.0.0", Ecosystem: "npm", DependsOn: []manifest.Ref{
				{Name: "libfoo", Version: "2.0.0"},
				{Name: "libbar"},
			}},
			{Name: "libfoo", Version: "1.0.0", Ecosystem: "npm"},
			{Name: "libfoo", Version: "2.0.0", Ecosystem: "npm"},
			{Name: "libbar", Version: "3.1.4", Ecosystem: "npm"},
		})
		require.NoError(t, err)

		edges := graph.Edges()
		require.Len(t, edges, 2)

		wantFoo := ComponentID(BuildPurl("npm", "libfoo", "2.0.0"))
		wantBar := ComponentID(BuildPurl("npm", "libbar", "3.1.4"))
		children := []string{edges[0].ChildID, edges[1].ChildID}
		assert.Contains(t, children, wantFoo)
		assert.Contains(t, children, wantBar)
	})

	t.Run("should drop refs to components absent from the manifest", func(t *testing.T) {
		graph, err := BuildGraph([]manifest.ProvisionalComponent{
			{Name: "app", Version: "1.0.0", Ecosystem: "npm", DependsOn: []manifest.Ref{
				{Name: "optional-native-binding", Version: "9.9.9"},
			}},
		})
		require.NoError(t, err)
		assert.Empty(t, graph.Edges())
		require.NoError(t, graph.Validate())
	})

	t.Run("should flag a cycle without failing", func(t *testing.T) {
		graph, err := BuildGraph([]manifest.ProvisionalComponent{
			{Name: "a", Version: "1.0.0", Ecosystem: "npm", DependsOn: []manifest.Ref{{Name: "b", Version: "1.0.0"}}},
			{Name: "b", Version: "1.0.0", Ecosystem: "npm", DependsOn: []manifest.Ref{{Name: "a", Version: "1.0.0"}}},
		})
		require.NoError(t, err)
		assert.True(t, graph.HasCycle)
		assert.Len(t, graph.Edges(), 2)
	})

	t.Run("should not flag a diamond as a cycle", func(t *testing.T) {
		graph, err := BuildGraph([]manifest.ProvisionalComponent{
			{Name: "a", Version: "1", Ecosystem: "npm", DependsOn: []manifest.Ref{{Name: "b", Version: "1"}, {Name: "c", Version: "1"}}},
			{Name: "b", Version: "1", Ecosystem: "npm", DependsOn: []manifest.Ref{{Name: "d", Version: "1"}}},
			{Name: "c", Version: "1", Ecosystem: "npm", DependsOn: []manifest.Ref{{Name: "d", Version: "1"}}},
			{Name: "d", Version: "1", Ecosystem: "npm"},
		})
		require.NoError(t, err)
		assert.False(t, graph.HasCycle)
	})

	t.Run("should drop self loops", func(t *testing.T) {
		graph, err := BuildGraph([]manifest.ProvisionalComponent{
			{Name: "recursive", Version: "1.0.0", Ecosystem: "npm", DependsOn: []manifest.Ref{{Name: "recursive", Version: "1.0.0"}}},
		})
		require.NoError(t, err)
		assert.Empty(t, graph.Edges())
		assert.False(t, graph.HasCycle)
	})

	t.Run("should treat a flat list as a forest of roots", func(t *testing.T) {
		graph, err := BuildGraph([]manifest.ProvisionalComponent{
			{Name: "requests", Version: "2.31.0", Ecosystem: "pypi"},
			{Name: "flask", Version: "3.0.0", Ecosystem: "pypi"},
		})
		require.NoError(t, err)
		assert.Len(t, graph.Roots(), 2)
	})
}

func TestValidate(t *testing.T) {
	t.Run("should reject an edge referencing an unknown component", func(t *testing.T) {
		graph := NewGraph()
		graph.AddComponent(&Component{ID: "a"})
		graph.AddEdge("a", "ghost")

		err := graph.Validate()
		require.Error(t, err)
		var graphErr *GraphError
		assert.ErrorAs(t, err, &graphErr)
	})
}

func TestToCycloneDX(t *testing.T) {
	t.Run("should export components and dependency edges", func(t *testing.T) {
		graph, err := BuildGraph([]manifest.ProvisionalComponent{
			{Name: "app", Version: "1.0.0", Ecosystem: "npm", License: "MIT", DependsOn: []manifest.Ref{{Name: "left-pad", Version: "1.3.0"}}},
			{Name: "left-pad", Version: "1.3.0", Ecosystem: "npm"},
		})
		require.NoError(t, err)

		bom := graph.ToCycloneDX(BOMMetadata{ProjectName: "demo", Version: "4"})

		require.NotNil(t, bom.Components)
		assert.Len(t, *bom.Components, 2)
		assert.Equal(t, "demo", bom.Metadata.Component.Name)

		require.NotNil(t, bom.Dependencies)
		// root pseudo node plus the app entry
		assert.Len(t, *bom.Dependencies, 2)
	})
}

func TestBuildPurl(t *testing.T) {
	t.Run("should split a namespaced name at the last slash", func(t *testing.T) {
		assert.Equal(t, "pkg:golang/github.com/spf13/cobra@v1.10.2", BuildPurl("golang", "github.com/spf13/cobra", "v1.10.2"))
	})

	t.Run("should default an empty ecosystem to generic", func(t *testing.T) {
		assert.Equal(t, "pkg:generic/mystery@1.0", BuildPurl("", "mystery", "1.0"))
	})
}
