package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-parti/parti/datasource/memory"
	"github.com/go-parti/parti/errors"
)

func reportNode() Node {
	return Node{
		Name:    "report",
		Inputs:  []string{"cleaned"},
		Outputs: []string{"report"},
		Func: func(ctx context.Context, in map[string]interface{}) (map[string]interface{}, error) {
			return map[string]interface{}{"report": in["cleaned"]}, nil
		},
	}
}

func TestMultipipelineExpandsEveryNode(t *testing.T) {
	p, err := CreatePipeline(cleanNode(), reportNode())
	require.Nil(t, err)
	enum := memory.CreateDataSource("na", "eu")

	expanded, err := Multipipeline(context.Background(), p, enum, nil, nil)
	require.Nil(t, err)
	require.Equal(t, 4, expanded.NumNodes())
	names := make([]string, 0, 4)
	for _, n := range expanded.Nodes() {
		names = append(names, n.Name)
	}
	require.Equal(t, []string{"clean#na", "clean#eu", "report#na", "report#eu"}, names)
}

func TestMultipipelineMatchCopiesOthersThrough(t *testing.T) {
	p, err := CreatePipeline(cleanNode(), reportNode())
	require.Nil(t, err)
	enum := memory.CreateDataSource("na", "eu")

	expanded, err := Multipipeline(context.Background(), p, enum, func(name string) bool {
		return name == "clean"
	}, nil)
	require.Nil(t, err)
	require.Equal(t, 3, expanded.NumNodes())
	nodes := expanded.Nodes()
	require.Equal(t, "clean#na", nodes[0].Name)
	require.Equal(t, "clean#eu", nodes[1].Name)
	require.Equal(t, "report", nodes[2].Name)
	require.Equal(t, []string{"cleaned"}, nodes[2].Inputs)
}

func TestMultipipelineDoesNotMutateOriginal(t *testing.T) {
	p, err := CreatePipeline(cleanNode())
	require.Nil(t, err)
	_, err = Multipipeline(context.Background(), p, memory.CreateDataSource("na"), nil, nil)
	require.Nil(t, err)
	require.Equal(t, 1, p.NumNodes())
	require.Equal(t, "clean", p.Nodes()[0].Name)
}

func TestMultipipelineCollectsAllNodeErrors(t *testing.T) {
	twoOut := cleanNode()
	twoOut.Name = "split"
	twoOut.Outputs = []string{"left", "right"}
	alsoBad := cleanNode()
	alsoBad.Name = "fanout"
	alsoBad.Outputs = []string{"a", "b"}
	p, err := CreatePipeline(twoOut, alsoBad)
	require.Nil(t, err)

	_, err = Multipipeline(context.Background(), p, memory.CreateDataSource("na"), nil, &MultinodeConf{GatherOutput: "all"})
	require.NotNil(t, err)
	require.True(t, strings.Contains(err.Error(), "node split"))
	require.True(t, strings.Contains(err.Error(), "node fanout"))
}

func TestMultipipelineRequiresDeclarationAndEnumerator(t *testing.T) {
	p, err := CreatePipeline(cleanNode())
	require.Nil(t, err)

	_, err = Multipipeline(context.Background(), nil, memory.CreateDataSource("na"), nil, nil)
	require.IsType(t, errors.ConfigurationError{}, err)

	_, err = Multipipeline(context.Background(), p, nil, nil, nil)
	require.IsType(t, errors.ConfigurationError{}, err)
}

func TestMultipipelineEmptyEnumerationDropsMatchedNodes(t *testing.T) {
	p, err := CreatePipeline(cleanNode(), reportNode())
	require.Nil(t, err)

	expanded, err := Multipipeline(context.Background(), p, memory.CreateDataSource(), func(name string) bool {
		return name == "clean"
	}, nil)
	require.Nil(t, err)
	require.Equal(t, 1, expanded.NumNodes())
	require.Equal(t, "report", expanded.Nodes()[0].Name)
}

func TestCreatePipelineRejectsDuplicateNames(t *testing.T) {
	_, err := CreatePipeline(cleanNode(), cleanNode())
	require.NotNil(t, err)
	require.IsType(t, errors.ConfigurationError{}, err)
}
