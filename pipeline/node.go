package pipeline

import (
	"context"
	"fmt"

	"github.com/go-parti/parti/errors"
)

// A NodeFunc is the computation bound to a Node. Inputs and outputs are
// keyed by the names declared on the Node.
type NodeFunc func(ctx context.Context, inputs map[string]interface{}) (map[string]interface{}, error)

// A Node is a single unit of computation in a host framework's execution
// graph, declared at pipeline-build time. Nodes are value types: expansion
// copies them and never mutates the original declaration.
type Node struct {
	ID      string   // Stable identifier. Assigned deterministically for generated nodes.
	Name    string   // Unique name within a Pipeline
	Inputs  []string // Named inputs, resolved by the host framework's catalog
	Outputs []string // Named outputs, registered with the host framework's catalog
	Func    NodeFunc // The computation to run
}

// clone returns a deep copy of this Node's declaration
func (n Node) clone() Node {
	inputs := make([]string, len(n.Inputs))
	copy(inputs, n.Inputs)
	outputs := make([]string, len(n.Outputs))
	copy(outputs, n.Outputs)
	n.Inputs = inputs
	n.Outputs = outputs
	return n
}

func (n Node) validate() error {
	if n.Name == "" {
		return errors.ConfigurationError{Reason: "node has no name"}
	}
	if n.Func == nil {
		return errors.ConfigurationError{Reason: fmt.Sprintf("node %s has no function", n.Name)}
	}
	return nil
}

// A Pipeline is an ordered declaration of Nodes with unique names. Execution
// order and data dependency resolution are owned by the host framework; a
// Pipeline here is only the declaration handed to it.
type Pipeline struct {
	nodes []Node
}

// CreatePipeline is a factory for Pipelines. Duplicate or empty node names
// are configuration errors.
func CreatePipeline(nodes ...Node) (*Pipeline, error) {
	seen := make(map[string]bool, len(nodes))
	owned := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if err := n.validate(); err != nil {
			return nil, err
		}
		if seen[n.Name] {
			return nil, errors.ConfigurationError{Reason: fmt.Sprintf("pipeline already contains node with name %s", n.Name)}
		}
		seen[n.Name] = true
		owned = append(owned, n.clone())
	}
	return &Pipeline{nodes: owned}, nil
}

// NumNodes returns the number of nodes declared in this Pipeline
func (p *Pipeline) NumNodes() int {
	return len(p.nodes)
}

// Nodes returns a copy of this Pipeline's node declarations, in order
func (p *Pipeline) Nodes() []Node {
	nodes := make([]Node, len(p.nodes))
	for i, n := range p.nodes {
		nodes[i] = n.clone()
	}
	return nodes
}
