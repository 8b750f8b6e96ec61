package pipeline

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	parti "github.com/go-parti/parti"
	"github.com/go-parti/parti/errors"
	"github.com/go-parti/parti/internal/util"
)

// Multipipeline applies Multinode expansion to every node in a pipeline
// declaration whose name matches the given filter, copying non-matching
// nodes through untouched. A nil match expands every node. Configuration
// errors are collected across all nodes so that one construction pass
// reports every mistake. The original pipeline is never mutated, and
// expansion is deterministic.
func Multipipeline(ctx context.Context, p *Pipeline, enum parti.PartitionEnumerator, match parti.Filter, conf *MultinodeConf) (*Pipeline, error) {
	if p == nil {
		return nil, errors.ConfigurationError{Reason: "multipipeline requires a pipeline declaration"}
	}
	if enum == nil {
		return nil, errors.ConfigurationError{Reason: "multipipeline requires a partition enumerator"}
	}
	var merr *multierror.Error
	var expanded []Node
	for _, n := range p.Nodes() {
		if match != nil && !match(n.Name) {
			expanded = append(expanded, n)
			continue
		}
		generated, err := Multinode(ctx, n, enum, conf)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("node %s: %w", n.Name, err))
			continue
		}
		expanded = append(expanded, generated...)
	}
	if merr != nil {
		merr.ErrorFormat = util.FormatMultiError
		return nil, merr
	}
	return CreatePipeline(expanded...)
}
