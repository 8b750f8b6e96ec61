package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/gofrs/uuid"

	parti "github.com/go-parti/parti"
	"github.com/go-parti/parti/errors"
	"github.com/go-parti/parti/internal/util"
)

// nodeNamespace is the UUID namespace for deterministic generated-node IDs
var nodeNamespace = uuid.NewV5(uuid.NamespaceURL, "https://github.com/go-parti/parti")

// MultinodeConf configures a Multinode or Multipipeline expansion
type MultinodeConf struct {
	Filter          parti.Filter // Narrows the partition enumeration. Nil keeps every key.
	RequireNonEmpty bool         // Makes an empty (post-filter) enumeration a configuration error instead of yielding zero nodes
	Separator       string       // Separator between a name and its partition suffix. Defaults to #.
	GatherOutput    string       // When set, appends a gather node concatenating the expanded outputs under this name. Requires a single-output node.
}

func (conf *MultinodeConf) separator() string {
	if conf.Separator == "" {
		return "#"
	}
	return conf.Separator
}

// Multinode expands one node declaration into one concrete node per
// partition key, each bound to that partition's slice of inputs and a
// uniquely-namespaced output. The original declaration is never mutated.
// Expansion is deterministic: the same declaration and enumeration always
// yield the same generated node set, names and IDs.
func Multinode(ctx context.Context, n Node, enum parti.PartitionEnumerator, conf *MultinodeConf) ([]Node, error) {
	if conf == nil {
		conf = &MultinodeConf{}
	}
	if err := n.validate(); err != nil {
		return nil, err
	}
	if enum == nil {
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("expansion of node %s requires a partition enumerator", n.Name)}
	}
	if conf.GatherOutput != "" && len(n.Outputs) != 1 {
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("gather requires node %s to declare exactly one output, not %d", n.Name, len(n.Outputs))}
	}
	keys, err := enum.Enumerate(ctx)
	if err != nil {
		return nil, err
	}
	if conf.Filter != nil {
		filtered := keys[:0]
		for _, key := range keys {
			if conf.Filter(key) {
				filtered = append(filtered, key)
			}
		}
		keys = filtered
	}
	if len(keys) == 0 {
		if conf.RequireNonEmpty {
			return nil, errors.EmptyEnumerationError{Source: fmt.Sprintf("expansion of node %s", n.Name)}
		}
		return nil, nil
	}
	sep := conf.separator()
	generated := make([]Node, 0, len(keys))
	gatherInputs := make(map[string]string, len(keys)) // suffixed output -> partition suffix
	for _, key := range keys {
		suffix := partitionSuffix(key)
		if conf.GatherOutput != "" && suffix == "gather" {
			return nil, errors.ConfigurationError{Reason: fmt.Sprintf("partition key %q collides with the gather node for %s", key, n.Name)}
		}
		gen := n.clone()
		gen.Name = n.Name + sep + suffix
		gen.ID = uuid.NewV5(nodeNamespace, gen.Name).String()
		inputs := make(map[string]string, len(n.Inputs))   // suffixed -> declared
		outputs := make(map[string]string, len(n.Outputs)) // declared -> suffixed
		for i, name := range gen.Inputs {
			suffixed := name + sep + suffix
			gen.Inputs[i] = suffixed
			inputs[suffixed] = name
		}
		for i, name := range gen.Outputs {
			suffixed := name + sep + suffix
			gen.Outputs[i] = suffixed
			outputs[name] = suffixed
		}
		gen.Func = bindPartition(n.Func, inputs, outputs)
		generated = append(generated, gen)
		if conf.GatherOutput != "" {
			gatherInputs[gen.Outputs[0]] = suffix
		}
	}
	if conf.GatherOutput != "" {
		generated = append(generated, gatherNode(n.Name+sep+"gather", conf.GatherOutput, gatherInputs))
	}
	return generated, nil
}

// bindPartition adapts a node function to suffixed input and output names:
// inputs are translated back to the declared names before invocation, and
// outputs are translated to the suffixed names afterwards. The wrapped
// function's error behavior is preserved unchanged.
func bindPartition(fn NodeFunc, inputs map[string]string, outputs map[string]string) NodeFunc {
	return func(ctx context.Context, in map[string]interface{}) (map[string]interface{}, error) {
		declared := make(map[string]interface{}, len(in))
		for name, value := range in {
			if orig, ok := inputs[name]; ok {
				declared[orig] = value
			} else {
				declared[name] = value
			}
		}
		out, err := fn(ctx, declared)
		if err != nil {
			return nil, err
		}
		suffixed := make(map[string]interface{}, len(out))
		for name, value := range out {
			if gen, ok := outputs[name]; ok {
				suffixed[gen] = value
			} else {
				suffixed[name] = value
			}
		}
		return suffixed, nil
	}
}

// gatherNode declares a node which concatenates the outputs of an expanded
// node set into one partition-keyed collection
func gatherNode(name string, output string, inputs map[string]string) Node {
	ordered := make([]string, 0, len(inputs))
	for input := range inputs {
		ordered = append(ordered, input)
	}
	sort.Strings(ordered)
	return Node{
		ID:      uuid.NewV5(nodeNamespace, name).String(),
		Name:    name,
		Inputs:  ordered,
		Outputs: []string{output},
		Func: func(ctx context.Context, in map[string]interface{}) (map[string]interface{}, error) {
			gathered := make(map[string]interface{}, len(in))
			for input, value := range in {
				suffix, ok := inputs[input]
				if !ok {
					return nil, fmt.Errorf("unexpected input %s", input)
				}
				gathered[suffix] = value
			}
			return map[string]interface{}{output: gathered}, nil
		},
	}
}

// partitionSuffix derives the name suffix for a partition key. Keys made of
// identifier-safe characters are embedded verbatim; anything else hashes to
// a short stable suffix so that generated names stay catalog-friendly.
func partitionSuffix(key string) string {
	if util.IdentifierSafe(key) {
		return key
	}
	return fmt.Sprintf("x%016x", xxhash.Sum64String(key))
}
