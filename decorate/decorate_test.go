package decorate

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	parti "github.com/go-parti/parti"
	"github.com/go-parti/parti/errors"
	"github.com/go-parti/parti/filter"
)

func identity(ctx context.Context, c Collection) (Collection, error) {
	return c, nil
}

func TestSplitByKeyPrefix(t *testing.T) {
	rule, err := ByKeyPrefix("/")
	require.Nil(t, err)
	parts, err := Split(rule, Collection{
		"na/a": 1, "na/b": 2, "eu/c": 3, "orphan": 4,
	})
	require.Nil(t, err)
	require.Equal(t, 3, len(parts))
	require.Equal(t, 2, len(parts["na"]))
	require.Equal(t, 1, len(parts["eu"]))
	require.Equal(t, 1, len(parts["orphan"]))
}

func TestSplitThenConcatRoundTrips(t *testing.T) {
	original := Collection{"na/a": 1, "na/b": 2, "eu/c": 3}
	rule, err := ByKeyPrefix("/")
	require.Nil(t, err)

	wrapped := ConcatPartitions(SplitIntoPartitions(rule, identity))
	result, err := wrapped(context.Background(), original)
	require.Nil(t, err)
	require.Equal(t, original, result)
}

func TestSplitIntoPartitionSetSeesWholeSet(t *testing.T) {
	rule, err := ByHash(4)
	require.Nil(t, err)
	var seen int
	wrapped := SplitIntoPartitionSet(rule, func(ctx context.Context, p Partitioned) (Partitioned, error) {
		for _, part := range p {
			seen += len(part)
		}
		return p, nil
	})
	_, err = wrapped(context.Background(), Collection{"a": 1, "b": 2, "c": 3})
	require.Nil(t, err)
	require.Equal(t, 3, seen)
}

func TestByHashIsDeterministic(t *testing.T) {
	rule, err := ByHash(8)
	require.Nil(t, err)
	first, err := rule("some/partition/key.csv")
	require.Nil(t, err)
	second, err := rule("some/partition/key.csv")
	require.Nil(t, err)
	require.Equal(t, first, second)

	_, err = ByHash(0)
	require.IsType(t, errors.ConfigurationError{}, err)
}

func TestByFilterAssignsFirstMatch(t *testing.T) {
	csv, err := filter.Pattern(`\.csv$`)
	require.Nil(t, err)
	jsonl, err := filter.Pattern(`\.jsonl$`)
	require.Nil(t, err)
	rule, err := ByFilter(map[string]parti.Filter{"csv": csv, "jsonl": jsonl})
	require.Nil(t, err)

	name, err := rule("a.csv")
	require.Nil(t, err)
	require.Equal(t, "csv", name)
	name, err = rule("b.jsonl")
	require.Nil(t, err)
	require.Equal(t, "jsonl", name)

	_, err = rule("c.parquet")
	require.NotNil(t, err)

	_, err = ByFilter(nil)
	require.IsType(t, errors.ConfigurationError{}, err)
}

func TestConcatDuplicateKeysIsMergeError(t *testing.T) {
	_, err := Concat(Partitioned{
		"p1": Collection{"a": 1},
		"p2": Collection{"a": 2},
	})
	require.NotNil(t, err)
	require.IsType(t, errors.MergeError{}, err)
}

func TestDecoratorsPreserveErrors(t *testing.T) {
	rule, err := ByKeyPrefix("/")
	require.Nil(t, err)
	sentinel := fmt.Errorf("wrapped function failed")
	failing := func(ctx context.Context, c Collection) (Collection, error) {
		return nil, sentinel
	}

	_, err = SplitIntoPartitions(rule, failing)(context.Background(), Collection{"na/a": 1})
	require.Equal(t, sentinel, err)

	_, err = ConcatPartitions(func(ctx context.Context, c Collection) (Partitioned, error) {
		return nil, sentinel
	})(context.Background(), Collection{})
	require.Equal(t, sentinel, err)

	_, err = ListOutput(failing)(context.Background(), Collection{})
	require.Equal(t, sentinel, err)
}

func TestListOutputOrdersByKey(t *testing.T) {
	wrapped := ListOutput(identity)
	out, err := wrapped(context.Background(), Collection{"b": 2, "a": 1, "c": 3})
	require.Nil(t, err)
	require.Equal(t, []interface{}{1, 2, 3}, out)
}
