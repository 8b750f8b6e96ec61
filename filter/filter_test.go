package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-parti/parti/errors"
)

func TestPatternMatches(t *testing.T) {
	f, err := Pattern(`^sales_\d{4}\.csv$`)
	require.Nil(t, err)
	require.True(t, f("sales_2022.csv"))
	require.False(t, f("sales_2022.jsonl"))
	require.False(t, f("inventory_2022.csv"))
}

func TestPatternInvalidFailsAtConstruction(t *testing.T) {
	_, err := Pattern(`sales_(`)
	require.NotNil(t, err)
	require.IsType(t, errors.ConfigurationError{}, err)
}

func TestGlobMatchesBaseName(t *testing.T) {
	f, err := Glob("sales_*.csv")
	require.Nil(t, err)
	require.True(t, f("data/raw/sales_jan.csv"))
	require.False(t, f("data/raw/inventory_jan.csv"))
}

func TestGlobInvalidFailsAtConstruction(t *testing.T) {
	_, err := Glob("sales_[.csv")
	require.NotNil(t, err)
	require.IsType(t, errors.ConfigurationError{}, err)
}

func TestDateRangeMatchesInclusive(t *testing.T) {
	f, err := DateRange("2022-01-01", "2022-01-31")
	require.Nil(t, err)
	require.True(t, f("2022-01-15.csv"))
	require.False(t, f("2022-02-01.csv"))
	require.True(t, f("2022-01-01.csv"))
	require.True(t, f("2022-01-31.csv"))
	// keys without a detectable date never match
	require.False(t, f("sales.csv"))
}

func TestDateRangeInvertedFailsAtConstruction(t *testing.T) {
	_, err := DateRange("2022-02-01", "2022-01-01")
	require.NotNil(t, err)
	require.IsType(t, errors.ConfigurationError{}, err)
}

func TestDateRangeUnparseableBoundsFailAtConstruction(t *testing.T) {
	_, err := DateRange("01/01/2022", "2022-01-31")
	require.NotNil(t, err)
	require.IsType(t, errors.ConfigurationError{}, err)
	// both bad bounds are reported at once
	_, err = DateRange("soon", "later")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "start bound")
	require.Contains(t, err.Error(), "end bound")
}

func TestWindowMatchesTrailingRange(t *testing.T) {
	end := time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC)
	f, err := Window(end, Days, 14)
	require.Nil(t, err)
	require.True(t, f("2022-03-10.csv"))
	require.True(t, f("2022-03-01.csv"))
	require.False(t, f("2022-02-28.csv"))
	require.False(t, f("2022-03-16.csv"))
}

func TestWindowBadLengthFailsAtConstruction(t *testing.T) {
	_, err := Window(time.Now(), Months, 0)
	require.NotNil(t, err)
	require.IsType(t, errors.ConfigurationError{}, err)
}

func TestNotInvertsForEveryKey(t *testing.T) {
	f, err := Pattern(`\.csv$`)
	require.Nil(t, err)
	inverted := Not(f)
	for _, key := range []string{"a.csv", "b.jsonl", "", "c.CSV"} {
		require.Equal(t, !f(key), inverted(key), "key %q", key)
	}
}

func TestAllAndAnyCompose(t *testing.T) {
	csv, err := Pattern(`\.csv$`)
	require.Nil(t, err)
	jan, err := DateRange("2022-01-01", "2022-01-31")
	require.Nil(t, err)

	both := All(csv, jan)
	require.True(t, both("2022-01-15.csv"))
	require.False(t, both("2022-01-15.jsonl"))
	require.False(t, both("2022-02-15.csv"))

	either := Any(csv, jan)
	require.True(t, either("2022-02-15.csv"))
	require.True(t, either("2022-01-15.jsonl"))
	require.False(t, either("2022-02-15.jsonl"))

	// vacuous cases
	require.True(t, All()("anything"))
	require.False(t, Any()("anything"))
}
