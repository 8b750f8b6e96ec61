package glob

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-parti/parti/errors"
	"github.com/go-parti/parti/filter"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	for _, name := range names {
		require.Nil(t, ioutil.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

func TestEnumerateSortsMatches(t *testing.T) {
	dir, err := ioutil.TempDir("", "glob-datasource")
	require.Nil(t, err)
	defer os.RemoveAll(dir)
	writeFiles(t, dir, "b.csv", "a.csv", "c.jsonl")

	ds, err := CreateDataSource(filepath.Join(dir, "*.csv"), nil)
	require.Nil(t, err)
	keys, err := ds.Enumerate(context.Background())
	require.Nil(t, err)
	require.Equal(t, []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}, keys)
}

func TestEnumerateAppliesFilter(t *testing.T) {
	dir, err := ioutil.TempDir("", "glob-datasource")
	require.Nil(t, err)
	defer os.RemoveAll(dir)
	writeFiles(t, dir, "2022-01-15.csv", "2022-02-01.csv")

	jan, err := filter.DateRange("2022-01-01", "2022-01-31")
	require.Nil(t, err)
	ds, err := CreateDataSource(filepath.Join(dir, "*.csv"), jan)
	require.Nil(t, err)
	keys, err := ds.Enumerate(context.Background())
	require.Nil(t, err)
	require.Equal(t, []string{filepath.Join(dir, "2022-01-15.csv")}, keys)
}

func TestEnumerateZeroMatchesIsNotAnError(t *testing.T) {
	dir, err := ioutil.TempDir("", "glob-datasource")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	ds, err := CreateDataSource(filepath.Join(dir, "*.csv"), nil)
	require.Nil(t, err)
	keys, err := ds.Enumerate(context.Background())
	require.Nil(t, err)
	require.Equal(t, 0, len(keys))
}

func TestCreateDataSourceRejectsMalformedPattern(t *testing.T) {
	_, err := CreateDataSource("data/[.csv", nil)
	require.NotNil(t, err)
	require.IsType(t, errors.ConfigurationError{}, err)
}
