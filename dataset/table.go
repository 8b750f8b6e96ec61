package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-parti/parti/datasource/glob"
	"github.com/go-parti/parti/frame"
	"github.com/go-parti/parti/parser/dsv"
	"github.com/go-parti/parti/parser/jsonl"
)

// TableConf configures a Table dataset
type TableConf struct {
	Conf
	Delimiter       rune                                                                // Column delimiter for DSV files. Defaults per extension: , for .csv and \t for .tsv.
	HeaderLines     int                                                                 // Lines to skip at the start of every file
	NilValue        string                                                              // String representing nil cells in DSV files
	Columns         []string                                                            // Explicit column names. When empty, columns come from each file's header (DSV) or first line (JSONL).
	AllowNewColumns bool                                                                // Admits files whose column sets differ; otherwise a mismatch is a merge error
	Credentials     map[string]string                                                   // Opaque options passed through to Open
	Open            func(path string, credentials map[string]string) (io.ReadCloser, error) // Opens a partition's backing file. Defaults to the local filesystem, ignoring credentials.
}

// CreateTable is a factory for tabular concatenated datasets. Partitions are
// the files matching the glob pattern; each file is parsed into a Frame
// according to its extension (.csv, .tsv, .jsonl or .json) and the Frames are
// concatenated row-wise, preserving first-seen column order.
func CreateTable(pattern string, conf *TableConf) (*Concatenated, error) {
	if conf == nil {
		conf = &TableConf{}
	}
	enum, err := glob.CreateDataSource(pattern, conf.Filter)
	if err != nil {
		return nil, err
	}
	open := conf.Open
	if open == nil {
		open = func(path string, _ map[string]string) (io.ReadCloser, error) {
			return os.Open(path)
		}
	}
	loader := &fileLoader{conf: conf, open: open}
	// the glob filter already narrowed the enumeration
	innerConf := conf.Conf
	innerConf.Filter = nil
	return CreateConcatenated(enum, loader, &frame.Combiner{AllowNewColumns: conf.AllowNewColumns}, &innerConf)
}

// fileLoader loads one partition file into a Frame, dispatching on the
// file's extension
type fileLoader struct {
	conf *TableConf
	open func(path string, credentials map[string]string) (io.ReadCloser, error)
}

// Load parses the file backing a partition key into a Frame
func (l *fileLoader) Load(ctx context.Context, key string) (value interface{}, err error) {
	f, err := l.open(key, l.conf.Credentials)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	var parsed *frame.Frame
	switch ext := strings.ToLower(filepath.Ext(key)); ext {
	case ".csv", ".tsv":
		delimiter := l.conf.Delimiter
		if delimiter == 0 && ext == ".tsv" {
			delimiter = '\t'
		}
		parsed, err = dsv.CreateParser(&dsv.ParserConf{
			HeaderLines: l.conf.HeaderLines,
			Delimiter:   delimiter,
			NilValue:    l.conf.NilValue,
			Columns:     l.conf.Columns,
		}).Parse(f)
	case ".jsonl", ".json":
		parsed, err = jsonl.CreateParser(&jsonl.ParserConf{
			HeaderLines: l.conf.HeaderLines,
			Columns:     l.conf.Columns,
		}).Parse(f)
	default:
		return nil, fmt.Errorf("file extension not supported: %s", ext)
	}
	if err != nil {
		return nil, err
	}
	return parsed, nil
}
