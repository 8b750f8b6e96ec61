package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/go-parti/parti/frame"
)

// ParserConf configures a JSONL Parser, suitable for JSON lines data
type ParserConf struct {
	HeaderLines   int      // The number of lines to ignore from the beginning of each file. Defaults to 0.
	Comment       rune     // Lines beginning with the comment character are ignored. Defaults to no comment character.
	MaxBufferSize int      // Maximum size in bytes of the buffer used to read lines from the file
	Columns       []string // Column names, each a gjson path. When empty, the top-level fields of the first data line become the columns, in document order.
}

// Parser produces Frames from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser. Columns are extracted lazily from
// each row of JSON using their column name, which should be a gjson path.
// Values within the JSON which do not correspond to a column are ignored, and
// absent columns are nil.
func CreateParser(conf *ParserConf) *Parser {
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	return &Parser{conf: conf}
}

// Parse parses JSONL data to produce a Frame
func (p *Parser) Parse(r io.Reader) (*frame.Frame, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), p.conf.MaxBufferSize)

	skipped := 0
	var f *frame.Frame
	cols := p.conf.Columns
	for scanner.Scan() {
		line := scanner.Text()
		if skipped < p.conf.HeaderLines {
			skipped++
			continue
		}
		trimmed := strings.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if p.conf.Comment != 0 && []rune(trimmed)[0] == p.conf.Comment {
			continue
		}
		parsed := gjson.Parse(trimmed)
		if !parsed.IsObject() {
			return nil, fmt.Errorf("line is not a JSON object:\n\t%s", trimmed)
		}
		if len(cols) == 0 {
			parsed.ForEach(func(key, value gjson.Result) bool {
				cols = append(cols, key.String())
				return true
			})
		}
		if f == nil {
			var err error
			f, err = frame.CreateFrame(cols...)
			if err != nil {
				return nil, err
			}
		}
		cells := make([]interface{}, len(cols))
		for i, name := range cols {
			res := parsed.Get(name)
			if !res.Exists() {
				cells[i] = nil
			} else {
				cells[i] = res.Value()
			}
		}
		if err := f.AppendRow(cells...); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return frame.CreateFrame(cols...)
	}
	return f, nil
}
