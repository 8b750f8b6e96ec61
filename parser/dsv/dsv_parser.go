package dsv

import (
	"encoding/csv"
	"io"

	"github.com/go-parti/parti/frame"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	HeaderLines int      // The number of lines to ignore from the beginning of each file. Defaults to 0.
	Delimiter   rune     // The delimiter separating columns in the file. Defaults to ,
	Comment     rune     // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue    string   // A special string which represents nil values in the data. Defaults to "" (the empty string).
	Columns     []string // Explicit column names. When empty, the first record after HeaderLines is treated as the header.
}

// Parser produces Frames from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	return &Parser{conf: conf}
}

// Parse parses DSV data to produce a Frame
func (p *Parser) Parse(r io.Reader) (*frame.Frame, error) {
	reader := csv.NewReader(r)
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment
	reader.ReuseRecord = true
	// skipped lines must not pin the field count
	reader.FieldsPerRecord = -1

	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	cols := p.conf.Columns
	if len(cols) == 0 {
		record, err := reader.Read()
		if err == io.EOF {
			return frame.CreateFrame()
		} else if err != nil {
			return nil, err
		}
		cols = make([]string, len(record))
		copy(cols, record)
	}
	reader.FieldsPerRecord = len(cols)

	f, err := frame.CreateFrame(cols...)
	if err != nil {
		return nil, err
	}
	cells := make([]interface{}, len(cols))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		for i, val := range record {
			if val == p.conf.NilValue {
				cells[i] = nil
			} else {
				cells[i] = val
			}
		}
		if err := f.AppendRow(cells...); err != nil {
			return nil, err
		}
	}
	return f, nil
}
