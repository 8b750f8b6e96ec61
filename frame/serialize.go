package frame

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Cell kinds supported by the wire representation. Parsers only produce the
// first five; time cells appear when callers append them directly.
const (
	cellNil = iota
	cellString
	cellFloat64
	cellBool
	cellInt64
	cellTime
)

type wireCell struct {
	Kind int
	Str  string
	Num  float64
	Int  int64
	Bool bool
	Time time.Time
}

type wireFrame struct {
	Columns []string
	Rows    [][]wireCell
}

// ToBytes serializes this Frame for caching or disk spill. Only nil, string,
// float64, bool, int64 and time.Time cells are representable.
func (f *Frame) ToBytes() ([]byte, error) {
	wire := wireFrame{Columns: f.cols, Rows: make([][]wireCell, len(f.rows))}
	for i, row := range f.rows {
		cells := make([]wireCell, len(row))
		for j, cell := range row {
			switch v := cell.(type) {
			case nil:
				cells[j] = wireCell{Kind: cellNil}
			case string:
				cells[j] = wireCell{Kind: cellString, Str: v}
			case float64:
				cells[j] = wireCell{Kind: cellFloat64, Num: v}
			case bool:
				cells[j] = wireCell{Kind: cellBool, Bool: v}
			case int64:
				cells[j] = wireCell{Kind: cellInt64, Int: v}
			case int:
				cells[j] = wireCell{Kind: cellInt64, Int: int64(v)}
			case time.Time:
				cells[j] = wireCell{Kind: cellTime, Time: v}
			default:
				return nil, fmt.Errorf("cell (%d, %s) has unserializable type %T", i, f.cols[j], cell)
			}
		}
		wire.Rows[i] = cells
	}
	var buff bytes.Buffer
	if err := gob.NewEncoder(&buff).Encode(&wire); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FromBytes deserializes a Frame produced by ToBytes. Integer cells widen to
// int64 on the way through.
func FromBytes(in []byte) (*Frame, error) {
	var wire wireFrame
	if err := gob.NewDecoder(bytes.NewReader(in)).Decode(&wire); err != nil {
		return nil, err
	}
	f, err := CreateFrame(wire.Columns...)
	if err != nil {
		return nil, err
	}
	for _, cells := range wire.Rows {
		row := make([]interface{}, len(cells))
		for j, cell := range cells {
			switch cell.Kind {
			case cellNil:
				row[j] = nil
			case cellString:
				row[j] = cell.Str
			case cellFloat64:
				row[j] = cell.Num
			case cellBool:
				row[j] = cell.Bool
			case cellInt64:
				row[j] = cell.Int
			case cellTime:
				row[j] = cell.Time
			default:
				return nil, fmt.Errorf("unknown cell kind %d", cell.Kind)
			}
		}
		if err := f.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// jsonFrame is the JSON shape of a Frame. An array of objects would lose
// column order, so columns and rows are kept separate.
type jsonFrame struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalJSON renders this Frame as a columns/rows document
func (f *Frame) MarshalJSON() ([]byte, error) {
	rows := f.rows
	if rows == nil {
		rows = [][]interface{}{}
	}
	cols := f.cols
	if cols == nil {
		cols = []string{}
	}
	return json.Marshal(&jsonFrame{Columns: cols, Rows: rows})
}
