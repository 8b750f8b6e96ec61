// Package jsonl provides a Parser for JSON lines data, producing Frames in
// which each line of the input becomes one row.
package jsonl
