// Package dsv provides a Parser for delimiter-separated values data,
// producing Frames from files such as CSVs or TSVs.
package dsv
