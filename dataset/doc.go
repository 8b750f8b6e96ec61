// Package dataset provides read-only datasets which assemble one logical
// artifact from many partitions: a generic lazily Concatenated dataset with a
// pluggable combine strategy, a tabular specialization over partitioned
// files, date-placeholder path resolution, and newest-partition selection.
package dataset
