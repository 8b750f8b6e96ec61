// Package parti contains the core contracts of Parti, a library which extends
// pipeline orchestration frameworks with helpers for partitioned data. This
// root package defines the types which are employed when configuring datasets,
// filters and pipeline expansions, as well as in the extension of the library,
// and is an excellent overview of Parti's key concepts. Implementations live
// in subpackages: filter helpers in filter, partition enumeration in
// datasource, lazily concatenated datasets in dataset, build-time node
// expansion in pipeline, and function decorators in decorate.
package parti
