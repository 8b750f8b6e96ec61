// Package pipeline provides a build-time declaration model for host
// framework execution graphs, and the Multinode and Multipipeline constructs
// which replicate a declared node across a partition enumeration. Expansion
// is static and deterministic: the host framework's scheduler owns all
// execution, and the same declaration and enumeration always produce the
// same generated node set.
package pipeline
