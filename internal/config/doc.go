// Package config defines the format-agnostic configuration model of the
// editor, along with the Loader interface for reading it from disk.
//
// The `config.Model` feeds two consumers: the gate catalog, which registers
// custom gate definitions, and the editor, which reads its viewport and
// hit-testing settings. The HCL implementation of Loader lives in
// internal/hcl.
package config
