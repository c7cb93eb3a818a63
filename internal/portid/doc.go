/*
Package portid provides a structured representation for wire endpoint
addresses used in scene files and CLI output.

The canonical format is `<gate>.<direction>[<slot>]`, e.g. `A.out[0]` or
`gate-7.in[1]`. The direction segment is always the last dot-separated
segment, so gate identifiers may themselves contain dots.
*/
package portid
