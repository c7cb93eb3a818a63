// Package hcl provides the concrete HCL implementation of config.Loader.
// It is responsible for finding `.hcl` files, decoding `editor` and `gate`
// blocks, and translating them into the format-agnostic config.Model.
//
// A configuration file looks like:
//
//	editor {
//	  max_zoom         = 4
//	  delete_tolerance = 12
//	}
//
//	gate "XOR" {
//	  description = "Exclusive or"
//	  geometry    = [[0, 2], [3, 0], [0, -2]]
//	  inputs      = [[0, 1], [0, -1]]
//	  outputs     = [[3, 0]]
//	  logic       = in[0] != in[1]
//	}
package hcl
