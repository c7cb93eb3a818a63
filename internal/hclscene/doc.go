// Package hclscene reads and writes a scene as an HCL file, so the editor
// can run offline against an in-memory store.
//
//	scene = "main"
//
//	gate "A" {
//	  type     = "INPUT"
//	  position = [0, 0]
//	}
//
//	wire "w1" {
//	  from        = "A.out[0]"
//	  to          = "B.in[0]"
//	  init_signal = true
//	  path        = [[1, 0], [3, 0]]
//	}
//
// Wire endpoints use port addresses, see package portid.
package hclscene
