// Package spacefile reads search spaces from HCL or YAML files.
//
// HCL:
//
//	dimension "a.d" {
//	  low    = 0
//	  high   = 1
//	  n_bins = 4
//	}
//
//	dimension "d" {
//	  branch {
//	    low    = 0
//	    high   = 0.1
//	    n_bins = 4
//	  }
//	  branch {
//	    low    = 0.9
//	    high   = 1
//	    n_bins = 4
//	  }
//	}
//
//	dimension "opt" {
//	  values = ["adam", "sgd"]
//	}
//
// YAML:
//
//	a.d: {low: 0, high: 1, n_bins: 4}
//	d:
//	  categorical:
//	    - {low: 0, high: 0.1, n_bins: 4}
//	    - {low: 0.9, high: 1, n_bins: 4}
//	opt: [adam, sgd]
//	batch: 32
//
// A domain is exactly one of: a range (low, high, n_bins, optional log_scale
// and dtype), a constant (value), a list of constants (values, or a YAML
// sequence), or a categorical (branch blocks, or a YAML categorical list).
// A bare YAML scalar is a constant. Dimension order follows the file.
package spacefile
