// Package schemafile declares configuration types in HCL.
//
// A file holds any number of config blocks:
//
//	config "Optim" {
//	  field "name" {
//	    type    = enum("adam", "sgd")
//	    default = "adam"
//	  }
//	  field "lr" {
//	    type    = float
//	    default = 0.001
//	  }
//	}
//
//	config "Train" {
//	  field "optim"  { type = Optim }
//	  field "epochs" {
//	    type    = int
//	    default = 10
//	  }
//	  field "seed" {
//	    type    = int
//	    default = 0
//	    kind    = "stateless"
//	  }
//	}
//
// Type expressions are int, float, string, bool, any, list(T), dict(T) (or
// map(T)), optional(T), enum("a", ...) and the name of a config type declared
// earlier, in this file or in a file loaded before it. A config block may
// derive from an earlier type with `extends = "Name"`.
//
// Declared types are registered in a registry.Registry.
package schemafile
