// Package config turns plain field declarations into typed, composable,
// serializable and fingerprintable configuration objects.
//
// A configuration type is declared once with Define:
//
//	optim := config.MustDefine("Optim",
//		config.Field("name", config.Enum("adam", "sgd"), config.Default("adam")),
//		config.Field("lr", config.Float, config.Default(1e-3)),
//	)
//	train := config.MustDefine("Train",
//		config.Field("optim", optim),
//		config.Field("epochs", config.Int, config.Default(10)),
//		config.Field("seed", config.Int, config.Default(0), config.Stateless()),
//	)
//
// Instances are built with Spec.New from a keyword mapping. Every write goes
// through Config.Set, which rejects writes to frozen instances and coerces the
// value to the declared type. Nested configuration values may be given as
// partial mappings; unspecified nested fields keep their defaults.
//
// Config.UID is a short digest over the declared fields, excluding fields
// marked Stateless or Derived, so that two experiments differing only in
// bookkeeping values share an identity.
//
// Config.Sample and Config.Expand apply a searchspace.Space to an instance,
// producing new instances and leaving the receiver untouched.
package config
