// Package config provides an immutable-after-load configuration store
// resolved through dotted paths.
//
// Two sources are merged at load time: a structured YAML document and a
// .env-style line file, with mode-suffixed variants of each selected by
// the runtime mode (production/development/test). Env pairs win over YAML
// keys at the top level.
//
//	store, err := config.Load(
//	    config.WithDir("./configs"),
//	    config.WithMode(config.ModeProduction),
//	)
//	dsn := store.GetString("database.url")
//
// # Lookup semantics
//
// Get walks dot-separated segments through the merged tree. Any miss
// (unknown key, or a path descending into a scalar) returns the empty
// string "", never nil and never an error. Handlers probe for optional
// settings without error plumbing; the cost is that "" is ambiguous
// between "absent" and "explicitly empty", which callers accept.
//
// # Env interpolation
//
// Values may reference earlier keys with ${KEY}. Substitution repeats
// until stable, capped at ten passes, so circular references terminate
// with their literal ${...} text preserved; references to unknown keys
// keep their literal text too:
//
//	A=1
//	B=${A}2      # B == "12"
//	C=${UNSET}x  # C == "${UNSET}x"
//
// The store has no mutation API: load it once during bootstrap and read
// it from any goroutine for the life of the process.
package config
