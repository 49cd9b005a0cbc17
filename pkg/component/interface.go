// Package component holds infrastructure client wrappers and the contract
// their option types follow.
package component

import "github.com/spf13/pflag"

// ConfigOptions is the standard interface for component options. Every
// component configuration type (PostgreSQL, Redis, Milvus) implements it so
// the application can complete, validate, and expose flags uniformly.
type ConfigOptions interface {
	// Complete fills in any fields not set that are required to have valid
	// data, deriving defaults where possible.
	Complete() error

	// Validate checks the options and returns an error if any field is
	// invalid. Call after Complete.
	Validate() error

	// AddFlags adds flags for the options to the flag set. namePrefix is
	// prepended to flag names to avoid conflicts (e.g. "postgres." yields
	// --postgres.host).
	AddFlags(fs *pflag.FlagSet, namePrefix string)
}
