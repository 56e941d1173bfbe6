// Package validation checks constructor parameters and configuration structs.
//
// Programmatic validation collects every parameter problem and reports them
// as one INVALID_ARGUMENT error whose message names the offending parameter:
//
//	err := validation.New().
//	    Positive("n", n).
//	    NonNegative("start", start).
//	    Err()
//
// Struct tag validation uses go-playground/validator and is meant for
// configuration structs:
//
//	type PoolConfig struct {
//	    MaxConcurrent int `mapstructure:"max_concurrent" validate:"min=1"`
//	}
//	err := validation.Validate(cfg)
package validation
