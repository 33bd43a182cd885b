// Package environment resolves the process-wide logging defaults.
//
// Three variables are read:
//
//	NODE_ENV=production            # required: production, development or test
//	LOG_LEVEL=warn                 # optional default severity, falls back to info
//	LOG_RETENTION_DAYS=30          # optional retention in days, falls back to 14
//
// Resolve reads them once per process and memoizes the result. A missing or
// unrecognized NODE_ENV is a configuration error that should stop startup;
// malformed optional values are not errors and fall back silently.
//
// Tests and embedding applications that manage their own configuration can
// call ResolveFrom with a MapSource instead:
//
//	env, err := environment.ResolveFrom(environment.MapSource{
//		environment.EnvRuntimeMode: "test",
//	})
package environment
