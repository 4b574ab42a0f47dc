// Package config loads shoulders runtime settings.
//
// Settings come from, in increasing precedence: built-in defaults, an
// optional ~/.shoulders/shoulders.yaml (or the file given with --config),
// and environment variables. Environment variables use the SHOULDERS_
// prefix with the key upper-cased, e.g. SHOULDERS_OBSERVABILITY_NAMESPACE or
// SHOULDERS_LOKI_SERVICE. KUBECTL_BIN and PORT are honoured as well.
//
// The file only carries settings. The current workspace selection lives in
// ~/.shoulders/config.yaml and is owned by the workspace package.
package config
