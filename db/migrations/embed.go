// Package dbmigrations exposes embedded SQL migrations for pgnumeric tooling.
package dbmigrations

import "embed"

// Files contains the embedded SQL migrations for the numeric contract schema.
//
//go:embed *.sql
var Files embed.FS
