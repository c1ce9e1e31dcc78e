// Package db holds the relational schema of the service.
package db

import _ "embed"

// Schema creates every table and index. All statements are idempotent.
//
//go:embed init.sql
var Schema string
