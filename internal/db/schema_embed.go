package db

import _ "embed"

// Schema holds the bootstrap SQL applied by integration tests and by
// local development setups that run against a fresh database.
//
//go:embed schema.sql
var Schema string
