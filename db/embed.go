// Package db embeds the PostgreSQL schema applied at startup.
package db

import _ "embed"

// Schema contains the DDL for all tables and indexes.
//
//go:embed schema.sql
var Schema string
