// Package migrations содержит SQL-миграции PostgreSQL, встроенные в бинарник.
package migrations

import "embed"

// FS содержит файлы миграций в формате golang-migrate (NNNNNN_name.up.sql / .down.sql)
//
//go:embed *.sql
var FS embed.FS
