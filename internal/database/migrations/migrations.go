// Package migrations хранит SQL-схему платформы курсов.
// Файлы именуются по схеме golang-migrate: NNNNNN_name.up.sql / NNNNNN_name.down.sql.
package migrations

import "embed"

// Migrations — встроенные в бинарник файлы миграций, источник iofs для golang-migrate.
//
//go:embed *.sql
var Migrations embed.FS
