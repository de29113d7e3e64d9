// Package migrations хранит SQL-миграции схемы для каждого поддерживаемого драйвера.
package migrations

import "embed"

// FS содержит каталоги postgres/ и sqlite/ с файлами golang-migrate.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
