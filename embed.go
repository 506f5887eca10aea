package intakebot

import "embed"

//go:embed migrations/*.sql
var MigrationsFS embed.FS

// QuestionsFS holds the default registration and consultation catalogs.
//
//go:embed questions/*.json
var QuestionsFS embed.FS
