// Command modelgen regenerates gorm/gen query code under -out and the matching
// models in its sibling model directory from a migrated doorhop database.
// Generated models are a starting point; the checked-in ones carry hand-tuned
// nullability and soft-delete fields.
package main

import (
	"flag"
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

var tables = []string{
	"users",
	"doors",
	"visits",
	"decor",
	"inventory_items",
	"packages",
	"package_items",
	"interactions",
	"player_credentials",
}

func main() {
	var dsn, out string
	flag.StringVar(&dsn, "dsn", os.Getenv("DOORHOP_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/query", "output dir for generated query code; models go to ../model")
	flag.Parse()

	if dsn == "" {
		slog.Error("missing --dsn or DOORHOP_DB_DSN")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("open postgres", "err", err)
		os.Exit(1)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:      out,
		ModelPkgPath: "model",
		Mode:         gen.WithoutContext | gen.WithDefaultQuery,
	})
	g.UseDB(db)
	models := make([]any, 0, len(tables))
	for _, table := range tables {
		models = append(models, g.GenerateModel(table))
	}
	g.ApplyBasic(models...)
	g.Execute()

	slog.Info("generated gorm query code and models", "out", out, "tables", len(tables))
}
