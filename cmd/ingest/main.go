// Command ingest applies the document schema and imports a directory of page
// files into PostgreSQL.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/JaimeStill/board-search/internal/config"
	"github.com/JaimeStill/board-search/internal/corpus"
	"github.com/JaimeStill/board-search/pkg/database"
	"github.com/JaimeStill/board-search/pkg/logging"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var (
		dir         = flag.String("dir", "", "Pages directory (defaults to corpus.pages_dir)")
		upsert      = flag.Bool("upsert", false, "Replace documents whose key already exists")
		migrateOnly = flag.Bool("migrate-only", false, "Apply migrations and exit")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	logger := logging.New(&cfg.Logging)

	db, err := sql.Open("pgx", cfg.Database.URL("postgres"))
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnTimeoutDuration())
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	version, err := database.Migrate(db, corpus.Migrations, "migrations")
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	fmt.Printf("schema at version %d\n", version)

	if *migrateOnly {
		return
	}

	if *dir == "" {
		*dir = cfg.Corpus.PagesDir
	}

	docs, err := corpus.NewFilesystem(os.DirFS(*dir), cfg.Corpus.MaxDocumentBytes(), logger).Load(ctx)
	if err != nil {
		log.Fatalf("failed to read pages: %v", err)
	}

	store := corpus.NewStore(db, logger)

	report, err := ingest(ctx, store, docs, *upsert)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}

	total, err := store.Count(ctx)
	if err != nil {
		log.Fatalf("count failed: %v", err)
	}

	fmt.Printf("read %d pages from %s: %d written, %d skipped; %d documents stored\n",
		len(docs), *dir, report.Written, report.Skipped, total)
}
