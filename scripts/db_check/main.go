// Command db_check verifies that the configured database is reachable and,
// with --ensure-schema, creates the storefront tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"

	"github.com/jackc/pgx/v5"
)

func main() {
	ensure := flag.Bool("ensure-schema", false, "create missing tables")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, cfg.Database.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var dbName, version string
	err = conn.QueryRow(ctx, "SELECT current_database(), version()").Scan(&dbName, &version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully connected to database: %s\n%s\n", dbName, version)

	if *ensure {
		if _, err := conn.Exec(ctx, database.Schema()); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to apply schema: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Schema is up to date")
	}

	rows, err := conn.Query(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' ORDER BY table_name`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to list tables: %v\n", err)
		os.Exit(1)
	}
	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to list tables: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Tables: %v\n", tables)
}
