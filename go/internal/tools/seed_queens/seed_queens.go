package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/minigames/go/internal/dbconfig"
	"github.com/mcdev12/minigames/go/internal/queens"
)

func main() {
	ctx := context.Background()

	// 1) Solve the board
	boards := queens.SolveSequential()
	if len(boards) != queens.TotalSolutions {
		fmt.Fprintf(os.Stderr, "solver returned %d boards, want %d\n", len(boards), queens.TotalSolutions)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Insert and count
	var (
		total    = len(boards)
		inserted int
		skipped  int
		errs     int
	)

	for _, b := range boards {
		cmdTag, err := pool.Exec(ctx, `
            INSERT INTO queens_solutions (solution_data, is_found)
            VALUES ($1, FALSE)
            ON CONFLICT (solution_data) DO NOTHING
        `, b.Key())
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting solution %s: %v\n", b.Key(), err)
			errs++
			continue
		}
		if cmdTag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}

	// 4) Print summary
	fmt.Printf(
		"Queens seed complete: %d total, %d inserted, %d skipped, %d errors\n",
		total, inserted, skipped, errs,
	)
}
