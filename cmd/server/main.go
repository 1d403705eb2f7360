package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/hybel/portfolio/internal/config"
	"github.com/hybel/portfolio/internal/server"
	"github.com/hybel/portfolio/internal/source"
	"github.com/hybel/portfolio/internal/store"
	"github.com/hybel/portfolio/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	var src source.DataSource
	if cfg.DatabaseURL != "" {
		db, err := source.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("opening database: %v", err)
		}
		defer db.Close()

		sqliteSrc := source.NewSQLiteSource(db)
		if err := sqliteSrc.CreateSchema(ctx); err != nil {
			log.Fatalf("creating schema: %v", err)
		}
		if err := sqliteSrc.Seed(ctx, source.DemoData()); err != nil {
			log.Fatalf("seeding demo data: %v", err)
		}
		log.Println("serving from sqlite database")
		src = sqliteSrc
	} else {
		log.Println("serving fixed demo dataset")
		src = source.NewStubSource(cfg.LoadDelay)
	}

	st := store.New()
	loader := worker.NewLoader(src, st)

	// Initial load before accepting traffic; failures surface through the
	// view model's error state rather than aborting startup.
	if err := loader.Load(ctx); err != nil {
		log.Printf("initial load failed: %v", err)
	}

	if err := server.Run(ctx, server.Config{
		Port:   cfg.Port,
		Store:  st,
		Source: src,
		Loader: loader,
	}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
