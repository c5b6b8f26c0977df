package main

import (
	"fmt"
	"os"

	"kadai/internal/config"
	"kadai/internal/logger"
	"kadai/internal/notify"
	"kadai/internal/reminder"
	"kadai/internal/store"
	"kadai/internal/storage"
	"kadai/internal/ui"
)

func main() {
	cfg, err := config.LoadOrCreate(config.ResolveConfigPath())
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		fmt.Printf("failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	db, err := storage.Open(cfg.DBPath, log)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	st, err := store.Load(db, log)
	if err != nil {
		fmt.Printf("failed to load tasks: %v\n", err)
		os.Exit(1)
	}

	sched := reminder.New(cfg.PollInterval(), log)
	bell := notify.NewBell(os.Stderr, log)

	if err := ui.Run(st, sched, bell, cfg, log); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
