package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tradepost/internal/command"
	"tradepost/internal/config"
	applog "tradepost/internal/log"
	"tradepost/internal/repos"
	"tradepost/internal/services"
)

func main() {
	cfg := config.Load()

	// stdout carries protocol output only; logs go to the file, with stderr
	// as the fallback sink.
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(f)
		}
	}

	var store repos.SnapshotStore
	var err error
	switch cfg.Backend {
	case "sqlite":
		store, err = repos.OpenDB(cfg.DBDSN)
	default:
		store, err = repos.NewFlatFileStore(cfg.DataDir)
	}
	if err != nil {
		log.Fatal(err)
	}

	market := services.NewMarketplaceService(store)
	if err := market.Load(); err != nil {
		log.Fatal(err)
	}
	disp := command.NewDispatcher(market)

	// An interrupt ends the session cleanly; state is already persisted
	// after every successful mutation.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		applog.Info("session.interrupt", nil)
		os.Exit(0)
	}()

	applog.Info("session.start", map[string]any{"backend": cfg.Backend})

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		fmt.Print(cfg.Prompt)
		if !in.Scan() {
			break
		}
		if out, ok := disp.Dispatch(in.Text()); ok {
			fmt.Println(out)
		}
	}

	applog.Info("session.end", nil)
}
