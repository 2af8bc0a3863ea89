package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"TrendSpotter/internal/config"
	"TrendSpotter/internal/notifier"
	"TrendSpotter/internal/provider"
	"TrendSpotter/internal/recorder"
	"TrendSpotter/internal/report"
	"TrendSpotter/internal/scanner"
	"TrendSpotter/internal/universe"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TrendSpotter starting...")

	// Load .env if present, then config
	_ = godotenv.Load()
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init universe builder
	ub := universe.NewBuilder(universe.DefaultSources(cfg.Proxy),
		cfg.Scan.Exchanges, cfg.Scan.ExtraTickers, cfg.Scan.LimitTickers)

	// Init price provider
	var prov provider.Provider
	if cfg.DataSource.BaseURL != "" {
		prov = provider.NewRESTProvider(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		prov = provider.NewYahooProvider(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", prov.Name())

	// Init Telegram notifier, only when credentials are configured
	var tn *notifier.TelegramNotifier
	var sinkNotifier report.Notifier
	if cfg.TelegramConfigured() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sinkNotifier = &notifier.RetryingSender{Notifier: tn, MaxRetries: 3}
	} else {
		log.Println("[INFO] telegram credentials not configured, notifications disabled")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	sink := report.NewSink(cfg.Output.Dir, cfg.Scan.DaysRequired, cfg.Scan.PctPerDay, sinkNotifier)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sc := scanner.New(ctx, ub, prov, sink, rec, cfg)

	// One-shot mode: no cron configured
	if cfg.Schedule.ScanCron == "" {
		if _, err := sc.RunScan(); err != nil {
			log.Fatalf("[FATAL] scan: %v", err)
		}
		return
	}

	// Scheduled mode
	if err := sc.Schedule(cfg.Schedule.ScanCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sc.Start()
	defer sc.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sc.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go func() {
			if _, err := sc.RunScan(); err != nil {
				log.Printf("[ERROR] initial scan: %v", err)
			}
		}()
	}

	log.Println("[INFO] TrendSpotter is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] TrendSpotter stopped")
}
