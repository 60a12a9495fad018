package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	bench "github.com/fjl/dbbench-advisor"
	"github.com/fjl/dbbench-advisor/web"
)

func main() {
	var (
		envFile = flag.String("env", ".env", "dotenv file")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()
	if *debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cfg, err := bench.LoadConfigEnv(*envFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	sCfg, err := web.LoadServerConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	tables, err := bench.LoadTables(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to load results", "error", err)
		os.Exit(1)
	}

	s := web.NewServer(sCfg, web.NewAdvisor(tables, cfg.Prefix))
	if err := s.Start(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
