package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ferngale/spellarena-mp/server/core"
	"github.com/ferngale/spellarena-mp/shared/arenadata"
	"github.com/ferngale/spellarena-mp/shared/protocol"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (flags override it)")
	port := flag.Uint("port", 0, "Server port")
	tickRate := flag.Int("tickrate", 0, "Server tick rate (snapshots per second)")
	name := flag.String("name", "", "Server display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	arenaName := flag.String("arena", "", "Arena to host")
	flag.Parse()

	cfg, err := core.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *tickRate != 0 {
		cfg.TickRate = *tickRate
	}
	if *name != "" {
		cfg.Name = *name
	}
	if *version != "" {
		cfg.Version = *version
	}
	if *arenaName != "" {
		cfg.Arena = *arenaName
	}

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	arena, err := arenadata.Load(os.DirFS(cfg.ArenasDir), cfg.Arena+".tmx")
	if err != nil {
		log.Fatalf("Failed to load arena %q from %s: %v", cfg.Arena, cfg.ArenasDir, err)
	}

	server := core.NewServer(cfg, arena)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting server %q on port %d (tick rate: %d/s, arena: %s)",
		cfg.Name, cfg.Port, cfg.TickRate, cfg.Arena)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
