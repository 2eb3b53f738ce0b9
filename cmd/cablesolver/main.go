package main

import (
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/Utgast/cabletherm"
	"github.com/Utgast/cabletherm/internal/catalog"
	"github.com/Utgast/cabletherm/internal/processing"
	"github.com/Utgast/cabletherm/internal/utils"
	"github.com/Utgast/cabletherm/pkg/config"
	"github.com/Utgast/cabletherm/pkg/models"
	"github.com/Utgast/cabletherm/pkg/server"
)

type flags struct {
	configPath string
	cablesPath string
	httpServer bool

	mode       string
	cable      string
	ambient    float64
	current    float64
	maxTemp    float64
	count      int
	spacing    float64
	minSpacing float64
	maxSpacing float64
	quiet      bool
}

func main() {
	f := parseFlags()

	cfg, srvCfg, err := config.Load(f.configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if f.quiet {
		cfg.Quiet = true
	}
	// Only flags the user actually passed override the config file, so 0
	// stays a valid ambient.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "ambient":
			cfg.Ambient = f.ambient
		case "max-temp":
			cfg.MaxTemp = f.maxTemp
		}
	})

	cat := catalog.New(cabletherm.DefaultRegistry())
	if f.cablesPath != "" {
		n, err := cat.LoadFile(f.cablesPath)
		if err != nil {
			log.Fatalf("load cables: %v", err)
		}
		if !cfg.Quiet {
			log.Printf("loaded %d cable constructions from %s", n, f.cablesPath)
		}
	}

	if f.httpServer {
		runServer(cfg, srvCfg, cat)
		return
	}
	runOnce(f, cfg, cat)
}

func parseFlags() *flags {
	f := &flags{}

	flag.StringVar(&f.configPath, "config", "", "INI configuration file")
	flag.StringVar(&f.cablesPath, "cables", "", "YAML file with additional cable constructions")
	flag.BoolVar(&f.httpServer, "http", false, "Run the HTTP rating service")

	flag.StringVar(&f.mode, "mode", "temperature", "Solve mode: temperature, profile, ampacity, coupled, spacing, derating")
	flag.StringVar(&f.cable, "cable", "mv-240-cu-xlpe", "Catalog cable name")
	flag.Float64Var(&f.ambient, "ambient", 0, "Ambient soil temperature in °C")
	flag.Float64Var(&f.current, "current", 0, "Conductor current in A")
	flag.Float64Var(&f.maxTemp, "max-temp", 0, "Conductor temperature limit in °C")
	flag.IntVar(&f.count, "count", 3, "Cables in the trench for group modes")
	flag.Float64Var(&f.spacing, "spacing", 0.5, "Axial spacing in m for coupled and derating modes")
	flag.Float64Var(&f.minSpacing, "min-spacing", 0.2, "Lower spacing bound in m")
	flag.Float64Var(&f.maxSpacing, "max-spacing", 2.0, "Upper spacing bound in m")
	flag.BoolVar(&f.quiet, "quiet", false, "Suppress progress output")

	flag.Parse()
	return f
}

// runOnce executes a single solve and prints the result as JSON.
func runOnce(f *flags, cfg *config.Config, cat *catalog.Catalog) {
	proc := processing.New(cat, cfg)

	req := models.SolveRequest{
		Mode:       f.mode,
		Catalog:    f.cable,
		Ambient:    &cfg.Ambient,
		Current:    f.current,
		MaxTemp:    &cfg.MaxTemp,
		Count:      f.count,
		MinSpacing: f.minSpacing,
		MaxSpacing: f.maxSpacing,
	}
	if f.mode == "coupled" || f.mode == "derating" {
		for i := 0; i < f.count; i++ {
			req.Group = append(req.Group, models.GroupMember{
				X:       float64(i) * f.spacing,
				Current: f.current,
			})
		}
	}

	res := proc.Process(utils.GenerateID(), req)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Fatalf("encode result: %v", err)
	}
	if !res.Success {
		os.Exit(1)
	}
}

func runServer(cfg *config.Config, srvCfg *config.ServerConfig, cat *catalog.Catalog) {
	srv, err := server.New(server.Options{
		Config:       cfg,
		ServerConfig: srvCfg,
		Catalog:      cat,
	})
	if err != nil {
		log.Fatalf("create server: %v", err)
	}

	setupGracefulShutdown(srv)

	if err := srv.Start(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func setupGracefulShutdown(srv *server.Server) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("received shutdown signal")
		if err := srv.Shutdown(); err != nil {
			log.Printf("error during shutdown: %v", err)
		}
		os.Exit(0)
	}()
}
