package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"statline/internal/config"
	"statline/internal/engine"
	"statline/internal/log"
	"statline/internal/sim"
	"statline/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// defaultTokens are registered when the config file names none.
var defaultTokens = []config.TokenSpec{
	{Name: "HostSteps", Query: "player=host|stat=stepsTaken"},
	{Name: "HostMoney", Query: "player=host|stat=total money earned"},
	{Name: "LocalFish", Query: "player=local|stat=fishCaught"},
	{Name: "Enchanted", Query: "player=host|stat=times enchanted"},
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Error("GLOBAL PANIC recovered", "error", r, "stack", string(debug.Stack()))
			fmt.Fprintf(os.Stderr, "Application crashed. See the debug log for details.\n")
			os.Exit(1)
		}
	}()

	var cfgPath string
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := log.SetFileOutput(cfg.LogFile); err != nil {
		fmt.Printf("Warning: Could not configure debug logging to file: %v\n", err)
	}
	log.Info("statline starting", "version", version, "commit", commit, "built", date)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signalChan
		log.Error("SIGNAL RECEIVED", "signal", sig.String())
		os.Exit(1)
	}()

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println("statline inspector")
		fmt.Println("This application requires a terminal/TTY to run properly.")
		os.Exit(1)
	}

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Error("metrics listener failed", "error", err)
			}
		}()
	}

	store, err := sim.OpenStore(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening simulation database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	simulation := sim.New(cfg.MasterSession, cfg.Seed)
	if err := simulation.Load(store); err != nil {
		log.Warn("could not restore simulation state", "error", err)
	}

	eng := engine.New(simulation)
	tokens := cfg.Tokens
	if len(tokens) == 0 {
		tokens = defaultTokens
	}
	for _, t := range tokens {
		if err := eng.Register(t.Name, t.Query); err != nil {
			log.Warn("token rejected", "error", err)
		}
	}

	// Prime the cache so the first frame shows current values.
	eng.UpdateContext(simulation.Local(), simulation.Host())

	inspector := tui.NewInspector(eng, simulation, cfg.Interval())
	if err := inspector.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	if err := simulation.Save(store); err != nil {
		log.Error("could not persist simulation state", "error", err)
	}
	log.Close()
}
