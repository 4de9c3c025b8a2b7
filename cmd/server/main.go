package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/janpfeifer/GoSet/internal/config"
	"github.com/janpfeifer/GoSet/internal/game"
	"github.com/janpfeifer/GoSet/internal/server"
	"k8s.io/klog/v2"
)

var (
	flagConfig = flag.String("config", "", "Path to a YAML configuration file (optional)")
	flagAddr   = flag.String("addr", "", "Address to listen on (default: auto-port on localhost), overrides the configuration file")
	flagMode   = flag.String("mode", "", "Default game mode, \"set\" or \"ultraset\", overrides the configuration file")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	cfg := config.Default()
	if *flagConfig != "" {
		var err error
		cfg, err = config.Load(*flagConfig)
		if err != nil {
			klog.Fatalf("%v", err)
		}
	}
	if *flagAddr != "" {
		cfg.Addr = *flagAddr
	}
	if *flagMode != "" {
		mode, err := game.ParseMode(*flagMode)
		if err != nil {
			klog.Fatalf("invalid -mode: %v", err)
		}
		cfg.DefaultMode = mode
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	started := make(chan *server.ServerState, 1)
	go func() {
		state := <-started
		fmt.Printf("GoSet server listening on http://%s\n", state.Address)
	}()

	if err := server.RunWithConfig(ctx, cfg, started); err != nil {
		klog.Fatalf("%v", err)
	}
}
