package main

import (
	"flag"
	"os"

	"github.com/janpfeifer/GoSet/internal/frontend"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

func main() {
	// Initialize klog for WASM, forcing logs to stderr (console)
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	fs.Set("logtostderr", "true")
	klog.SetOutput(os.Stderr)
	klog.Infof("WASM started!")

	// Root route shows the menu of game variants
	app.Route("/", func() app.Composer { return &frontend.Home{} })

	// Play route, the variant is given in the query
	app.Route("/play", func() app.Composer { return &frontend.Game{} })

	// Initialize the global app state manager
	frontend.InitState()

	// When building for WEB (GOOS=js GOARCH=wasm), app.Run() executes the frontend logic
	app.RunWhenOnBrowser()

	// In server mode, app.RunWhenOnBrowser doesn't do anything.
	// But our server is in cmd/server/, so we don't even reach here natively.
}
