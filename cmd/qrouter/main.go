// Command qrouter drives a single routing session end to end: load a
// technology library and a placed layout, run stage 1 and stage 2, write
// the routed layout back out, and report the outcome. Flags are the only command-line surface; qrouter has no
// interactive mode.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/qrouter/config"
	"github.com/sarchlab/qrouter/router"
)

func main() {
	libPath := flag.String("lib", "", "technology/cell library (.lef) path")
	defPath := flag.String("def", "", "placed design (.def) path")
	cfgPath := flag.String("config", "", "YAML configuration path (optional, defaults apply if omitted)")
	outPath := flag.String("out", "", "routed layout output path")
	netName := flag.String("net", "", "restrict stage 1/2 to a single net name (optional)")
	flag.Parse()

	log := slog.Default()

	if *libPath == "" || *defPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "qrouter: -lib, -def, and -out are required")
		flag.Usage()
		atexit.Exit(2)
		return
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath, log)
		if err != nil {
			log.Error("loading configuration", "error", err)
			atexit.Exit(2)
			return
		}
		cfg = loaded
	}

	r := router.New(cfg, log)

	if err := r.LoadLibrary(*libPath); err != nil {
		log.Error("loading library", "error", err)
		atexit.Exit(2)
		return
	}
	if err := r.LoadLayout(*defPath); err != nil {
		log.Error("loading layout", "error", err)
		atexit.Exit(2)
		return
	}

	if failed, err := r.RouteStage1(*netName); err != nil {
		log.Error("stage 1", "error", err)
		atexit.Exit(2)
		return
	} else {
		log.Info("stage 1 done", "failed", failed)
	}

	if remaining, err := r.RouteStage2(*netName); err != nil {
		log.Error("stage 2", "error", err)
		atexit.Exit(2)
		return
	} else {
		log.Info("stage 2 done", "failing", remaining)
	}

	if err := r.WriteRoutedLayout(*outPath); err != nil {
		log.Error("writing routed layout", "error", err)
		atexit.Exit(2)
		return
	}

	fmt.Print(r.Report())

	for _, name := range r.FailingNets() {
		log.Warn("net failed to route", "net", name)
	}

	atexit.Exit(r.ExitStatus())
}
