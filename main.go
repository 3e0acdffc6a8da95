// irqstats main: munin plugin reporting the individual interrupts from
// /proc/interrupts.
//
// Usage: irqstats [flags] [autoconf|config|fetch]

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bgp59/linux-irqstats/irqstats"
)

var mainLog = irqstats.NewCompLogger("main")

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(
		out,
		"Usage: %s [flags] [%s|%s|%s]\n\nThe default mode is %s.\n\nFlags:\n",
		os.Args[0],
		irqstats.PLUGIN_MODE_AUTOCONF, irqstats.PLUGIN_MODE_CONFIG, irqstats.PLUGIN_MODE_FETCH,
		irqstats.PLUGIN_MODE_FETCH,
	)
	flag.PrintDefaults()
}

// Select the mode based on the args and run it; return the exit code:
func run(cfg *irqstats.PluginConfig, args []string, out io.Writer) int {
	mode := irqstats.PLUGIN_MODE_FETCH
	switch len(args) {
	case 0:
	case 1:
		mode = args[0]
		switch mode {
		case irqstats.PLUGIN_MODE_AUTOCONF, irqstats.PLUGIN_MODE_CONFIG, irqstats.PLUGIN_MODE_FETCH:
		default:
			mainLog.Errorf("invalid mode '%s'", mode)
			return 1
		}
	default:
		mainLog.Errorf("invalid parameters %q", args)
		return 1
	}

	plugin, err := irqstats.NewPlugin(cfg, out)
	if err != nil {
		mainLog.Error(err)
		return 1
	}
	if !plugin.Run(mode) {
		return 1
	}
	return 0
}

func main() {
	flag.Usage = usage
	flag.Parse()

	// Config:
	cfg, err := irqstats.LoadPluginConfigFromArgs()
	if err != nil {
		mainLog.Fatal(err)
	}

	// Logger:
	err = irqstats.SetLogger(cfg.LoggerConfig)
	if err != nil {
		mainLog.Fatal(err)
	}

	os.Exit(run(cfg, flag.Args(), os.Stdout))
}
