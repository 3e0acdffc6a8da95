// Dump the parsed interrupts, with descriptions, using the plugin config and
// logger; useful for checking the description rules on a new architecture.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bgp59/linux-irqstats/irqstats"
)

var dumpLog = irqstats.NewCompLogger("dump")

func main() {
	flag.Parse()
	cfg, err := irqstats.LoadPluginConfigFromArgs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = irqstats.SetLogger(cfg.LoggerConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	interrupts, err := cfg.IrqstatsConfig.NewInterrupts(true)
	if err != nil {
		dumpLog.Fatal(err)
	}
	dumpLog.Infof("path=%q, rule_set=%s", interrupts.Path(), interrupts.RuleSet.Name)

	err = interrupts.Parse()
	if err != nil {
		dumpLog.Fatal(err)
	}
	dumpLog.Infof("num_cpus=%d, num_irqs=%d", interrupts.NumCpus, len(interrupts.Irqs))

	for _, irq := range interrupts.Irqs {
		hwIrq := "-"
		if irq.HasHWIrq {
			hwIrq = fmt.Sprintf("%d", irq.HWIrq)
		}
		fmt.Printf(
			"%-8s %-20s count=%-12d hwirq=%-8s %q\n",
			irq.Name, irqstats.FieldName(irq.Name), irq.Count, hwIrq, irq.Description,
		)
	}
}
