package main

import (
	"fmt"

	"github.com/bgp59/linux-irqstats/internal/utils"
	"github.com/bgp59/linux-irqstats/procfs"
)

func main() {
	arch := utils.MachineArch()
	onlineCpuCount, err := utils.OnlineCpuCount()
	onlineCpuCountStr := fmt.Sprintf("%d", onlineCpuCount)
	if err != nil {
		onlineCpuCountStr = err.Error()
	}
	readableStr := "yes"
	if err := utils.CheckReadable(procfs.InterruptsPath("/proc")); err != nil {
		readableStr = err.Error()
	}

	fmt.Printf(`
MachineArch:          %q
DescriptionRuleSet:   %s
OnlineCpuCount:       %s
/proc/interrupts R_OK: %s
`,
		arch,
		procfs.SelectDescriptionRuleSet(arch).Name,
		onlineCpuCountStr,
		readableStr,
	)
}
