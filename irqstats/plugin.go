// Munin plugin modes for /proc/interrupts

package irqstats

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bgp59/linux-irqstats/internal/utils"
	"github.com/bgp59/linux-irqstats/procfs"
)

const (
	PLUGIN_MODE_AUTOCONF = "autoconf"
	PLUGIN_MODE_CONFIG   = "config"
	PLUGIN_MODE_FETCH    = "fetch"

	// This plugin id:
	IRQSTATS_PLUGIN_ID = "irqstats"
)

// Field name prefix, since munin field names cannot start with a digit:
const IRQSTATS_FIELD_PREFIX = "i"

const irqstatsGraphHeader = `graph_title Individual interrupts
graph_args --base 1000 --logarithmic
graph_vlabel interrupts / ${graph_period}
graph_category system
graph_info Shows the number of different IRQs received by the kernel.  High disk or network traffic can cause a high number of interrupts (with good hardware and drivers this will be less so). Sudden high interrupt activity with no associated higher system activity is not normal.

`

// Info for well known IRQs w/o description:
var irqstatsCannedInfo = map[string]string{
	"NMI": "Non-maskable interrupt. Either 0 or quite high. If it's normally 0 then just one NMI will often mark some hardware failure.",
	"LOC": "Local (per CPU core) APIC timer interrupt. Until 2.6.21 normally 250 or 1000 per second. On modern 'tickless' kernels it more or less reflects how busy the machine is.",
}

var pluginLog = NewCompLogger(IRQSTATS_PLUGIN_ID)

type Plugin struct {
	cfg *IrqstatsConfig
	out io.Writer

	// The following are needed for testing only. Left to their default values,
	// the usual functions will be used.
	checkReadableFn  func(string) error
	onlineCpuCountFn func() (int, error)
}

func NewPlugin(cfg any, out io.Writer) (*Plugin, error) {
	var irqstatsCfg *IrqstatsConfig

	switch cfg := cfg.(type) {
	case *PluginConfig:
		irqstatsCfg = cfg.IrqstatsConfig
	case *IrqstatsConfig:
		irqstatsCfg = cfg
	case nil:
		irqstatsCfg = DefaultIrqstatsConfig()
	default:
		return nil, fmt.Errorf("NewPlugin: %T invalid config type", cfg)
	}
	if irqstatsCfg == nil {
		irqstatsCfg = DefaultIrqstatsConfig()
	}
	if out == nil {
		out = os.Stdout
	}

	plugin := &Plugin{
		cfg:              irqstatsCfg,
		out:              out,
		checkReadableFn:  utils.CheckReadable,
		onlineCpuCountFn: utils.OnlineCpuCount,
	}
	pluginLog.Debugf("procfs_root=%q", irqstatsCfg.ProcfsRoot)
	pluginLog.Debugf("arch=%q", irqstatsCfg.Arch)
	return plugin, nil
}

// Run the mode; return true on success:
func (plugin *Plugin) Run(mode string) bool {
	switch mode {
	case PLUGIN_MODE_AUTOCONF:
		return plugin.Autoconf()
	case PLUGIN_MODE_CONFIG:
		return plugin.Config()
	case PLUGIN_MODE_FETCH:
		return plugin.Fetch()
	}
	pluginLog.Errorf("invalid mode %q", mode)
	return false
}

// Report whether the plugin can run, i.e. whether the source is readable:
func (plugin *Plugin) Autoconf() bool {
	path := procfs.InterruptsPath(plugin.cfg.ProcfsRoot)
	if err := plugin.checkReadableFn(path); err != nil {
		fmt.Fprintf(plugin.out, "no (%s isn't readable: %v)\n", path, err)
		return false
	}
	fmt.Fprintln(plugin.out, "yes")
	return true
}

// Parse the interrupts; return nil on error or if no IRQ was found, the
// reason having been already logged:
func (plugin *Plugin) readInterrupts(withDescription bool) []*procfs.InterruptsIrq {
	interrupts, err := plugin.cfg.NewInterrupts(withDescription)
	if err != nil {
		pluginLog.Error(err)
		return nil
	}
	pluginLog.Debugf("rule_set=%s", interrupts.RuleSet.Name)

	err = interrupts.Parse()
	if err != nil {
		pluginLog.Error(err)
		return nil
	}
	if len(interrupts.Irqs) == 0 {
		pluginLog.Error("no interrupts found")
		return nil
	}

	if onlineCpuCount, err := plugin.onlineCpuCountFn(); err != nil {
		pluginLog.Debugf("online CPU count: %v", err)
	} else if onlineCpuCount != interrupts.NumCpus {
		pluginLog.Debugf(
			"%s: %d CPU columns, %d online CPUs",
			interrupts.Path(), interrupts.NumCpus, onlineCpuCount,
		)
	}
	return interrupts.Irqs
}

// Munin field names are restricted to [A-Za-z0-9_]:
func FieldName(irqName string) string {
	buf := make([]byte, 0, len(IRQSTATS_FIELD_PREFIX)+len(irqName))
	buf = append(buf, IRQSTATS_FIELD_PREFIX...)
	for i := 0; i < len(irqName); i++ {
		c := irqName[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '_':
			buf = append(buf, c)
		default:
			buf = append(buf, '_')
		}
	}
	return string(buf)
}

func writeHWIrqSuffix(buf *bytes.Buffer, irq *procfs.InterruptsIrq) {
	if irq.HasHWIrq {
		buf.WriteString(" [")
		buf.WriteString(strconv.FormatUint(irq.HWIrq, 10))
		buf.WriteByte(']')
	}
}

// Declare the graph and its fields:
func (plugin *Plugin) Config() bool {
	irqs := plugin.readInterrupts(true)
	if irqs == nil {
		return false
	}

	buf := &bytes.Buffer{}
	buf.WriteString(irqstatsGraphHeader)

	buf.WriteString("graph_order")
	for _, irq := range irqs {
		buf.WriteByte(' ')
		buf.WriteString(FieldName(irq.Name))
	}
	buf.WriteByte('\n')

	for _, irq := range irqs {
		fieldName := FieldName(irq.Name)

		// Some, like ERR and MIS, do not have a description:
		label := irq.Description
		if label == "" {
			label = irq.Name
		}
		fmt.Fprintf(buf, "%s.label %s", fieldName, label)
		writeHWIrqSuffix(buf, irq)
		buf.WriteByte('\n')

		if irq.Description != "" {
			fmt.Fprintf(buf, "%s.info Interrupt %s, for device(s): %s", fieldName, irq.Name, irq.Description)
			writeHWIrqSuffix(buf, irq)
			buf.WriteByte('\n')
		} else if info := irqstatsCannedInfo[irq.Name]; info != "" {
			fmt.Fprintf(buf, "%s.info %s\n", fieldName, info)
		}

		fmt.Fprintf(buf, "%s.type DERIVE\n%s.min 0\n", fieldName, fieldName)
	}

	_, err := plugin.out.Write(buf.Bytes())
	if err != nil {
		pluginLog.Error(err)
		return false
	}
	return true
}

// Report the current values:
func (plugin *Plugin) Fetch() bool {
	irqs := plugin.readInterrupts(false)
	if irqs == nil {
		return false
	}

	buf := &bytes.Buffer{}
	for _, irq := range irqs {
		buf.WriteString(FieldName(irq.Name))
		buf.WriteString(".value ")
		buf.WriteString(strconv.FormatUint(irq.Count, 10))
		buf.WriteByte('\n')
	}

	_, err := plugin.out.Write(buf.Bytes())
	if err != nil {
		pluginLog.Error(err)
		return false
	}
	return true
}
