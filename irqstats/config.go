// Configuration for the irqstats plugin

package irqstats

import (
	"flag"
	"fmt"
	"os"

	"github.com/docker/go-units"
	"github.com/go-yaml/yaml"

	"github.com/bgp59/linux-irqstats/internal/utils"
	"github.com/bgp59/linux-irqstats/procfs"
)

// The configuration is stored in one object to make it easy to load it from a
// file. All parameters have built-in defaults, so the file is optional, and a
// few can be overridden by command line arguments.
//
// The decreasing order of precedence for parameter values:
//   - command line arg (if applicable)
//   - config file
//   - built-in default

const (
	IRQSTATS_CONFIG_PROCFS_ROOT_DEFAULT   = "/proc"
	IRQSTATS_CONFIG_MAX_LINE_SIZE_DEFAULT = "4KiB"
)

type IrqstatsConfig struct {
	// The root of the proc filesystem, the file read is PROCFS_ROOT/interrupts:
	ProcfsRoot string `yaml:"procfs_root"`
	// The architecture used for selecting the description rule set; if empty
	// the kernel machine name (uname -m) is used:
	Arch string `yaml:"arch"`
	// Stop after this many IRQs:
	MaxIrqs int `yaml:"max_irqs"`
	// Max line size, in github.com/docker/go-units RAMInBytes format, e.g.
	// 4096, 4k or 4KiB:
	MaxLineSize string `yaml:"max_line_size"`
	// Max number of description tokens to consider:
	MaxTokens int `yaml:"max_tokens"`
	// Override the rule set list of labels to skip; leave it unset for the
	// rule set default, use [] to disable skipping:
	SkipLabels []string `yaml:"skip_labels"`
}

func DefaultIrqstatsConfig() *IrqstatsConfig {
	return &IrqstatsConfig{
		ProcfsRoot:  IRQSTATS_CONFIG_PROCFS_ROOT_DEFAULT,
		MaxIrqs:     procfs.INTERRUPTS_MAX_IRQS_DEFAULT,
		MaxLineSize: IRQSTATS_CONFIG_MAX_LINE_SIZE_DEFAULT,
		MaxTokens:   procfs.INTERRUPTS_MAX_TOKENS_DEFAULT,
	}
}

type PluginConfig struct {
	IrqstatsConfig *IrqstatsConfig `yaml:"irqstats_config"`
	LoggerConfig   *LoggerConfig   `yaml:"log_config"`
}

var pluginConfigFile = flag.String(
	"config",
	"",
	FormatFlagUsage(`
	Config file to load, optional; built-in defaults are used for
	missing parameters.
	`),
)

var procfsRootArg = NewStringFlagCheckUsed(
	"procfs-root",
	IRQSTATS_CONFIG_PROCFS_ROOT_DEFAULT,
	`Procfs root, overrides the config file setting`,
)

var archArg = NewStringFlagCheckUsed(
	"arch",
	"",
	`
	Architecture for the description rule set, e.g. x86_64, armv7l,
	sparc64. Overrides the config file setting; if neither is set, then
	the kernel machine name is used.
	`,
)

func DefaultPluginConfig() *PluginConfig {
	return &PluginConfig{
		IrqstatsConfig: DefaultIrqstatsConfig(),
		LoggerConfig:   DefaultLoggerConfig(),
	}
}

func LoadPluginConfig(cfgFile string) (*PluginConfig, error) {
	f, err := os.Open(cfgFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	cfg := DefaultPluginConfig()
	err = decoder.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("file: %q: %v", cfgFile, err)
	}
	if cfg.IrqstatsConfig == nil {
		cfg.IrqstatsConfig = DefaultIrqstatsConfig()
	}
	if cfg.LoggerConfig == nil {
		cfg.LoggerConfig = DefaultLoggerConfig()
	}
	return cfg, nil
}

// Load the config from the file passed as arg, if any, and apply the command
// line overrides:
func LoadPluginConfigFromArgs() (*PluginConfig, error) {
	var (
		cfg *PluginConfig
		err error
	)
	if *pluginConfigFile != "" {
		cfg, err = LoadPluginConfig(*pluginConfigFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = DefaultPluginConfig()
	}
	if procfsRootArg.Used {
		cfg.IrqstatsConfig.ProcfsRoot = procfsRootArg.Value
	}
	if archArg.Used {
		cfg.IrqstatsConfig.Arch = archArg.Value
	}
	return cfg, nil
}

// Build the parser based on config:
func (cfg *IrqstatsConfig) NewInterrupts(withDescription bool) (*procfs.Interrupts, error) {
	maxLineSize, err := units.RAMInBytes(cfg.MaxLineSize)
	if err != nil {
		return nil, fmt.Errorf("invalid max_line_size %q: %v", cfg.MaxLineSize, err)
	}
	if maxLineSize <= 0 {
		return nil, fmt.Errorf("invalid max_line_size %q: must be > 0", cfg.MaxLineSize)
	}

	arch := cfg.Arch
	if arch == "" {
		arch = utils.MachineArch()
	}
	ruleSet := procfs.SelectDescriptionRuleSet(arch)
	if cfg.SkipLabels != nil {
		ruleSet = ruleSet.WithSkipLabels(cfg.SkipLabels)
	}

	interrupts := procfs.NewInterrupts(cfg.ProcfsRoot)
	interrupts.WithDescription = withDescription
	interrupts.MaxIrqs = cfg.MaxIrqs
	interrupts.MaxLineSize = int(maxLineSize)
	interrupts.MaxTokens = cfg.MaxTokens
	interrupts.RuleSet = ruleSet
	return interrupts, nil
}
