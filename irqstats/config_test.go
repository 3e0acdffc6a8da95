package irqstats

import (
	"bytes"
	"fmt"
	"path"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bgp59/linux-irqstats/procfs"
)

type LoadPluginConfigTestCase struct {
	name      string
	cfgFile   string
	wantCfg   *PluginConfig
	wantError bool
}

func testLoadPluginConfig(tc *LoadPluginConfigTestCase, t *testing.T) {
	gotCfg, err := LoadPluginConfig(path.Join(TESTDATA_CONFIG_DIR, tc.cfgFile))
	if tc.wantError {
		if err == nil {
			t.Fatal("want error, got nil")
		}
		return
	}
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(tc.wantCfg, gotCfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPluginConfig(t *testing.T) {
	for _, tc := range []*LoadPluginConfigTestCase{
		{
			name:    "full",
			cfgFile: "irqstats.yaml",
			wantCfg: &PluginConfig{
				IrqstatsConfig: &IrqstatsConfig{
					ProcfsRoot:  "/host/proc",
					Arch:        "sparc64",
					MaxIrqs:     128,
					MaxLineSize: "8KiB",
					MaxTokens:   16,
					SkipLabels:  []string{"FIQ", "BAD"},
				},
				LoggerConfig: &LoggerConfig{
					UseJson: true,
					Level:   "debug",
				},
			},
		},
		{
			name:    "partial",
			cfgFile: "partial.yaml",
			wantCfg: &PluginConfig{
				IrqstatsConfig: &IrqstatsConfig{
					ProcfsRoot:  IRQSTATS_CONFIG_PROCFS_ROOT_DEFAULT,
					Arch:        "armv7l",
					MaxIrqs:     procfs.INTERRUPTS_MAX_IRQS_DEFAULT,
					MaxLineSize: IRQSTATS_CONFIG_MAX_LINE_SIZE_DEFAULT,
					MaxTokens:   procfs.INTERRUPTS_MAX_TOKENS_DEFAULT,
					SkipLabels:  []string{},
				},
				LoggerConfig: DefaultLoggerConfig(),
			},
		},
		{
			name:    "bad_max_line_size",
			cfgFile: "bad_max_line_size.yaml",
			wantCfg: &PluginConfig{
				IrqstatsConfig: &IrqstatsConfig{
					ProcfsRoot:  IRQSTATS_CONFIG_PROCFS_ROOT_DEFAULT,
					MaxIrqs:     procfs.INTERRUPTS_MAX_IRQS_DEFAULT,
					MaxLineSize: "lots",
					MaxTokens:   procfs.INTERRUPTS_MAX_TOKENS_DEFAULT,
				},
				LoggerConfig: DefaultLoggerConfig(),
			},
		},
		{
			name:      "bad_yaml",
			cfgFile:   "bad_yaml.yaml",
			wantError: true,
		},
		{
			name:      "missing",
			cfgFile:   "missing.yaml",
			wantError: true,
		},
	} {
		t.Run(
			tc.name,
			func(t *testing.T) { testLoadPluginConfig(tc, t) },
		)
	}
}

type NewInterruptsTestCase struct {
	name            string
	cfg             *IrqstatsConfig
	wantMaxLineSize int
	wantRuleSet     string
	wantSkipLabels  []string
	wantError       bool
}

func testNewInterrupts(tc *NewInterruptsTestCase, t *testing.T) {
	interrupts, err := tc.cfg.NewInterrupts(true)
	if tc.wantError {
		if err == nil {
			t.Fatal("want error, got nil")
		}
		return
	}
	if err != nil {
		t.Fatal(err)
	}

	errBuf := &bytes.Buffer{}
	if !interrupts.WithDescription {
		fmt.Fprintf(errBuf, "\nWithDescription: want: true, got: false")
	}
	if interrupts.MaxLineSize != tc.wantMaxLineSize {
		fmt.Fprintf(errBuf, "\nMaxLineSize: want: %d, got: %d", tc.wantMaxLineSize, interrupts.MaxLineSize)
	}
	if interrupts.MaxIrqs != tc.cfg.MaxIrqs {
		fmt.Fprintf(errBuf, "\nMaxIrqs: want: %d, got: %d", tc.cfg.MaxIrqs, interrupts.MaxIrqs)
	}
	if interrupts.MaxTokens != tc.cfg.MaxTokens {
		fmt.Fprintf(errBuf, "\nMaxTokens: want: %d, got: %d", tc.cfg.MaxTokens, interrupts.MaxTokens)
	}
	wantPath := procfs.InterruptsPath(tc.cfg.ProcfsRoot)
	if interrupts.Path() != wantPath {
		fmt.Fprintf(errBuf, "\nPath(): want: %q, got: %q", wantPath, interrupts.Path())
	}
	if interrupts.RuleSet.Name != tc.wantRuleSet {
		fmt.Fprintf(errBuf, "\nRuleSet.Name: want: %q, got: %q", tc.wantRuleSet, interrupts.RuleSet.Name)
	}
	if diff := cmp.Diff(tc.wantSkipLabels, interrupts.RuleSet.SkipLabels); diff != "" {
		fmt.Fprintf(errBuf, "\nRuleSet.SkipLabels mismatch (-want +got):\n%s", diff)
	}
	if errBuf.Len() > 0 {
		t.Fatal(errBuf)
	}
}

func TestNewInterrupts(t *testing.T) {
	withCfg := func(update func(cfg *IrqstatsConfig)) *IrqstatsConfig {
		cfg := DefaultIrqstatsConfig()
		update(cfg)
		return cfg
	}

	for _, tc := range []*NewInterruptsTestCase{
		{
			name:            "x86_64",
			cfg:             withCfg(func(cfg *IrqstatsConfig) { cfg.Arch = "x86_64" }),
			wantMaxLineSize: 4096,
			wantRuleSet:     procfs.GenericDescriptionRuleSet.Name,
			wantSkipLabels:  procfs.GenericDescriptionRuleSet.SkipLabels,
		},
		{
			name:            "armv7l",
			cfg:             withCfg(func(cfg *IrqstatsConfig) { cfg.Arch = "armv7l" }),
			wantMaxLineSize: 4096,
			wantRuleSet:     procfs.ArmDescriptionRuleSet.Name,
			wantSkipLabels:  []string{"FIQ"},
		},
		{
			name: "armv7l_no_skip",
			cfg: withCfg(func(cfg *IrqstatsConfig) {
				cfg.Arch = "armv7l"
				cfg.SkipLabels = []string{}
			}),
			wantMaxLineSize: 4096,
			wantRuleSet:     procfs.ArmDescriptionRuleSet.Name,
			wantSkipLabels:  []string{},
		},
		{
			name: "sparc64_8k",
			cfg: withCfg(func(cfg *IrqstatsConfig) {
				cfg.Arch = "sparc64"
				cfg.MaxLineSize = "8k"
				cfg.MaxIrqs = 16
				cfg.MaxTokens = 4
				cfg.ProcfsRoot = "/host/proc"
			}),
			wantMaxLineSize: 8192,
			wantRuleSet:     procfs.SparcDescriptionRuleSet.Name,
			wantSkipLabels:  procfs.SparcDescriptionRuleSet.SkipLabels,
		},
		{
			name:      "bad_max_line_size",
			cfg:       withCfg(func(cfg *IrqstatsConfig) { cfg.MaxLineSize = "lots" }),
			wantError: true,
		},
		{
			name:      "zero_max_line_size",
			cfg:       withCfg(func(cfg *IrqstatsConfig) { cfg.MaxLineSize = "0" }),
			wantError: true,
		},
	} {
		t.Run(
			tc.name,
			func(t *testing.T) { testNewInterrupts(tc, t) },
		)
	}
}
