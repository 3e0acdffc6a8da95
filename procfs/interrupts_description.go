// Description normalizer for /proc/interrupts numeric IRQ lines

package procfs

import (
	"bytes"
	"strings"
)

// The part following the counters of a numeric IRQ line has no fixed grammar,
// its layout depends on the architecture and the IRQ chip. Samples, the
// description is marked with `^':
//
// PowerPC:  38:  150262   0   0   0   OpenPIC    38 Level     i2c-mpc, i2c-mpc
//                                                             ^^^^^^^^^^^^^^^^
// MIPS:      3:  247552271      MIPS   3  ehci_hcd:usb1
//                                         ^^^^^^^^^^^^^
// ARM:      33:     617373  f1010140.gpio  17 Edge      pps.-1
//                                                       ^^^^^^
// x86:     122:   0   0  IR-PCI-MSI   327680-edge       xhci_hcd
//                                                       ^^^^^^^^
// old ARM:  17:  6417   GPIO  ttyS0
//                             ^^^^^
// SPARC:   ...:  ...    <chip> <ino> MSIQ   ...
//
// The leading tokens before the description are metadata: controller, hw irq
// number and trigger type; the hw irq is reported only if it differs from the
// logical IRQ number.

type DescriptionRuleSetKind int

const (
	DESCRIPTION_RULE_SET_GENERIC DescriptionRuleSetKind = iota
	DESCRIPTION_RULE_SET_SPARC
)

type DescriptionRuleSet struct {
	Name string
	Kind DescriptionRuleSetKind
	// Lines with these labels are informational (no counters) and they are
	// skipped:
	SkipLabels []string
}

var GenericDescriptionRuleSet = &DescriptionRuleSet{
	Name: "generic",
	Kind: DESCRIPTION_RULE_SET_GENERIC,
}

// Raspberry Pi style boards list `FIQ:  usb_fiq', w/o counters:
var ArmDescriptionRuleSet = &DescriptionRuleSet{
	Name:       "arm",
	Kind:       DESCRIPTION_RULE_SET_GENERIC,
	SkipLabels: []string{"FIQ"},
}

var SparcDescriptionRuleSet = &DescriptionRuleSet{
	Name: "sparc",
	Kind: DESCRIPTION_RULE_SET_SPARC,
}

// Select the rule set based on the architecture, either a GOARCH value or a
// kernel machine name (uname -m):
func SelectDescriptionRuleSet(arch string) *DescriptionRuleSet {
	arch = strings.ToLower(arch)
	switch {
	case strings.HasPrefix(arch, "sparc"):
		return SparcDescriptionRuleSet
	case strings.HasPrefix(arch, "arm"), arch == "aarch64":
		return ArmDescriptionRuleSet
	}
	return GenericDescriptionRuleSet
}

// Return a copy of the rule set w/ a different skip list:
func (ruleSet *DescriptionRuleSet) WithSkipLabels(skipLabels []string) *DescriptionRuleSet {
	newRuleSet := *ruleSet
	newRuleSet.SkipLabels = make([]string, len(skipLabels))
	copy(newRuleSet.SkipLabels, skipLabels)
	return &newRuleSet
}

func (ruleSet *DescriptionRuleSet) isSkipLabel(label []byte) bool {
	for _, skipLabel := range ruleSet.SkipLabels {
		if string(label) == skipLabel {
			return true
		}
	}
	return false
}

type descriptionLayout int

const (
	// A single token, which is the description:
	layoutSingleToken descriptionLayout = iota
	// CHIP DESCRIPTION...:
	layoutChip
	// CHIP HWIRQ [TYPE] DESCRIPTION...:
	layoutChipHWIrq
	// CHIP HWIRQ-{fasteoi,edge} DESCRIPTION...:
	layoutChipSuffixedHWIrq
	// SPARC: CHIP INO DESCRIPTION...:
	layoutSparcChip
	// SPARC: CHIP INO MSIQ...; these are duplicated per thread, so the IRQ# is
	// always shown:
	layoutSparcMsiq
)

var (
	irqTriggerTypes = [][]byte{
		[]byte("Edge"),
		[]byte("Level"),
		[]byte("None"),
	}

	hwIrqSuffixes = [][]byte{
		[]byte("-fasteoi"),
		[]byte("-edge"),
	}

	sparcMsiqTag = []byte("MSIQ")
)

func isIrqTriggerType(token []byte) bool {
	for _, triggerType := range irqTriggerTypes {
		if bytes.Equal(token, triggerType) {
			return true
		}
	}
	return false
}

func isSuffixedHWIrq(token []byte) bool {
	if len(token) == 0 || !isDigit[token[0]] {
		return false
	}
	for _, suffix := range hwIrqSuffixes {
		if bytes.HasSuffix(token, suffix) {
			return true
		}
	}
	return false
}

func (ruleSet *DescriptionRuleSet) classify(tokens [][]byte) descriptionLayout {
	numTokens := len(tokens)
	switch {
	case numTokens <= 1:
		return layoutSingleToken
	case ruleSet.Kind == DESCRIPTION_RULE_SET_SPARC && numTokens >= 3:
		if bytes.Equal(tokens[2], sparcMsiqTag) {
			return layoutSparcMsiq
		}
		return layoutSparcChip
	case ruleSet.Kind == DESCRIPTION_RULE_SET_GENERIC && isNumeric(tokens[1]):
		return layoutChipHWIrq
	case isSuffixedHWIrq(tokens[1]):
		return layoutChipSuffixedHWIrq
	}
	return layoutChip
}

// Build the description and hw irq for a numeric IRQ from the tokens
// following the counters. tokens should not be empty.
func (ruleSet *DescriptionRuleSet) describe(irqNum uint64, tokens [][]byte) (string, uint64, bool) {
	var (
		hwIrq    uint64
		hasHWIrq bool
	)

	numTokens, tokenStart := len(tokens), 1
	switch ruleSet.classify(tokens) {
	case layoutSingleToken:
		return string(tokens[0]), 0, false
	case layoutChip:
		tokenStart = 1
	case layoutChipHWIrq:
		tokenStart = 2
		if hwIrq = leadingUint(tokens[1]); hwIrq != irqNum {
			hasHWIrq = true
		}
		// MIPS has been seen w/o the type:
		if numTokens > 2 && isIrqTriggerType(tokens[2]) {
			tokenStart = 3
		}
	case layoutChipSuffixedHWIrq:
		tokenStart = 2
		if hwIrq = leadingUint(tokens[1]); hwIrq != irqNum {
			hasHWIrq = true
		}
	case layoutSparcChip:
		tokenStart = 2
	case layoutSparcMsiq:
		tokenStart = 2
		hwIrq, hasHWIrq = irqNum, true
	}
	if !hasHWIrq {
		hwIrq = 0
	}

	if tokenStart >= numTokens {
		// Nothing left past the metadata, keep the last token:
		return string(tokens[numTokens-1]), hwIrq, hasHWIrq
	}
	return string(bytes.Join(tokens[tokenStart:], []byte{' '})), hwIrq, hasHWIrq
}
