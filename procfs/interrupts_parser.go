// parser for /proc/interrupts

package procfs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
)

// The best explanation for /proc/interrupts syntax so far: https://serverfault.com/a/1118526
//
// \/  ... linux global irq number
//             \/  ...   number of occurred irqs on CPU 0
//                         \/  ...    number of occurred irqs on CPU 1
//                               \/  ...  irq chip receiving the irq
//                                          \/ ... hw irq number and type of irq
//                                                           \/  ... assigned action of irq
//                                                                   (-> irq handler inside a driver, can also be assigned to more then just one handler / driver)
//
// cat /proc/interrupts
//            CPU0       CPU1
//   0:         22          0  IR-IO-APIC   2-edge            timer
//   1:          2          0  IR-IO-APIC   1-edge            i8042
//   9:          0          0  IR-IO-APIC   9-fasteoi         acpi
// 122:          0          0  IR-PCI-MSI   327680-edge       xhci_hcd
// 123:      25164    5760490  IR-PCI-MSI   1048576-edge      enp2s0
// ...
// NMI:          0          0 Non-maskable interrupts
// LOC:          0          0 Local timer interrupts
// ERR:          0
// MIS:          0
//
// Some lines, such as ERR and MIS, have fewer counters than CPUs. The parse is
// all or nothing: any malformed line invalidates the whole file.

const (
	// Stop processing after this many IRQs have been seen:
	INTERRUPTS_MAX_IRQS_DEFAULT = 256
	// Max line size, including the ending `\n'; this is sufficient even for a
	// system with 256 threads:
	INTERRUPTS_MAX_LINE_SIZE_DEFAULT = 4096
	// Max number of tokens considered for the description:
	INTERRUPTS_MAX_TOKENS_DEFAULT = 32
)

var (
	ErrSourceUnavailable           = errors.New("source unavailable")
	ErrLineTooLong                 = errors.New("line too long")
	ErrMalformedHeader             = errors.New("malformed header")
	ErrMalformedRowName            = errors.New("malformed row name")
	ErrNoCounters                  = errors.New("no counters")
	ErrGarbageWhereCounterExpected = errors.New("garbage where counter expected")
)

var (
	interruptsCpuHeaderPrefix = []byte("CPU")
	interruptsSpace           = []byte{' '}
)

const (
	interruptsIrqSeparator = ':'
	// How much of an overlong line to include in the error:
	interruptsLineTooLongQuoteLen = 64
)

type InterruptsIrq struct {
	// The label left of `:', e.g. "38" or "NMI":
	Name string
	// Sum of all the per CPU counters:
	Count uint64
	// Populated only if the description was requested and found; empty means
	// no description:
	Description string
	// The hw irq, if different from the IRQ number. It may be 0, hence the
	// flag:
	HWIrq    uint64
	HasHWIrq bool
}

type Interrupts struct {
	// IRQs, in file order:
	Irqs []*InterruptsIrq
	// The number of CPUs, based on the header line:
	NumCpus int

	// Whether to parse the description or not:
	WithDescription bool
	// Limits, 0 stands for default:
	MaxIrqs, MaxLineSize, MaxTokens int
	// The rule set used for descriptions and line skipping; nil stands for
	// the generic one:
	RuleSet *DescriptionRuleSet

	// The path file to  read:
	path string
}

func InterruptsPath(procfsRoot string) string {
	return path.Join(procfsRoot, "interrupts")
}

func NewInterrupts(procfsRoot string) *Interrupts {
	return &Interrupts{
		path: InterruptsPath(procfsRoot),
	}
}

func (interrupts *Interrupts) Path() string {
	return interrupts.path
}

// Read the file in one go and parse it:
func (interrupts *Interrupts) Parse() error {
	interrupts.Irqs, interrupts.NumCpus = nil, 0
	buf, err := os.ReadFile(interrupts.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return interrupts.parseBuf(buf)
}

// Same as Parse, using a reader instead of the file:
func (interrupts *Interrupts) ParseReader(r io.Reader) error {
	interrupts.Irqs, interrupts.NumCpus = nil, 0
	buf, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", interrupts.path, ErrSourceUnavailable, err)
	}
	return interrupts.parseBuf(buf)
}

func (interrupts *Interrupts) parseBuf(buf []byte) error {
	maxIrqs := interrupts.MaxIrqs
	if maxIrqs <= 0 {
		maxIrqs = INTERRUPTS_MAX_IRQS_DEFAULT
	}
	maxLineSize := interrupts.MaxLineSize
	if maxLineSize <= 0 {
		maxLineSize = INTERRUPTS_MAX_LINE_SIZE_DEFAULT
	}

	irqs, numCpus := make([]*InterruptsIrq, 0), 0
	for pos, lineNum, l := 0, 1, len(buf); pos < l && len(irqs) < maxIrqs; lineNum++ {
		// Line starts here; it must end w/ `\n' within the size limit:
		startLine, searchEnd := pos, pos+maxLineSize
		if searchEnd > l {
			searchEnd = l
		}
		eol := bytes.IndexByte(buf[startLine:searchEnd], '\n')
		if eol < 0 {
			quoteEnd := startLine + interruptsLineTooLongQuoteLen
			if quoteEnd > searchEnd {
				quoteEnd = searchEnd
			}
			return fmt.Errorf(
				"%s#%d: %q...: %w: no `\\n' within %d bytes",
				interrupts.path, lineNum, buf[startLine:quoteEnd], ErrLineTooLong, maxLineSize,
			)
		}
		eol += startLine
		pos = eol + 1
		line := buf[startLine:eol]

		var err error
		if lineNum == 1 {
			numCpus, err = parseInterruptsHeader(line)
		} else {
			var irq *InterruptsIrq
			irq, err = interrupts.parseIrqLine(line, numCpus)
			if irq != nil {
				irqs = append(irqs, irq)
			}
		}
		if err != nil {
			return fmt.Errorf("%s#%d: %q: %w", interrupts.path, lineNum, line, err)
		}
	}

	interrupts.Irqs, interrupts.NumCpus = irqs, numCpus
	return nil
}

// Parse the header line, one CPUNNN column per CPU; return the CPU count:
func parseInterruptsHeader(line []byte) (int, error) {
	numCpus := 0
	for pos, end := 0, len(line); ; {
		start, stop := nextField(line, pos, end)
		if start == stop {
			break
		}
		if cpu := line[start:stop]; !bytes.HasPrefix(cpu, interruptsCpuHeaderPrefix) {
			return 0, fmt.Errorf("%w: %q: invalid cpu spec, not CPUNNN", ErrMalformedHeader, cpu)
		}
		numCpus++
		pos = stop
	}
	if numCpus == 0 {
		return 0, fmt.Errorf("%w: no CPUs found", ErrMalformedHeader)
	}
	return numCpus, nil
}

// Parse an IRQ line: `IRQ: NNN ... NNN [DESCRIPTION]'. Return nil for skipped
// lines.
func (interrupts *Interrupts) parseIrqLine(line []byte, numCpus int) (*InterruptsIrq, error) {
	ruleSet := interrupts.RuleSet
	if ruleSet == nil {
		ruleSet = GenericDescriptionRuleSet
	}

	end := len(line)
	irqStart, irqEnd := nextField(line, 0, end)
	if irqEnd-irqStart < 2 || line[irqEnd-1] != interruptsIrqSeparator {
		return nil, fmt.Errorf("%w: missing `IRQ:'", ErrMalformedRowName)
	}
	label := line[irqStart : irqEnd-1]
	if ruleSet.isSkipLabel(label) {
		return nil, nil
	}

	// Parse ` NNN NNN ... NNN' interrupt counters; some IRQs have fewer
	// counters than CPUs:
	count, pos := uint64(0), irqEnd
	for counterIndex := 0; counterIndex < numCpus; counterIndex++ {
		start, stop := nextField(line, pos, end)
		if start == stop {
			if counterIndex == 0 {
				return nil, ErrNoCounters
			}
			break
		}
		counter := line[start:stop]
		if !isNumeric(counter) {
			if counterIndex == 0 {
				return nil, fmt.Errorf("%w: %q", ErrGarbageWhereCounterExpected, counter)
			}
			// Ran into the description, it starts here:
			pos = start
			break
		}
		count += leadingUint(counter)
		pos = stop
	}

	irq := &InterruptsIrq{
		Name:  string(label),
		Count: count,
	}
	if !interrupts.WithDescription {
		return irq, nil
	}

	remainder := bytes.TrimSpace(line[pos:])
	if len(remainder) == 0 {
		return irq, nil
	}
	tokens := bytes.Fields(remainder)

	// Architecture specific IRQs have free format descriptions:
	if !isNumeric(label) {
		irq.Description = string(bytes.Join(tokens, interruptsSpace))
		return irq, nil
	}

	maxTokens := interrupts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = INTERRUPTS_MAX_TOKENS_DEFAULT
	}
	if len(tokens) > maxTokens {
		tokens = tokens[:maxTokens]
	}
	irq.Description, irq.HWIrq, irq.HasHWIrq = ruleSet.describe(leadingUint(label), tokens)
	return irq, nil
}
