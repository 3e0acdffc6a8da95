// Command line parsing utilities:

package irqstats

import (
	"flag"
	"strconv"
	"strings"
)

const (
	// The help usage message line wraparound default width:
	DEFAULT_FLAG_USAGE_WIDTH = 58
)

// Variant of flags which allows checking if they were was set or not; this is
// needed for command line args that override a config file setting, but *only*
// if they were used on the command line.

type BoolFlagCheckUsed struct {
	// Whether it was used on the command line or not:
	Used bool
	// Value, defaults to true if no value was set on the command line:
	Value bool
}

func (bfcu *BoolFlagCheckUsed) set(s string) error {
	val := true
	if s != "" {
		var err error
		if val, err = strconv.ParseBool(s); err != nil {
			return err
		}
	}
	bfcu.Used, bfcu.Value = true, val
	return nil
}

func NewBoolFlagCheckUsed(name, usage string) *BoolFlagCheckUsed {
	bfcu := &BoolFlagCheckUsed{}
	flag.BoolFunc(name, FormatFlagUsage(usage), bfcu.set)
	return bfcu
}

type StringFlagCheckUsed struct {
	// Whether it was used on the command line or not:
	Used bool
	// Value, populated w/ the default:
	Value string
}

func (sfcu *StringFlagCheckUsed) set(s string) error {
	sfcu.Used, sfcu.Value = true, s
	return nil
}

func NewStringFlagCheckUsed(name, value, usage string) *StringFlagCheckUsed {
	sfcu := &StringFlagCheckUsed{Value: value}
	flag.Func(name, FormatFlagUsage(usage), sfcu.set)
	return sfcu
}

// Format command flag usage for help message, by wrapping the lines around a
// given width. The original line breaks and prefixing white spaces are
// ignored, so the usage can be written as an indented raw string.
func FormatFlagUsageWidth(usage string, width int) string {
	sb := &strings.Builder{}
	lineLen := 0
	for i, word := range strings.Fields(usage) {
		if i > 0 {
			if lineLen+len(word)+1 > width {
				sb.WriteByte('\n')
				lineLen = 0
			} else {
				sb.WriteByte(' ')
				lineLen++
			}
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}

func FormatFlagUsage(usage string) string {
	return FormatFlagUsageWidth(usage, DEFAULT_FLAG_USAGE_WIDTH)
}
