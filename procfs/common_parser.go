// Common definitions for the parsers

package procfs

// The files consist of words delimited by white spaces; the content is scanned
// one byte at the time and the following arrays provide a convenient lookup
// for deciding the byte class:
var isWhitespaceNl = [256]bool{
	' ':  true,
	'\t': true,
	'\n': true,
	'\r': true,
}

var isDigit = [256]bool{
	'0': true, '1': true, '2': true, '3': true, '4': true,
	'5': true, '6': true, '7': true, '8': true, '9': true,
}

// Whether the field is a non-empty sequence of decimal digits:
func isNumeric(field []byte) bool {
	if len(field) == 0 {
		return false
	}
	for _, c := range field {
		if !isDigit[c] {
			return false
		}
	}
	return true
}

// Convert the leading digits of the field to a number, strtoul style: stop at
// the first non-digit. There is no overflow check, the values in the file are
// bounded by the kernel's own counter width.
func leadingUint(field []byte) uint64 {
	value := uint64(0)
	for _, c := range field {
		digit := c - '0'
		if digit >= 10 {
			break
		}
		value = (value << 3) + (value << 1) + uint64(digit)
	}
	return value
}

// Locate the next whitespace delimited field starting at pos, within buf[:end].
// Return the field offsets; start == end if there are no more fields.
func nextField(buf []byte, pos, end int) (int, int) {
	for ; pos < end && isWhitespaceNl[buf[pos]]; pos++ {
	}
	start := pos
	for ; pos < end && !isWhitespaceNl[buf[pos]]; pos++ {
	}
	return start, pos
}
