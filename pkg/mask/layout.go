package mask

import "strings"

// Layout describes a digit mask as consecutive group lengths and the
// separators placed between them. Separators[i] is written before
// Groups[i+1], and only once that group holds at least one digit. Prefix is
// written ahead of the first group as soon as the input overflows it.
type Layout struct {
	Groups     []int
	Separators []string
	Prefix     string
}

// MaxDigits reports how many digits the layout accepts.
func (l Layout) MaxDigits() int {
	total := 0
	for _, size := range l.Groups {
		total += size
	}
	return total
}

// Apply formats a digit stream with the layout. Digits beyond MaxDigits are
// dropped. The input is expected to be digits only; use Digits first.
func (l Layout) Apply(digits string) string {
	if digits == "" || len(l.Groups) == 0 {
		return ""
	}
	if limit := l.MaxDigits(); len(digits) > limit {
		digits = digits[:limit]
	}

	var b strings.Builder
	b.Grow(len(digits) + len(l.Prefix) + l.separatorWidth())

	if l.Prefix != "" && len(digits) > l.Groups[0] {
		b.WriteString(l.Prefix)
	}

	pos := 0
	for idx, size := range l.Groups {
		if pos >= len(digits) {
			break
		}
		if idx > 0 && idx-1 < len(l.Separators) {
			b.WriteString(l.Separators[idx-1])
		}
		end := pos + size
		if end > len(digits) {
			end = len(digits)
		}
		b.WriteString(digits[pos:end])
		pos = end
	}
	return b.String()
}

func (l Layout) separatorWidth() int {
	width := 0
	for _, sep := range l.Separators {
		width += len(sep)
	}
	return width
}

// Digits returns the digit stream of s: every ASCII decimal digit, in order.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// alphanumeric keeps ASCII letters and digits, upper-casing letters.
func alphanumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'A' && c <= 'Z':
			b.WriteByte(c)
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - 'a' + 'A')
		}
	}
	return b.String()
}
