package repl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"termcalc.io/termcalc/object"
)

const (
	// DefaultPrecision is the number of fractional digits emitted when
	// rendering in a non decimal base.
	DefaultPrecision = 10

	radixDigits = "0123456789abcdef"
)

// Formatter renders evaluation results, either the plain decimal form or a
// binary/octal/hexadecimal rendition with a fixed number of fractional digits.
type Formatter struct {
	Base      int // 10, 2, 8 or 16.
	Precision int // Fractional digits for non decimal bases, 0 means DefaultPrecision.
}

func NewFormatter(base string, precision int) (*Formatter, error) {
	f := &Formatter{Precision: precision}
	if base == "" {
		base = "dec"
	}
	if err := f.SetBase(base); err != nil {
		return nil, err
	}
	return f, nil
}

// SetBase switches the output base by name.
func (f *Formatter) SetBase(name string) error {
	switch name {
	case "dec":
		f.Base = 10
	case "bin":
		f.Base = 2
	case "oct":
		f.Base = 8
	case "hex":
		f.Base = 16
	default:
		return fmt.Errorf("unknown format %q (dec, bin, oct or hex)", name)
	}
	return nil
}

// Name returns the current base name, the inverse of SetBase.
func (f *Formatter) Name() string {
	switch f.Base {
	case 2:
		return "bin"
	case 8:
		return "oct"
	case 16:
		return "hex"
	default:
		return "dec"
	}
}

func (f *Formatter) Format(o object.Object) string {
	n, ok := o.(object.Number)
	if !ok {
		return o.Inspect()
	}
	if f.Base == 10 || f.Base == 0 {
		return n.Inspect()
	}
	if n.Kind != object.COMPLEX {
		return f.radix(n.Real())
	}
	res := f.radix(n.Real())
	im := n.Imag()
	if im >= 0 || math.IsNaN(im) {
		res += "+"
	}
	return res + f.radix(im) + "i"
}

// radix renders v in the formatter's base, integer part first, then the
// fractional digits obtained by repeated multiplication. NaN and infinities
// keep their decimal spelling, as does anything whose integer part does not
// fit an uint64.
func (f *Formatter) radix(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	buf := strings.Builder{}
	if math.Signbit(v) {
		buf.WriteByte('-')
		v = -v
	}
	ip, err := safecast.Convert[uint64](math.Trunc(v))
	if err != nil {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	switch f.Base {
	case 2:
		buf.WriteString("0b")
	case 8:
		buf.WriteString("0o")
	case 16:
		buf.WriteString("0x")
	}
	buf.WriteString(strconv.FormatUint(ip, f.Base))
	frac := v - math.Trunc(v)
	prec := f.Precision
	if prec <= 0 {
		prec = DefaultPrecision
	}
	first := true
	for range prec {
		if frac == 0 {
			break
		}
		if first {
			buf.WriteByte('.')
			first = false
		}
		frac *= float64(f.Base)
		d := int(frac)
		buf.WriteByte(radixDigits[d])
		frac -= float64(d)
	}
	return buf.String()
}
