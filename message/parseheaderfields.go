package message

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mjl-/imf/imfvar"
	"github.com/mjl-/imf/metrics"
	"github.com/mjl-/imf/rfc5322"
)

var ErrBadField = errors.New("invalid header field")

// Field is a header field. Key and Value point into the header buffer.
type Field struct {
	Key []byte

	// Everything after the colon, including leading white space and continuation
	// lines with their line endings, without the final line ending.
	Value []byte
}

// Unfolded returns the value with the line endings of folding removed, and
// without leading and trailing white space.
func (f Field) Unfolded() []byte {
	var r []byte
	v := f.Value
	for {
		i := bytes.IndexByte(v, '\n')
		if i < 0 {
			r = append(r, v...)
			break
		}
		j := i
		if j > 0 && v[j-1] == '\r' {
			j--
		}
		r = append(r, v[:j]...)
		v = v[i+1:]
	}
	return bytes.Trim(r, " \t")
}

// AddressList parses the value as address-list.
func (f Field) AddressList() ([]Address, error) {
	return ParseAddressList(string(f.Value))
}

// ParseHeaderFields parses the header section in header, e.g. as returned by
// ReadHeaders, and returns the fields with a key in fields, compared
// case-insensitively. If fields is nil, all fields are returned.
//
// Lines that are not a field are skipped, or an error wrapping ErrBadField in
// pedantic mode.
func ParseHeaderFields(header []byte, fields [][]byte) (rl []Field, rerr error) {
	defer func() {
		metrics.ParseObserve("headers", rerr)
	}()

	var l []Field
	var keep bool
	var valueStart int
	var line int
	for o := 0; o < len(header); {
		start := o
		if i := bytes.IndexByte(header[o:], '\n'); i < 0 {
			o = len(header)
		} else {
			o += i + 1
		}
		line++

		if rfc5322.IsWSP(header[start]) {
			// Continuation.
			if keep {
				l[len(l)-1].Value = header[valueStart:o]
			} else if line == 1 {
				if err := badLine(line, header[start:o]); err != nil {
					return nil, err
				}
			}
			continue
		}

		i := bytes.IndexByte(header[start:o], ':')
		if i <= 0 || !validKey(header[start:start+i]) {
			keep = false
			if isEOL(header[start:o]) {
				// Header separator, the end of the header section.
				break
			}
			if err := badLine(line, header[start:o]); err != nil {
				return nil, err
			}
			continue
		}
		key := header[start : start+i]
		keep = fields == nil
		for _, f := range fields {
			if bytes.EqualFold(key, f) {
				keep = true
				break
			}
		}
		if keep {
			valueStart = start + i + 1
			l = append(l, Field{key, header[valueStart:o]})
		}
	}
	for i := range l {
		l[i].Value = trimEOL(l[i].Value)
	}
	return l, nil
}

func badLine(line int, buf []byte) error {
	if imfvar.Pedantic {
		return fmt.Errorf("%w: line %d: %q", ErrBadField, line, buf)
	}
	xlog.Debug("skipping invalid header line", slog.Int("line", line))
	return nil
}

// validKey returns whether key consists of printable ASCII other than colon.
func validKey(key []byte) bool {
	for _, c := range key {
		if c <= ' ' || c >= 0x7f || c == ':' {
			return false
		}
	}
	return len(key) > 0
}

func isEOL(buf []byte) bool {
	return string(buf) == "\r\n" || string(buf) == "\n"
}

func trimEOL(buf []byte) []byte {
	buf = bytes.TrimSuffix(buf, []byte("\n"))
	return bytes.TrimSuffix(buf, []byte("\r"))
}
