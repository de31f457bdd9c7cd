package message

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/mjl-/imf/imfvar"
)

var (
	ErrHeaderSeparator = errors.New("no header separator found")
	ErrHeaderTooLarge  = errors.New("header section too large")
)

// MaxHeaderSize is the maximum size of a header section read by ReadHeaders.
var MaxHeaderSize = 1024 * 1024

// ReadHeaders reads the header section of a message, up to and including the
// empty line that separates it from the body. The returned header section ends
// with the line ending of its last field, not with the empty line. A bare LF
// line ending is accepted, except in pedantic mode.
func ReadHeaders(msg *bufio.Reader) ([]byte, error) {
	var buf []byte
	for {
		line, err := msg.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if string(line) == "\r\n" || string(line) == "\n" && !imfvar.Pedantic {
			return buf, nil
		}
		buf = append(buf, line...)
		if len(buf) > MaxHeaderSize {
			return nil, fmt.Errorf("%w: more than %d bytes", ErrHeaderTooLarge, MaxHeaderSize)
		}
		if err == io.EOF {
			return nil, ErrHeaderSeparator
		}
	}
}
