package message

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReadHeaders(t *testing.T) {
	check := func(t *testing.T, msg, expHeader, expBody string, expErr error) {
		t.Helper()
		r := bufio.NewReader(strings.NewReader(msg))
		h, err := ReadHeaders(r)
		if expErr != nil {
			if !errors.Is(err, expErr) {
				t.Fatalf("message %q: got err %v, expected %v", msg, err, expErr)
			}
			return
		}
		tcheck(t, err, "read headers")
		tcompare(t, string(h), expHeader)
		body, err := io.ReadAll(r)
		tcheck(t, err, "read body")
		tcompare(t, string(body), expBody)
	}

	check(t, "Subject: a\r\n\r\nbody", "Subject: a\r\n", "body", nil)
	check(t, "Subject: a\r\n b\r\nTo: c\r\n\r\n", "Subject: a\r\n b\r\nTo: c\r\n", "", nil)
	check(t, "\r\nbody", "", "body", nil)
	check(t, "Subject: a\n\nbody\n", "Subject: a\n", "body\n", nil)
	check(t, "Subject: a\r\n", "", "", ErrHeaderSeparator)
	check(t, "Subject: a", "", "", ErrHeaderSeparator)
	check(t, "", "", "", ErrHeaderSeparator)

	t.Run("maxsize", func(t *testing.T) {
		prev := MaxHeaderSize
		MaxHeaderSize = 16
		t.Cleanup(func() { MaxHeaderSize = prev })
		check(t, "Subject: a\r\n\r\n", "Subject: a\r\n", "", nil)
		check(t, "Subject: a longer one\r\n\r\n", "", "", ErrHeaderTooLarge)
	})

	// The size limit is restored, a bare LF line is not a separator when pedantic.
	pedantic(t, true)
	check(t, "Subject: a\n\nbody\n", "", "", ErrHeaderSeparator)
	check(t, "Subject: a\n\r\nbody", "Subject: a\n", "body", nil)
}
