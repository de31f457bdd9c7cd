package message

import (
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"github.com/araddon/dateparse"

	"github.com/mjl-/imf/imfvar"
	"github.com/mjl-/imf/metrics"
)

var ErrBadDate = errors.New("invalid date")

// DateLayout is the layout of date-time in header fields like Date, without
// obsolete forms.
const DateLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

// ParseDate parses the value of a Date or Resent-Date header field. Dates that
// are not valid date-time, such as those with a named time zone other than the
// obsolete forms or in a format of another standard, are parsed leniently,
// except in pedantic mode.
func ParseDate(s string) (rt time.Time, rerr error) {
	defer func() {
		metrics.ParseObserve("date", rerr)
	}()

	t, err := mail.ParseDate(s)
	if err == nil {
		return t, nil
	}
	if imfvar.Pedantic {
		return time.Time{}, fmt.Errorf("%w: %v", ErrBadDate, err)
	}
	t, lerr := dateparse.ParseAny(s)
	if lerr != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrBadDate, err)
	}
	xlog.Debug("accepting invalid date", slog.String("value", s))
	return t, nil
}
