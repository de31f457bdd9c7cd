// Package metrics has prometheus metric variables/functions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mjl-/imf/rfc5322"
)

var (
	metricParse = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imf_parse_total",
			Help: "Parses of header field values, by production and result.",
		},
		[]string{
			"production", // address, localpart, mailbox, addresslist, headers, messageid, date
			"result",     // ok, eof, token, io, error
		},
	)
	metricObsolete = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imf_obsolete_syntax_total",
			Help: "Addresses that only parsed with obsolete syntax, by whether they were rejected in pedantic mode.",
		},
		[]string{
			"rejected", // true, false
		},
	)
)

// ParseResult returns the result label for a parse error.
func ParseResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case rfc5322.IsEOF(err):
		return "eof"
	case rfc5322.IsToken(err):
		return "token"
	case rfc5322.IsIO(err):
		return "io"
	}
	return "error"
}

// ParseObserve counts a parse of production with its outcome.
func ParseObserve(production string, err error) {
	metricParse.WithLabelValues(production, ParseResult(err)).Inc()
}

// ObsoleteInc counts an address with obsolete syntax.
func ObsoleteInc(rejected bool) {
	v := "false"
	if rejected {
		v = "true"
	}
	metricObsolete.WithLabelValues(v).Inc()
}
