package message

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMessageIDCanonical(t *testing.T) {
	check := func(s string, expID string, expRaw bool, expErr error) {
		t.Helper()

		id, raw, err := MessageIDCanonical(s)
		if id != expID || raw != expRaw || (expErr == nil) != (err == nil) || err != nil && !errors.Is(err, expErr) {
			t.Fatalf("got message-id %q, raw %v, err %v, expected %q %v %v, for message-id %q", id, raw, err, expID, expRaw, expErr, s)
		}
	}

	check("bogus", "", false, errBadMessageID)
	check("<bogus@host", "", false, errBadMessageID)
	check("bogus@host>", "", false, errBadMessageID)
	check("<>", "", false, errBadMessageID)
	check("<user@domain>", "user@domain", false, nil)
	check(" <USER@DOMAIN> ", "user@domain", false, nil)
	check("(comment) <user@domain>", "user@domain", false, nil)
	check(`<"user"@domain>`, "user@domain", false, nil)
	check(`<"a b"@domain>`, `"a b"@domain`, false, nil)
	check("<user@[10.0.0.1]>", "user@[10.0.0.1]", true, nil)
	check("<user@domain> (added by postmaster@isp.example)", "user@domain", false, nil)
	check("<user@domain> other", "user@domain", false, nil)
	check("<user@domain>other", "", false, errBadMessageID)
	check("<User@Domain@Time>", "user@domain@time", true, nil)
	check("<User>", "user", true, nil)

	pedantic(t, true)
	check("<user@domain> other", "", false, errBadMessageID)
	check("<user@domain> (comment)", "user@domain", false, nil)
}

// counterSum returns the sum of the counters of metric name that have label
// with value, or of all its counters if label is empty.
func counterSum(t *testing.T, name, label, value string) float64 {
	t.Helper()
	mfs, err := prometheus.DefaultGatherer.Gather()
	tcheck(t, err, "gather metrics")
	var sum float64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			match := label == ""
			for _, l := range m.GetLabel() {
				if l.GetName() == label && l.GetValue() == value {
					match = true
				}
			}
			if match {
				sum += m.GetCounter().GetValue()
			}
		}
	}
	return sum
}

func TestMessageIDMetrics(t *testing.T) {
	addresses := counterSum(t, "imf_parse_total", "production", "address")
	obsolete := counterSum(t, "imf_obsolete_syntax_total", "", "")
	ids := counterSum(t, "imf_parse_total", "production", "messageid")

	for _, s := range []string{"<user@domain>", `<"a"."b"@domain>`, "<user@[10.0.0.1]>", "<raw>"} {
		_, _, err := MessageIDCanonical(s)
		tcheck(t, err, "message-id")
	}
	l, err := ReferencedIDs([]string{"<a@x> <b@y>"}, nil)
	tcheck(t, err, "referenced ids")
	tcompare(t, l, []string{"a@x", "b@y"})

	tcompare(t, counterSum(t, "imf_parse_total", "production", "address"), addresses)
	tcompare(t, counterSum(t, "imf_obsolete_syntax_total", "", ""), obsolete)
	tcompare(t, counterSum(t, "imf_parse_total", "production", "messageid"), ids+4)

	// Addresses in address fields are still counted.
	_, err = ParseAddressList(`"a"."b"@domain`)
	tcheck(t, err, "address list")
	tcompare(t, counterSum(t, "imf_obsolete_syntax_total", "", ""), obsolete+1)
}
