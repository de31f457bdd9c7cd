package main

import (
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// writeMetrics writes the imf metrics of the default registry to w, in the
// prometheus text format. The Go runtime and process metrics are left out.
func writeMetrics(w io.Writer) error {
	return writeGathered(w, prometheus.DefaultGatherer)
}

func writeGathered(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range mfs {
		if !strings.HasPrefix(mf.GetName(), "imf_") {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
