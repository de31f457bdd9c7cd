package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mjl-/sconf"

	"github.com/mjl-/imf/mlog"
)

// DefaultAddressFields are the header fields parsed as address list when the
// config file does not list any.
var DefaultAddressFields = []string{"From", "Sender", "Reply-To", "To", "Cc", "Bcc", "Resent-From", "Resent-Sender", "Resent-To", "Resent-Cc", "Resent-Bcc"}

// Static is the parsed form of the imf.conf configuration file.
type Static struct {
	LogLevel         string            `sconf-doc:"NOTE: This config file is in 'sconf' format. Indent with tabs. Comments must be on their own line, they don't end a line. Do not escape or quote strings. Details: https://pkg.go.dev/github.com/mjl-/sconf.\n\n\nDefault log level, one of: error, warn, info, debug, trace."`
	PackageLogLevels map[string]string `sconf:"optional" sconf-doc:"Overrides of log level per package (e.g. message, smtp, dns, main)."`
	Pedantic         bool              `sconf:"optional" sconf-doc:"In pedantic mode, syntax that is seen in the wild but not valid, such as the obsolete forms of addresses, empty address list elements, message-ids with trailing text and header sections with bare newlines, result in errors instead of being accepted."`
	AddressFields    []string          `sconf:"optional" sconf-doc:"Header fields whose values are parsed as address list by the headers subcommand. Matched case-insensitively. Default: From, Sender, Reply-To, To, Cc, Bcc and their Resent- forms."`
}

// Config is the static configuration with values derived from it.
type Config struct {
	Static

	// Log levels per package, with the default level at the empty string.
	Log map[string]slog.Level
}

// IsAddressField returns whether key is a header field holding an address
// list.
func (c Config) IsAddressField(key string) bool {
	l := c.AddressFields
	if len(l) == 0 {
		l = DefaultAddressFields
	}
	for _, f := range l {
		if strings.EqualFold(f, key) {
			return true
		}
	}
	return false
}

// Load reads and parses the config file at p.
func Load(p string) (Config, []error) {
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) && os.Getenv("IMFCONF") == "" {
			return Config{}, []error{fmt.Errorf("open config file: %v (hint: use imf -config ... or set IMFCONF=...)", err)}
		}
		return Config{}, []error{fmt.Errorf("open config file: %v", err)}
	}
	defer f.Close()
	return Parse(p, f)
}

// Parse parses a config file from r, and checks the values. Name is used in
// error messages.
func Parse(name string, r io.Reader) (c Config, errs []error) {
	if err := sconf.Parse(r, &c.Static); err != nil {
		return Config{}, []error{fmt.Errorf("parsing %s%v", name, err)}
	}

	addErrorf := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if level, ok := mlog.Levels[c.LogLevel]; ok {
		c.Log = map[string]slog.Level{"": level}
	} else {
		addErrorf("invalid log level %q", c.LogLevel)
		c.Log = map[string]slog.Level{"": mlog.LevelError}
	}
	for pkg, s := range c.PackageLogLevels {
		if level, ok := mlog.Levels[s]; ok {
			c.Log[pkg] = level
		} else {
			addErrorf("invalid package log level %q for package %q", s, pkg)
		}
	}

	for _, f := range c.AddressFields {
		if f == "" || strings.ContainsAny(f, ": \t") {
			addErrorf("invalid header field name %q in AddressFields", f)
		}
	}
	return c, errs
}
