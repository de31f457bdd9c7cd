package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/mjl-/sconf"

	"github.com/mjl-/imf/config"
	"github.com/mjl-/imf/dns"
	"github.com/mjl-/imf/imfvar"
	"github.com/mjl-/imf/message"
	"github.com/mjl-/imf/mlog"
	"github.com/mjl-/imf/smtp"
)

var commands = []struct {
	cmd string
	fn  func(c *cmd)
}{
	{"address", cmdAddress},
	{"localpart", cmdLocalpart},
	{"domain", cmdDomain},
	{"addresslist", cmdAddresslist},
	{"messageid", cmdMessageID},
	{"unfold", cmdUnfold},
	{"headers", cmdHeaders},
	{"config describe", cmdConfigDescribe},
	{"config test", cmdConfigTest},
	{"help", cmdHelp},
	{"version", cmdVersion},

	// Not listed.
	{"helpall", cmdHelpall},
}

var cmds []cmd

func init() {
	for _, xc := range commands {
		c := cmd{words: strings.Split(xc.cmd, " "), fn: xc.fn}
		cmds = append(cmds, c)
	}
}

type cmd struct {
	words []string
	fn    func(c *cmd)

	// Set before calling command.
	flag     *flag.FlagSet
	flagArgs []string
	_gather  bool // Set when using Parse to gather usage for a command.

	// Set by invoked command or Parse.
	unlisted bool   // If set, command is not listed until at least some words are matched from command.
	params   string // Arguments to command. Multiple lines possible.
	help     string // Additional explanation. First line is synopsis, the rest is only printed for an explicit help/usage for that command.
	args     []string

	log mlog.Log
}

func (c *cmd) Parse() []string {
	// To gather params and usage information, we just run the command but cause this
	// panic after the command has registered its flags and set its params and help
	// information. This is then caught and that info printed.
	if c._gather {
		panic("gather")
	}

	c.flag.Usage = c.Usage
	c.flag.Parse(c.flagArgs)
	c.args = c.flag.Args()
	return c.args
}

func (c *cmd) gather() {
	c.flag = flag.NewFlagSet("imf "+strings.Join(c.words, " "), flag.ExitOnError)
	c._gather = true
	defer func() {
		x := recover()
		// panic generated by Parse.
		if x != "gather" {
			panic(x)
		}
	}()
	c.fn(c)
}

func (c *cmd) makeUsage() string {
	var r strings.Builder
	cs := "imf " + strings.Join(c.words, " ")
	for i, line := range strings.Split(strings.TrimSpace(c.params), "\n") {
		s := ""
		if i == 0 {
			s = "usage:"
		}
		if line != "" {
			line = " " + line
		}
		fmt.Fprintf(&r, "%6s %s%s\n", s, cs, line)
	}
	c.flag.SetOutput(&r)
	c.flag.PrintDefaults()
	return r.String()
}

func (c *cmd) printUsage() {
	fmt.Fprint(os.Stderr, c.makeUsage())
	if c.help != "" {
		fmt.Fprint(os.Stderr, "\n"+c.help+"\n")
	}
}

func (c *cmd) Usage() {
	c.printUsage()
	os.Exit(2)
}

func cmdHelp(c *cmd) {
	c.params = "[command ...]"
	c.help = `Prints help about matching commands.

If multiple commands match, they are listed along with the first line of their help text.
If a single command matches, its usage and full help text is printed.
`
	args := c.Parse()
	if len(args) == 0 {
		c.Usage()
	}

	prefix := func(l, pre []string) bool {
		if len(pre) > len(l) {
			return false
		}
		return slices.Equal(pre, l[:len(pre)])
	}

	var partial []cmd
	for _, c := range cmds {
		if slices.Equal(c.words, args) {
			c.gather()
			fmt.Print(c.makeUsage())
			if c.help != "" {
				fmt.Print("\n" + c.help + "\n")
			}
			return
		} else if prefix(c.words, args) {
			partial = append(partial, c)
		}
	}
	if len(partial) == 0 {
		fmt.Fprintf(os.Stderr, "%s: unknown command\n", strings.Join(args, " "))
		os.Exit(2)
	}
	for _, c := range partial {
		c.gather()
		line := "imf " + strings.Join(c.words, " ")
		fmt.Printf("%s\n", line)
		if c.help != "" {
			fmt.Printf("\t%s\n", strings.Split(c.help, "\n")[0])
		}
	}
}

func cmdHelpall(c *cmd) {
	c.unlisted = true
	c.help = `Print all detailed usage and help information for all listed commands.

Used to generate documentation.
`
	args := c.Parse()
	if len(args) != 0 {
		c.Usage()
	}

	n := 0
	for _, c := range cmds {
		c.gather()
		if c.unlisted {
			continue
		}
		if n > 0 {
			fmt.Fprintf(os.Stderr, "\n")
		}
		n++

		fmt.Fprintf(os.Stderr, "# imf %s\n\n", strings.Join(c.words, " "))
		if c.help != "" {
			fmt.Fprintln(os.Stderr, c.help+"\n")
		}
		s := c.makeUsage()
		s = "\t" + strings.ReplaceAll(s, "\n", "\n\t")
		fmt.Fprintln(os.Stderr, s)
	}
}

func usage(l []cmd, unlisted bool) {
	var lines []string
	if !unlisted {
		lines = append(lines, "imf [-config imf.conf] [-loglevel level] [-pedantic] [-logfmt] [-metrics] ...")
	}
	for _, c := range l {
		c.gather()
		if c.unlisted && !unlisted {
			continue
		}
		for _, line := range strings.Split(c.params, "\n") {
			x := append([]string{"imf"}, c.words...)
			if line != "" {
				x = append(x, line)
			}
			lines = append(lines, strings.Join(x, " "))
		}
	}
	for i, line := range lines {
		pre := "       "
		if i == 0 {
			pre = "usage: "
		}
		fmt.Fprintln(os.Stderr, pre+line)
	}
	os.Exit(2)
}

var (
	configPath string
	loglevel   string // Empty means the config file level, or error.
	pedantic   bool
	conf       config.Config
)

// failed is set by commands that report errors for some of their arguments but
// continue with the others. The exit status is 1 if set.
var failed bool

// loadConfig reads the config file, if any, and applies it, with flags from the
// command line taking precedence.
func loadConfig() {
	conf.Log = map[string]slog.Level{"": mlog.LevelError}
	if configPath != "" {
		c, errs := config.Load(configPath)
		if len(errs) > 1 {
			log.Printf("multiple errors:")
			for _, err := range errs {
				log.Printf("%s", err)
			}
			os.Exit(1)
		} else if len(errs) == 1 {
			log.Fatalf("%s", errs[0])
		}
		conf = c
	}
	if loglevel != "" {
		level, ok := mlog.Levels[loglevel]
		if !ok {
			log.Fatalf("unknown loglevel %q", loglevel)
		}
		conf.Log[""] = level
	}
	mlog.SetConfig(conf.Log)
	imfvar.Pedantic = pedantic || conf.Pedantic
}

func main() {
	log.SetFlags(0)

	var metricsOut bool
	flag.StringVar(&configPath, "config", os.Getenv("IMFCONF"), "configuration file, defaults to $IMFCONF; no config file is read if empty")
	flag.StringVar(&loglevel, "loglevel", "", "if non-empty, overrides the default log level from the config file")
	flag.BoolVar(&pedantic, "pedantic", false, "syntax violations that are common in the wild result in errors instead of being accepted")
	flag.BoolVar(&mlog.Logfmt, "logfmt", false, "write log lines in logfmt instead of for humans")
	flag.BoolVar(&metricsOut, "metrics", false, "write parse metrics to stderr after the command, in prometheus text format")

	flag.Usage = func() { usage(cmds, false) }
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage(cmds, false)
	}

	loadConfig()

	var partial []cmd
next:
	for _, c := range cmds {
		for i, w := range c.words {
			if i >= len(args) || w != args[i] {
				if i > 0 {
					partial = append(partial, c)
				}
				continue next
			}
		}
		c.flag = flag.NewFlagSet("imf "+strings.Join(c.words, " "), flag.ExitOnError)
		c.flagArgs = args[len(c.words):]
		c.log = mlog.New(strings.Join(c.words, ""), nil)
		c.fn(&c)
		if metricsOut {
			err := writeMetrics(os.Stderr)
			xcheckf(err, "writing metrics")
		}
		if failed {
			os.Exit(1)
		}
		return
	}
	if len(partial) > 0 {
		usage(partial, true)
	}
	usage(cmds, false)
}

func xcheckf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	log.Fatalf("%s: %s", msg, err)
}

// xfail logs err for the value s, and continues with the next value.
func xfail(c *cmd, err error, what, s string) {
	c.log.Debugx("parse failed", err, slog.String("value", s))
	log.Printf("parsing %s %q: %s", what, s, err)
	failed = true
}

func cmdAddress(c *cmd) {
	c.params = "address ..."
	c.help = `Parse email addresses, and print them in canonical form.

Each address must be an addr-spec, e.g. "user@example.org". Comments and folding
white space are allowed, and removed. The localpart is printed as dot-atom, or as
quoted-string if needed. For each address, a line with the canonical address,
the unquoted localpart and the ASCII domain is printed, separated by tabs.

Addresses with a domain-literal instead of a domain name, like
"user@[10.0.0.1]", are only accepted with -path.
`
	var path, utf8 bool
	c.flag.BoolVar(&path, "path", false, "also accept addresses with a domain-literal")
	c.flag.BoolVar(&utf8, "utf8", false, "print internationalized domains with unicode instead of IDNA A-labels")
	args := c.Parse()
	if len(args) == 0 {
		c.Usage()
	}

	for _, s := range args {
		if path {
			p, err := smtp.ParsePath(s)
			if err != nil {
				xfail(c, err, "address", s)
				continue
			}
			fmt.Printf("%s\t%s\t%s\n", p.XString(utf8), string(p.Localpart), p.IPDomain.XString(false))
			continue
		}
		a, err := smtp.ParseAddress(s)
		if err != nil {
			xfail(c, err, "address", s)
			continue
		}
		fmt.Printf("%s\t%s\t%s\n", a.Pack(utf8), string(a.Localpart), a.Domain.ASCII)
	}
}

func cmdLocalpart(c *cmd) {
	c.params = "localpart ..."
	c.help = `Parse localparts of email addresses, and print them in canonical form.

The localpart is printed as dot-atom, or as quoted-string if needed.
`
	args := c.Parse()
	if len(args) == 0 {
		c.Usage()
	}

	for _, s := range args {
		lp, err := smtp.ParseLocalpart(s)
		if err != nil {
			xfail(c, err, "localpart", s)
			continue
		}
		fmt.Println(lp.String())
	}
}

func cmdDomain(c *cmd) {
	c.params = "domain ..."
	c.help = `Parse domain names, and print the ASCII and unicode forms.

Internationalized domain names are printed with IDNA A-labels for the ASCII form.
For ASCII-only names, the unicode form is empty.
`
	args := c.Parse()
	if len(args) == 0 {
		c.Usage()
	}

	for _, s := range args {
		d, err := dns.ParseDomain(s)
		if err != nil {
			xfail(c, err, "domain", s)
			continue
		}
		fmt.Printf("%s\t%s\n", d.ASCII, d.Unicode)
	}
}

func cmdAddresslist(c *cmd) {
	c.params = "value ..."
	c.help = `Parse address lists, e.g. values of From, To or Cc header fields.

Each value is a comma-separated list of mailboxes and groups. For each mailbox,
the display name and the address are printed, separated by a tab. The mailboxes
of groups are included, the group names are not.
`
	args := c.Parse()
	if len(args) == 0 {
		c.Usage()
	}

	for _, s := range args {
		l, err := message.ParseAddressList(s)
		if err != nil {
			xfail(c, err, "address list", s)
			continue
		}
		for _, a := range l {
			fmt.Printf("%s\t%s@%s\n", a.Name, a.User, a.Host)
		}
	}
}

func cmdMessageID(c *cmd) {
	c.params = "message-id ..."
	c.help = `Parse message-ids, and print them in the canonical form used for matching.

The canonical form is lower case, without angle brackets and without unneeded
quoting. Message-ids that are not in the form of an address are printed in
lower case, followed by a tab and "raw".
`
	args := c.Parse()
	if len(args) == 0 {
		c.Usage()
	}

	for _, s := range args {
		id, raw, err := message.MessageIDCanonical(s)
		if err != nil {
			xfail(c, err, "message-id", s)
			continue
		}
		if raw {
			fmt.Printf("%s\traw\n", id)
		} else {
			fmt.Println(id)
		}
	}
}

func cmdUnfold(c *cmd) {
	c.params = "< message"
	c.help = `Read a message from stdin, and print its header fields unfolded.

Each header field is printed on a single line, with the line endings of folded
lines removed, and without leading and trailing white space in the value.
`
	args := c.Parse()
	if len(args) != 0 {
		c.Usage()
	}

	header, err := message.ReadHeaders(bufio.NewReader(os.Stdin))
	xcheckf(err, "reading header section")
	fields, err := message.ParseHeaderFields(header, nil)
	xcheckf(err, "parsing header fields")
	for _, f := range fields {
		fmt.Printf("%s: %s\n", f.Key, f.Unfolded())
	}
}

func cmdHeaders(c *cmd) {
	c.params = "[field ...] < message"
	c.help = `Read a message from stdin, and print header fields in canonical form.

If no fields are specified, all fields are printed. Fields holding address
lists, as configured in the config file, are parsed and printed as
comma-separated mailboxes, folded where needed. Date fields are printed in
the standard format. Message-ID, In-Reply-To and References are printed with
canonical message-ids. Other fields are printed unfolded.
`
	args := c.Parse()

	header, err := message.ReadHeaders(bufio.NewReader(os.Stdin))
	xcheckf(err, "reading header section")
	var fields [][]byte
	for _, s := range args {
		fields = append(fields, []byte(s))
	}
	err = writeHeaders(os.Stdout, c.log, conf, header, fields)
	xcheckf(err, "writing header fields")
}

// writeHeaders writes the requested header fields of header to w, with
// address lists and message-ids in canonical form. Values that do not parse
// are logged and written unfolded.
func writeHeaders(w io.Writer, log mlog.Log, conf config.Config, header []byte, fields [][]byte) error {
	l, err := message.ParseHeaderFields(header, fields)
	if err != nil {
		return err
	}
	for _, f := range l {
		key := string(f.Key)
		var s string
		switch {
		case conf.IsAddressField(key):
			addrs, err := f.AddressList()
			if err != nil {
				log.Infox("bad address list in header field, writing unfolded", err, slog.String("field", key))
				break
			}
			s = message.FormatAddressList(key, addrs)
		case strings.EqualFold(key, "Date"), strings.EqualFold(key, "Resent-Date"):
			t, err := message.ParseDate(string(f.Value))
			if err != nil {
				log.Infox("bad date in header field, writing unfolded", err, slog.String("field", key))
				break
			}
			s = key + ": " + t.Format(message.DateLayout) + "\r\n"
		case strings.EqualFold(key, "Message-ID"):
			id, _, err := message.MessageIDCanonical(string(f.Value))
			if err != nil {
				log.Infox("bad message-id in header field, writing unfolded", err, slog.String("field", key))
				break
			}
			s = key + ": <" + id + ">\r\n"
		case strings.EqualFold(key, "References"), strings.EqualFold(key, "In-Reply-To"):
			ids, err := message.ReferencedIDs([]string{string(f.Value)}, nil)
			if err != nil || len(ids) == 0 {
				break
			}
			var hw message.HeaderWriter
			hw.Add("", key+":")
			for _, id := range ids {
				hw.Add(" ", "<"+id+">")
			}
			s = hw.String()
		}
		if s == "" {
			s = key + ": " + string(f.Unfolded()) + "\r\n"
		}
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func cmdConfigDescribe(c *cmd) {
	c.params = ">imf.conf"
	c.help = `Prints an annotated empty configuration for use as imf.conf.

This configuration file needs modifications to make it valid. For example, it
may contain unfinished list items.
`
	if len(c.Parse()) != 0 {
		c.Usage()
	}

	var sc config.Static
	err := sconf.Describe(os.Stdout, &sc)
	xcheckf(err, "describing config")
}

func cmdConfigTest(c *cmd) {
	c.params = "[imf.conf]"
	c.help = `Parses and validates the configuration file.

The file is the -config flag, or the parameter. If valid, the command exits with
status 0. If not valid, all errors encountered are printed.
`
	args := c.Parse()
	if len(args) > 1 {
		c.Usage()
	}
	p := configPath
	if len(args) == 1 {
		p = args[0]
	}
	if p == "" {
		log.Fatalf("no config file, specify one with -config, $IMFCONF or as parameter")
	}

	_, errs := config.Load(p)
	if len(errs) > 1 {
		log.Printf("multiple errors:")
		for _, err := range errs {
			log.Printf("%s", err)
		}
		os.Exit(1)
	} else if len(errs) == 1 {
		log.Fatalf("%s", errs[0])
	}
	fmt.Println("config OK")
}

func cmdVersion(c *cmd) {
	c.help = "Prints this imf version."
	if len(c.Parse()) != 0 {
		c.Usage()
	}
	fmt.Println(imfvar.Version)
	fmt.Printf("%s/%s\n", runtime.GOOS, runtime.GOARCH)
}
