/*
Package config holds the configuration file definition.

The imf command optionally reads a configuration file, imf.conf. Its location
is set with the -config flag, or the IMFCONF environment variable. Flags on the
command line override values from the file.

Below is an "empty" config file, as written by "imf config describe" from the
config file definition in the source code, along with comments explaining the fields. Fields named "x"
are placeholders for user-chosen map keys.

# sconf

The config file is in "sconf" format. Properties of sconf files:

  - Indentation with tabs only.
  - "#" as first non-whitespace character makes the line a comment. Lines with a
    value cannot also have a comment.
  - Values don't have syntax indicating their type. For example, strings are
    not quoted/escaped and can never span multiple lines.
  - Fields that are optional can be left out completely. But the value of an
    optional field may itself have required fields.

See https://pkg.go.dev/github.com/mjl-/sconf for details.

# imf.conf

	# NOTE: This config file is in 'sconf' format. Indent with tabs. Comments must be
	# on their own line, they don't end a line. Do not escape or quote strings.
	# Details: https://pkg.go.dev/github.com/mjl-/sconf.


	# Default log level, one of: error, warn, info, debug, trace.
	LogLevel:

	# Overrides of log level per package (e.g. message, smtp, dns, main). (optional)
	PackageLogLevels:
		x:

	# In pedantic mode, syntax that is seen in the wild but not valid, such as the
	# obsolete forms of addresses, empty address list elements, message-ids with
	# trailing text and header sections with bare newlines, result in errors instead
	# of being accepted. (optional)
	Pedantic: false

	# Header fields whose values are parsed as address list by the headers
	# subcommand. Matched case-insensitively. Default: From, Sender, Reply-To, To, Cc,
	# Bcc and their Resent- forms. (optional)
	AddressFields:
		-
*/
package config
