/*
Command imf parses the structured parts of Internet Message Format (RFC 5322)
messages: email addresses, localparts, domains, address lists, message-ids and
header sections.

  - Addresses are printed in canonical form, with unneeded quoting removed.
  - Obsolete syntax is accepted, unless running in pedantic mode.
  - Internationalized domain names are converted to IDNA.
  - Header fields can be printed unfolded, or with address lists and
    message-ids in canonical form.

# Commands

	imf [-config imf.conf] [-loglevel level] [-pedantic] [-logfmt] [-metrics] ...
	imf address address ...
	imf localpart localpart ...
	imf domain domain ...
	imf addresslist value ...
	imf messageid message-id ...
	imf unfold < message
	imf headers [field ...] < message
	imf config describe >imf.conf
	imf config test [imf.conf]
	imf help [command ...]
	imf version

# imf address

Parse email addresses, and print them in canonical form.

Each address must be an addr-spec, e.g. "user@example.org". Comments and folding
white space are allowed, and removed. The localpart is printed as dot-atom, or as
quoted-string if needed. For each address, a line with the canonical address,
the unquoted localpart and the ASCII domain is printed, separated by tabs.

Addresses with a domain-literal instead of a domain name, like
"user@[10.0.0.1]", are only accepted with -path.

	usage: imf address address ...
	  -path
	    	also accept addresses with a domain-literal
	  -utf8
	    	print internationalized domains with unicode instead of IDNA A-labels

# imf headers

Read a message from stdin, and print header fields in canonical form.

If no fields are specified, all fields are printed. Fields holding address
lists, as configured in the config file, are parsed and printed as
comma-separated mailboxes, folded where needed. Date fields are printed in
the standard format. Message-ID, In-Reply-To and References are printed with
canonical message-ids. Other fields are printed unfolded.

	usage: imf headers [field ...] < message

See "imf help" for the other commands.
*/
package main
