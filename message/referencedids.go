package message

import (
	"log/slog"
	"strings"
)

// ReferencedIDs returns the Message-IDs referenced from the References header(s),
// with a fallback to the In-Reply-To header(s). The ids are canonicalized for
// thread-matching, like with MessageIDCanonical. Empty message-id's are skipped.
func ReferencedIDs(references []string, inReplyTo []string) ([]string, error) {
	var refids []string

	// References is the modern way to reference ancestors. The direct parent is
	// typically at the end of the list.
	for _, refs := range references {
		refids = append(refids, parseIDs(refs, false)...)
	}
	// In-Reply-To only if there are no References.
	if len(refids) == 0 {
		for _, s := range inReplyTo {
			if l := parseIDs(s, true); len(l) > 0 {
				refids = append(refids, l[0])
				break
			}
		}
	}
	return refids, nil
}

// parseIDs returns the message-ids in s. Anything between ids is skipped. An
// id that is interrupted by a "<" is ignored. If one is set, parsing stops
// after the first id.
func parseIDs(s string, one bool) []string {
	var l []string
	for s != "" {
		i := strings.IndexByte(s, '<')
		if i < 0 {
			break
		}
		s = s[i+1:]
		i = strings.IndexAny(s, "<>")
		if i < 0 {
			xlog.Debug("skipping truncated message-id", slog.String("value", s))
			break
		}
		if s[i] == '<' {
			xlog.Debug("skipping truncated message-id", slog.String("value", s[:i]))
			s = s[i:]
			continue
		}
		// Some MUAs wrap References lines in the middle of message-id's, and others
		// recombine them. Take out white space in message-id's.
		id := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
				return -1
			}
			return r
		}, s[:i])
		s = s[i+1:]
		if id == "" {
			continue
		}
		id, _ = canonicalID(id)
		l = append(l, id)
		if one {
			break
		}
	}
	return l
}
