// Package commit defines the raw and parsed commit models and the
// conventional-commit message parser. Parsing is a pure function of the
// message text: no I/O, no author-based filtering, identical input always
// yields identical output.
package commit

import (
	"strings"
	"time"
)

// Record is one historical commit's raw attributes as supplied by a
// version-control log reader. Records are immutable; identity is the hash.
type Record struct {
	Hash    string
	Author  string
	Date    time.Time
	Message string
}

// ShortHash returns the abbreviated commit hash (first 7 characters).
func (r Record) ShortHash() string {
	if len(r.Hash) <= 7 {
		return r.Hash
	}
	return r.Hash[:7]
}

// Header is the structured first line of a conventional commit message:
// type ["(" scope ")"] ["!"] ":" " " description.
type Header struct {
	Type        string
	Scope       string
	Breaking    bool
	Description string
}

// Parsed pairs a successfully parsed header with its originating record.
// The Body holds everything after the first line, verbatim. A Parsed value
// is created from exactly one Record and never mutated afterward.
type Parsed struct {
	Header
	Body string
	Raw  Record
}

// Parse extracts a conventional-commit header from a commit message.
// Only the first line of a multi-line message is parsed for structure.
// The second return is false when the message does not match the grammar:
// no colon after the type token, no space after the colon, or a type
// containing characters outside [a-z0-9-]. Unparsable messages are not
// errors; callers drop them.
func Parse(message string) (Header, bool) {
	line, _, _ := strings.Cut(message, "\n")

	head, description, ok := strings.Cut(line, ":")
	if !ok || !strings.HasPrefix(description, " ") {
		return Header{}, false
	}

	var h Header
	h.Description = strings.TrimLeft(description, " ")

	if strings.HasSuffix(head, "!") {
		h.Breaking = true
		head = strings.TrimSuffix(head, "!")
	}

	if open := strings.IndexByte(head, '('); open >= 0 {
		if !strings.HasSuffix(head, ")") {
			return Header{}, false
		}
		h.Scope = head[open+1 : len(head)-1]
		head = head[:open]
	}

	if !validType(head) {
		return Header{}, false
	}
	h.Type = head

	return h, true
}

// ParseRecord parses a record's message. The returned Parsed retains the
// record and the extended body (lines after the first, verbatim).
func ParseRecord(r Record) (Parsed, bool) {
	h, ok := Parse(r.Message)
	if !ok {
		return Parsed{}, false
	}

	body := ""
	if _, rest, found := strings.Cut(r.Message, "\n"); found {
		body = rest
	}

	return Parsed{Header: h, Body: body, Raw: r}, true
}

// validType reports whether tok is a non-empty lowercase alphanumeric
// token, dashes allowed.
func validType(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}
