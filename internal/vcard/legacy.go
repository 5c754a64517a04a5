package vcard

import (
	"bufio"
	"fmt"
	"io"
	"mime/quotedprintable"
	"strings"
)

// legacyEncodings are the vCard 2.1 encodings that may appear as bare
// parameters, e.g. NOTE;QUOTED-PRINTABLE:...
var legacyEncodings = map[string]bool{
	"QUOTED-PRINTABLE": true,
	"BASE64":           true,
	"8BIT":             true,
	"7BIT":             true,
}

// normalize turns raw vCard text into unfolded lines the decoder accepts.
// Quoted-printable values are decoded with their soft line breaks joined,
// bare 2.1 parameters such as TEL;CELL become TYPE=CELL, and blank lines,
// lines outside a card and lines without a colon are dropped.
func normalize(r io.Reader) (string, error) {
	lines, err := unfold(r)
	if err != nil {
		return "", err
	}

	var (
		out    strings.Builder
		inCard bool
	)
	for i, line := range lines {
		colon := indexUnquoted(line, ':')
		if colon < 0 {
			continue
		}
		head, value := parseHead(line[:colon]), line[colon+1:]
		isCard := strings.EqualFold(strings.TrimSpace(value), "VCARD")
		switch {
		case head.property() == "BEGIN" && isCard:
			if inCard {
				return "", fmt.Errorf("line %d: BEGIN:VCARD inside a card: %w", i+1, ErrUnterminatedCard)
			}
			inCard = true
			out.WriteString("BEGIN:VCARD\r\n")
			continue
		case head.property() == "END" && isCard:
			if !inCard {
				return "", fmt.Errorf("line %d: END:VCARD without BEGIN", i+1)
			}
			inCard = false
			out.WriteString("END:VCARD\r\n")
			continue
		case !inCard:
			continue
		case head.quotedPrintable():
			value = decodeQuotedPrintable(value)
			head.dropParams("ENCODING", "CHARSET")
		}
		out.WriteString(head.String())
		out.WriteByte(':')
		out.WriteString(value)
		out.WriteString("\r\n")
	}
	if inCard {
		return "", ErrUnterminatedCard
	}
	return out.String(), nil
}

// unfold joins continuation lines (leading space or tab) and
// quoted-printable soft line breaks onto the previous line.
func unfold(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if n := len(lines); n > 0 {
			prev := lines[n-1]
			switch {
			case softBreak(prev):
				lines[n-1] = prev[:len(prev)-1] + line
				continue
			case len(line) > 0 && (line[0] == ' ' || line[0] == '\t'):
				lines[n-1] = prev + line[1:]
				continue
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vcard: %w", err)
	}
	return lines, nil
}

// softBreak reports whether line is a quoted-printable property whose value
// continues on the next raw line.
func softBreak(line string) bool {
	if !strings.HasSuffix(line, "=") {
		return false
	}
	colon := indexUnquoted(line, ':')
	return colon >= 0 && parseHead(line[:colon]).quotedPrintable()
}

type propertyHead struct {
	name   string // upper case, group prefix kept
	params []string
}

func parseHead(s string) propertyHead {
	parts := strings.Split(s, ";")
	h := propertyHead{name: strings.ToUpper(strings.TrimSpace(parts[0]))}
	for _, param := range parts[1:] {
		param = strings.TrimSpace(param)
		if param == "" {
			continue
		}
		key, val, found := strings.Cut(param, "=")
		if !found {
			key, val = "TYPE", param
			if legacyEncodings[strings.ToUpper(param)] {
				key = "ENCODING"
			}
		}
		h.params = append(h.params, strings.ToUpper(strings.TrimSpace(key))+"="+val)
	}
	return h
}

// property returns the name without its group prefix.
func (h propertyHead) property() string {
	if dot := strings.LastIndexByte(h.name, '.'); dot >= 0 {
		return h.name[dot+1:]
	}
	return h.name
}

func (h propertyHead) quotedPrintable() bool {
	for _, p := range h.params {
		if strings.EqualFold(p, "ENCODING=QUOTED-PRINTABLE") {
			return true
		}
	}
	return false
}

func (h *propertyHead) dropParams(keys ...string) {
	kept := h.params[:0]
	for _, p := range h.params {
		key, _, _ := strings.Cut(p, "=")
		drop := false
		for _, k := range keys {
			if key == k {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, p)
		}
	}
	h.params = kept
}

func (h propertyHead) String() string {
	if len(h.params) == 0 {
		return h.name
	}
	return h.name + ";" + strings.Join(h.params, ";")
}

// decodeQuotedPrintable returns the decoded value with line breaks escaped
// as \n. Undecodable input is kept as is.
func decodeQuotedPrintable(value string) string {
	raw, err := io.ReadAll(quotedprintable.NewReader(strings.NewReader(value)))
	if err != nil {
		return value
	}
	decoded := strings.ReplaceAll(string(raw), "\r\n", "\n")
	return strings.ReplaceAll(decoded, "\n", `\n`)
}

func indexUnquoted(s string, sep byte) int {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case sep:
			if !quoted {
				return i
			}
		}
	}
	return -1
}
