package main

import (
	"bytes"
	"strings"
)

func shellQuoteCmd(args ...string) string {
	cmd := &bytes.Buffer{}
	for _, arg := range args {
		if cmd.Len() > 0 {
			cmd.WriteByte(' ')
		}
		cmd.WriteString(shellQuote(arg))
	}
	return cmd.String()
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}

	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}

// dquoteEscape escapes s so it stays literal inside a double quoted string
func dquoteEscape(s string) string {
	if !strings.ContainsAny(s, "\\\"$`") {
		return s
	}
	b := &strings.Builder{}
	for _, c := range s {
		switch c {
		case '\\', '"', '$', '`':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
