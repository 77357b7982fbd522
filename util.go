package main

import (
	"bytes"
)

// readLines splits data in lines, dropping blank ones
func readLines(data []byte) []string {
	var res []string
	for _, l := range bytes.Split(data, []byte{'\n'}) {
		l = bytes.TrimSpace(l)
		if len(l) == 0 {
			continue
		}
		res = append(res, string(l))
	}
	return res
}

func isHelp(arg string) bool {
	switch arg {
	case "h", "help":
		return true
	}
	return false
}
