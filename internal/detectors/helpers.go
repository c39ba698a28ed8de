package detectors

import (
	"bufio"
	"bytes"
	"strings"
)

// IgnoreDirective on a line suppresses every finding on that line.
const IgnoreDirective = "credscan:ignore"

var crlf = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// decodeText turns raw file bytes into text. Invalid UTF-8 sequences are
// dropped and all newline conventions are normalised to '\n'.
func decodeText(data []byte) string {
	s := string(bytes.ToValidUTF8(data, nil))
	return crlf.Replace(s)
}

// eachLine calls fn for every line of text with its 1-based number.
func eachLine(text string, fn func(n int, line string)) {
	sc := bufio.NewScanner(strings.NewReader(text))
	// one buffer big enough for the whole input so long lines never fail
	max := len(text) + 1
	if max < bufio.MaxScanTokenSize {
		max = bufio.MaxScanTokenSize
	}
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), max)
	n := 0
	for sc.Scan() {
		n++
		fn(n, sc.Text())
	}
}

// Lines splits file content the same way ScanData does, so Lines(data)[n-1]
// is the text of a finding reported at line n.
func Lines(data []byte) []string {
	var out []string
	eachLine(decodeText(data), func(_ int, line string) {
		out = append(out, line)
	})
	return out
}

func ignoredLine(line string) bool {
	return strings.Contains(line, IgnoreDirective)
}
