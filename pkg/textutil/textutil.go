// Package textutil provides byte-level text utilities: BOM stripping,
// binary detection, and line splitting that preserves terminators.
package textutil

import (
	"bytes"
)

// BinarySniffLength is the maximum number of bytes scanned for null-byte
// detection. Matches the heuristic used by Git and most editors.
const BinarySniffLength = 8000

// utf8BOM is the UTF-8 byte-order marker.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// IsBinary returns true if data contains a null byte within the first
// BinarySniffLength bytes. Empty data is not binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sniff := data
	if len(sniff) > BinarySniffLength {
		sniff = sniff[:BinarySniffLength]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}

// StripBOM removes a leading UTF-8 byte-order marker from data, if present.
// The returned slice aliases data.
func StripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// SplitLines splits data into lines, each retaining its trailing "\n"
// (and "\r\n" where present). A non-empty buffer without a trailing
// newline yields a final line with no terminator. Returns nil for empty
// data.
func SplitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}

	var lines []string

	for len(data) > 0 {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			lines = append(lines, string(data))

			break
		}

		lines = append(lines, string(data[:idx+1]))
		data = data[idx+1:]
	}

	return lines
}

// CountLines returns the number of newline-delimited lines in data.
// A non-empty buffer without a trailing newline counts the last partial line.
// Returns 0 for empty data.
func CountLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	lines := bytes.Count(data, []byte{'\n'})

	if data[len(data)-1] != '\n' {
		lines++
	}

	return lines
}
