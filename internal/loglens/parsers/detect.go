package parsers

import (
	"regexp"
	"strings"
)

// Format identifies a recognized access-log format.
type Format string

const (
	FormatApache  Format = "apache" // Apache/Nginx combined
	FormatJSON    Format = "json"   // one JSON object per line
	FormatW3C     Format = "w3c"    // W3C extended (#Fields: directives)
	FormatSyslog  Format = "syslog"
	FormatIIS     Format = "iis" // W3C column convention, detected separately
	FormatUnknown Format = "unknown"
)

// detectSampleLines is how many non-blank lines detection examines.
// Detection stays O(1) relative to file size.
const detectSampleLines = 5

// syslogHeaderRe matches the classic syslog prefix: three-letter month,
// day, HH:MM:SS.
var syslogHeaderRe = regexp.MustCompile(`^[A-Z][a-z]{2} +\d{1,2} \d{2}:\d{2}:\d{2} `)

// iisDateRe matches a line beginning with "YYYY-MM-DD HH:MM:SS".
var iisDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)

// DetectFormat classifies a short prefix of the input into one of the known
// formats. Decision order matters since the patterns overlap; first match
// wins. Never fails; worst case returns FormatUnknown.
func DetectFormat(sample string) Format {
	lines := sampleLines(sample, detectSampleLines)
	if len(lines) == 0 {
		return FormatUnknown
	}
	joined := strings.Join(lines, "\n")

	// JSON lines: object per line.
	if strings.HasPrefix(strings.TrimSpace(joined), "{") || strings.Contains(joined, `{"`) {
		return FormatJSON
	}

	// W3C extended: directive header present.
	if strings.Contains(joined, "#Fields:") || strings.Contains(joined, "#Software:") {
		return FormatW3C
	}

	// Apache/Nginx combined.
	if apacheLineRe.MatchString(lines[0]) {
		return FormatApache
	}

	// Syslog header.
	if syslogHeaderRe.MatchString(lines[0]) {
		return FormatSyslog
	}

	// IIS without directives: W3SVC marker or leading ISO date-time.
	if strings.Contains(joined, "W3SVC") {
		return FormatIIS
	}
	for _, l := range lines {
		if iisDateRe.MatchString(l) {
			return FormatIIS
		}
	}

	return FormatUnknown
}

// sampleLines returns up to n non-blank lines from text.
func sampleLines(text string, n int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
		if len(out) == n {
			break
		}
	}
	return out
}
