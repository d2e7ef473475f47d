package merge

import "time"

// Formats tried in order when parsing pubDate values. ISO-8601 variants
// first, then the formats older harvesters produced.
var pubDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParsePubDate parses a pubDate value on a best-effort basis. Values no
// format recognizes, including the empty string, map to the zero time so
// they sort as older than any real timestamp.
func ParsePubDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, format := range pubDateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
