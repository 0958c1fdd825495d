package helpers

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Digits returns only the digit characters of s, in order.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NumericAmount strips everything but digits and the decimal point from a
// display price and parses the remainder. Thousands separators are dropped.
func NumericAmount(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FirstToken returns the first whitespace-separated token of s.
func FirstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// SrcsetURLs extracts the URL portion of each entry in an img srcset
// attribute. Entries are comma separated "url descriptor" pairs; the
// descriptor is discarded.
func SrcsetURLs(srcset string) []string {
	var urls []string
	for _, entry := range strings.Split(srcset, ",") {
		fields := strings.Fields(entry)
		if len(fields) >= 1 && fields[0] != "" {
			urls = append(urls, fields[0])
		}
	}
	return urls
}

// ContainsToken reports whether any whitespace-delimited token of s equals
// one of the keywords, case-insensitive. Token equality rather than
// substring containment: "air" must match "Air conditioning" but not
// "Airport shuttle".
func ContainsToken(s string, keywords []string) bool {
	for _, field := range strings.Fields(strings.ToLower(s)) {
		token := strings.Trim(field, ".,;:()!")
		for _, kw := range keywords {
			if token == kw {
				return true
			}
		}
	}
	return false
}

// SleepCtx sleeps for d unless the context is cancelled first. It reports
// whether the full duration elapsed.
func SleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
