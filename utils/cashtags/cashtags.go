package cashtags

import (
	"regexp"
	"sort"
	"strings"
)

// One to five letters, optionally followed by a class suffix such as BRK.B or RDS-A.
var cashtagRe = regexp.MustCompile(`\$([A-Za-z]{1,5}(?:[.\-][A-Za-z0-9]{1,3})?)\b`)

// Extract returns the distinct uppercase ticker symbols referenced in text.
func Extract(text string) map[string]struct{} {
	tags := make(map[string]struct{})
	if text == "" {
		return tags
	}

	for _, match := range cashtagRe.FindAllStringSubmatch(text, -1) {
		tags[strings.ToUpper(match[1])] = struct{}{}
	}

	return tags
}

// List is Extract with a sorted result.
func List(text string) []string {
	tags := Extract(text)
	result := make([]string, 0, len(tags))
	for tag := range tags {
		result = append(result, tag)
	}
	sort.Strings(result)

	return result
}
