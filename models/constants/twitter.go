package constants

import "strings"

const (
	ExternalName = "cashtag-mentions"
	Version      = "1.0.0"

	ScanModeMulti  = "multi"
	ScanModeSingle = "single"
)

// ParseHandles splits a comma-separated list of handles, dropping blanks and
// any leading '@'.
func ParseHandles(raw string) []string {
	handles := make([]string, 0)
	for _, handle := range strings.Split(raw, ",") {
		handle = NormalizeHandle(handle)
		if handle != "" {
			handles = append(handles, handle)
		}
	}

	return handles
}

func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}
