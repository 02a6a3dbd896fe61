package state

import "strings"

// FooterText returns the footer content: a status line above the key help
// when there is something to report and no load is running.
func FooterText(loading bool, status, helpText string) string {
	status = strings.TrimSpace(status)
	if loading || status == "" {
		return helpText
	}
	if helpText == "" {
		return status
	}
	return status + "\n" + helpText
}
