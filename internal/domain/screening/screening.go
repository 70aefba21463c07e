// Package screening flags free-text problems that ask for harmful help.
//
// Matching is a plain case-insensitive substring test, so words that merely contain a
// blocked term ("robotics", "skill") are flagged too.
package screening

import "strings"

// RefusalMessage is returned to the caller instead of advice for flagged input.
const RefusalMessage = "I cannot assist with harmful, violent, or illegal actions."

// Blocklist holds the terms that mark a problem as suspicious.
var Blocklist = []string{
	"rob", "steal", "attack", "bomb", "kill", "hurt",
	"terror", "hack", "fraud", "bribe",
}

// IsSuspicious reports whether text contains any blocklisted term.
func IsSuspicious(text string) bool {
	_, ok := Match(text)
	return ok
}

// Match returns the first blocklisted term found in text.
func Match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, word := range Blocklist {
		if strings.Contains(lower, word) {
			return word, true
		}
	}
	return "", false
}
