package agent

import "strings"

// Classify maps an event tag to a status. A tag containing any completion
// keyword is complete; everything else, including the empty tag, is active.
func Classify(eventTag string) Status {
	for _, kw := range completionKeywords {
		if strings.Contains(eventTag, kw) {
			return StatusComplete
		}
	}
	return StatusActive
}
