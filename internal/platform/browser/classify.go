package browser

import "strings"

// positiveTokens are confirmation phrasings observed on listing platforms
// after a submission lands, including moderation-queue wordings. The set is
// deliberately best-effort: platforms reword these pages without notice.
var positiveTokens = []string{
	"thank you",
	"thanks for submitting",
	"confirmation",
	"has been received",
	"has been submitted",
	"successfully submitted",
	"submission received",
	"pending review",
	"under review",
	"awaiting approval",
}

// ManualReviewMessage is reported when the post-submit page is inconclusive.
const ManualReviewMessage = "may need manual review"

// Classify decides a submission outcome from the post-submit URL and page
// text alone. Pure, so it can be tested against literal captured strings.
//
// Success is declared when the browser moved off the "new" form URL, or the
// page text contains a positive token. Anything else is an ambiguous
// outcome, reported as a non-success rather than an error: the action may
// have silently succeeded behind a moderation queue, and a crash here is
// worse than an ambiguous report.
func Classify(formURL, finalURL, pageText string) (bool, string) {
	if !sameLocation(formURL, finalURL) {
		return true, "accepted (left submission form)"
	}
	lower := strings.ToLower(pageText)
	for _, tok := range positiveTokens {
		if strings.Contains(lower, tok) {
			return true, "accepted (confirmation text present)"
		}
	}
	return false, ManualReviewMessage
}

func sameLocation(a, b string) bool {
	trim := func(s string) string {
		s = strings.TrimSuffix(s, "/")
		if i := strings.IndexAny(s, "?#"); i >= 0 {
			s = s[:i]
		}
		return s
	}
	return trim(a) == trim(b)
}
