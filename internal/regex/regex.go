package regex

import "regexp"

var (
	// Pull request URL patterns
	PullRequestURL       = regexp.MustCompile(`github\.com/([\w.-]+)/([\w.-]+)/pull/(\d+)`)
	PullRequestSubmitURL = regexp.MustCompile(`^https://github\.com/[\w.-]+/[\w.-]+/pull/\d+$`)

	// Title conventions
	ConventionalTitle = regexp.MustCompile(`(?i)^(feat|fix|docs|style|refactor|perf|test|chore|build|ci)(\(.+\))?:`)
)
