package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// RobotsSource fetches a site's robots.txt. The production implementation
// lives in internal/fetcher; tests inject httptest-backed fakes.
type RobotsSource interface {
	// FetchRobots GETs {origin}/robots.txt and returns the HTTP status and
	// body. A non-nil error means the file could not be retrieved at all
	// (DNS failure, timeout, connection refused).
	FetchRobots(ctx context.Context, origin string) (status int, body string, err error)
}

// watchedAgents are the AI crawler user-agent tokens checked for explicit
// Disallow rules.
var watchedAgents = []string{"GPTBot", "CCBot", "Google-Extended"}

// agentDisallowRes matches a watched agent's User-agent declaration followed
// anywhere later in the file by a "Disallow: /" directive. This is a
// deliberately loose scan rather than a per-agent rule table: it can match
// across stanza boundaries, and downstream consumers depend on exactly this
// behavior.
var agentDisallowRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(watchedAgents))
	for _, agent := range watchedAgents {
		res[agent] = regexp.MustCompile(`(?is)User-agent:\s*` + regexp.QuoteMeta(agent) + `.*?Disallow:\s*/`)
	}
	return res
}()

// TTFB thresholds in milliseconds.
const (
	ttfbFastMs = 800
	ttfbSlowMs = 2000
)

// AccessibilityChecks evaluates crawlability: robots.txt permissions for AI
// bots and, when measured, time to first byte. responseTimeMs <= 0 means the
// response time was not measured and the TTFB check is not emitted.
func AccessibilityChecks(ctx context.Context, robots RobotsSource, origin string, responseTimeMs int) []Check {
	checks := []Check{robotsCheck(ctx, robots, origin)}

	if responseTimeMs > 0 {
		checks = append(checks, ttfbCheck(responseTimeMs))
	}

	return checks
}

func robotsCheck(ctx context.Context, robots RobotsSource, origin string) Check {
	const (
		id    = "robots-txt"
		label = "Robots.txt Permissions"
	)

	status, body, err := robots.FetchRobots(ctx, origin)
	if err != nil {
		// Unreachable robots.txt degrades to a warning, never aborts the run.
		return warn(id, label, "Could not fetch robots.txt.", "")
	}

	if status < 200 || status >= 300 {
		// No robots.txt means unrestricted access.
		return pass(id, label, "No robots.txt found (assumed open).")
	}

	var blocked []string
	for _, agent := range watchedAgents {
		if agentDisallowRes[agent].MatchString(body) {
			blocked = append(blocked, agent)
		}
	}

	if len(blocked) > 0 {
		return fail(id, label,
			fmt.Sprintf("Blocked AI bots found: %s", strings.Join(blocked, ", ")),
			"Remove 'Disallow' rules for GPTBot, CCBot, and Google-Extended in robots.txt.")
	}

	return pass(id, label, "AI bots are allowed.")
}

func ttfbCheck(ms int) Check {
	const (
		id    = "ttfb"
		label = "Time to First Byte"
	)

	switch {
	case ms < ttfbFastMs:
		return pass(id, label, fmt.Sprintf("Fast response: %dms", ms))
	case ms < ttfbSlowMs:
		return warn(id, label,
			fmt.Sprintf("Moderate response: %dms", ms),
			"Optimize server response time or use caching.")
	default:
		return fail(id, label,
			fmt.Sprintf("Slow response: %dms", ms),
			"Reduce server load or implement a CDN.")
	}
}
