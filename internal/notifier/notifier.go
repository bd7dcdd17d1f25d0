// Package notifier defines a high-level interface for telling players about
// allocation events. This decouples the rest of the application from the
// specific notification provider (e.g., Slack).
package notifier

// Notifier delivers best-effort notifications. Failures are reported but
// never abort the operation that triggered them.
type Notifier interface {
	// SendNewMatches tells the given players they now hold a seat in a
	// newly generated or rebalanced match.
	SendNewMatches(userPublicIDs []string, dryRun bool) error
}
