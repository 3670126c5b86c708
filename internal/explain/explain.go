// Package explain renders computed results as user-facing replies.
package explain

import "context"

// FallbackReply is returned to chat users when a collaborator fails
const FallbackReply = "Sorry, I couldn't answer that right now. Please try again in a moment."

// Explainer turns a computed result into a reply for the question
type Explainer interface {
	Explain(ctx context.Context, question string, result any) (string, error)
}
