// internal/core/ports/interaction.go
package ports

import "context"

// Notifier shows success and error notices to the operator
type Notifier interface {
	Success(ctx context.Context, title, message string)
	Error(ctx context.Context, title, message string)
}

// Prompt describes a yes/no question
type Prompt struct {
	Title        string
	Text         string
	ConfirmLabel string
	CancelLabel  string
}

// Confirmer asks the operator to confirm a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, prompt Prompt) (bool, error)
}
