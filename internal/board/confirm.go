package board

import "context"

// Confirmer asks the acting user to confirm a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Confirmed is a Confirmer whose answer was collected up front, for front
// ends that ask before calling (an HTTP ?confirm=true, a TUI y/n prompt).
type Confirmed bool

func (c Confirmed) Confirm(context.Context, string) bool {
	return bool(c)
}

func confirmed(ctx context.Context, c Confirmer, prompt string) bool {
	return c != nil && c.Confirm(ctx, prompt)
}
