package tracker

import "fmt"

// Confirmer approves destructive operations. Confirm is called synchronously
// and must return whether the user agreed.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

var (
	// AlwaysConfirm approves everything.
	AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })
	// NeverConfirm refuses everything.
	NeverConfirm Confirmer = ConfirmFunc(func(string) bool { return false })
)

// Prompts shown for destructive operations.
const (
	PromptReset = "Are you sure you want to reset all today's data?"
	PromptClear = "Are you sure you want to delete ALL history? This cannot be undone."
)

// DeletePrompt is the prompt for deleting the entry for date.
func DeletePrompt(date string) string {
	return fmt.Sprintf("Delete log for %s?", date)
}
