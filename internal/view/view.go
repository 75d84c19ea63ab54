// Package view holds the templ components for the home page and the
// Datastar fragments streamed by the coach chat.
package view

// Element IDs shared between the page and the SSE patches.
const (
	ChatLogID  = "coach-log"
	TypingID   = "coach-typing"
	ChatFormID = "coach-form"
)
