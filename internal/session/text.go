package session

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	authPrompt    = "Register or log in: [R/L] "
	menuPrompt    = "1 - Talk to Volt\n2 - Test your reflexes\n3 - Report an issue\n4 - Switch account\n5 - Exit\nOption: "
	reportsPrompt = "    1 - Report a new issue\n    2 - View reported issues\n    Option: "
	chatPrompt    = "You: (type 'q' to leave) "
	confirmPrompt = "Confirm exit: [Y/N] "

	msgInvalidOption = "Invalid option!"
	msgUsernameTaken = "Username already taken!"
	msgUserNotFound  = "Username not found."
	msgWrongPassword = "Incorrect password."
	msgRegistered    = "Registration successful!"
	msgReported      = "Issue reported successfully!"
	msgNoReports     = "No issues reported yet."
)

// banner frames title between two rows of symbol, twice as wide as the title.
func banner(title, symbol string) string {
	width := utf8.RuneCountInString(title) * 2
	pad := (width - utf8.RuneCountInString(title)) / 2
	rule := strings.Repeat(symbol, width)
	return rule + "\n" + strings.Repeat(" ", pad) + title + "\n" + rule
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
