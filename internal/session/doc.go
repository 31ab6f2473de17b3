// Package session is the console's state machine. It binds authentication
// against the credential store to the feature menu and owns the per-session
// state, so no feature can run for an unauthenticated user.
//
// Phases:
//
//	Unauthenticated -> MenuIdle            (register or login succeeded)
//	MenuIdle        -> InDialogue          ("1", back after the exit sentinel)
//	MenuIdle        -> InMinigame          ("2", back after classification)
//	MenuIdle        -> InReports           ("3", back after append or list)
//	MenuIdle        -> Unauthenticated     ("4", session state cleared)
//	MenuIdle        -> Terminated          ("5" and confirmation)
//
// Controller.Run drives the loop until Terminated or end of input.
package session
