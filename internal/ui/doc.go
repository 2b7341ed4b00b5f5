// Package ui contains the Bubble Tea program behind the search popup: a single
// screen with a text field and a submit control that forwards the text to a
// named capability.
//
// Modes:
//   - The mode is fixed in NewModel from the capability reference. An absent
//     reference selects ModeUnavailable, which only renders a diagnostic and
//     accepts quit keys. A present reference selects ModeReady.
//
// Message flow:
//   - Key presses go through handleKeyMsg. While the alert is open it owns the
//     keyboard; otherwise Tab moves focus, Enter (or Space on the button)
//     submits, and everything else edits the text field.
//   - Submissions are validated by form.Controller. Blank input opens the
//     alert; anything else is handed to the command bus, which runs the
//     capability call off the event loop and answers with a
//     command.CommandResult.
//   - Non-key messages are routed through a typed handler registry, the same
//     way for query results, command results and window resizes.
//
// Validation failures are shown to the user;
// capability failures are only logged.
package ui
