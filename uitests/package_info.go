// Package uitests contains the JsonTools UI scenarios themselves and their supporting API.
//
// Each scenario opens Notepad++, sends it a scripted workflow, reads back what the editor
// shows, checks it against a literal expected value, and then empties and closes whatever
// it opened. Harness infrastructure that is not specific to Notepad++, such as test
// contexts, phases and operator prompts, is in the lower-level framework package; the
// keystrokes themselves are in the automation package.
package uitests
