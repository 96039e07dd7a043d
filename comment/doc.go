// Package comment extracts human-written documentation for resources and
// actions from the application's source files.
//
// Action documentation is anchored: the controller file carries a comment
// line repeating the action label verbatim, and the comment lines directly
// below it are the action's prose.
//
//	// GET /widgets
//	// Lists widgets, newest first.
//	func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
//
// Resource documentation may be anchored the same way. When it is not, the
// comment block immediately above the model file's first type declaration is
// used instead.
//
// Both lookups run the same line scanner, a small state machine moving from
// searching for the anchor, to collecting comment lines, to done.
package comment
