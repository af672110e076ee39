// Package domain translates MCP tool calls into game session operations.
//
// Each tool has a typed input/result pair, a schema definition, and a
// handler bound to the live session. Handlers follow the session's error
// policy: read-style tools always answer with text, while play_action and
// load_state surface hard engine failures as tool errors because the
// session state would otherwise be undefined.
package domain
