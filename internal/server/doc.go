// Package server is the reference notepad backend.
//
// Routes:
//   - GET  /api/notes/{id}  note JSON, or an empty note when none is stored
//   - POST /api/notes/{id}  save {"content": ...}
//   - GET  /notepad/ws/{id} live channel accepting save frames
//   - GET  /health          status and live connection count
package server
