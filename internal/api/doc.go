// Package api provides the REST client for the notepad backend.
//
// Endpoints (relative to the configured base URL, default "/api"):
//   - GET  /notes/{id}  fetch a note (empty note when it does not exist yet)
//   - POST /notes/{id}  persist content, body {"content": "..."}
//
// Reads retry on 5xx/429 with jittered exponential backoff. Saves never retry;
// the caller surfaces failure through the save status instead.
package api
