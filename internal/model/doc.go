// Package model defines shared data types used across notepad-sync.
//
// All types mirror the JSON wire format spoken between the sync client and
// the notepad backend (REST under /api, WebSocket under /notepad/ws).
//
// Conventions:
//   - Document IDs: opaque strings (the note's filename without ".txt")
//   - Timestamps: ISO 8601 strings, passed through as received
//   - Message kinds: the "type" field of every WebSocket frame
package model
