// Package status implements the Status Store component.
//
// The Status Store:
//   - Holds the open document's id, content, and loading flag
//   - Tracks the tri-state save status (saved, saving, error)
//   - Stamps the last-saved time whenever the status becomes saved
//   - Notifies subscribers with a snapshot after every mutation
package status
