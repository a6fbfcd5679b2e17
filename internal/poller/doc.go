// Package poller implements the Poll Transport component.
//
// The Poller:
//   - Runs only while the live channel is unavailable
//   - Re-fetches the open note over REST every 5 seconds
//   - Overwrites the Status Store content when the fetched text differs
//   - Logs fetch failures and waits for the next tick
package poller
