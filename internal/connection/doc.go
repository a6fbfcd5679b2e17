// Package connection implements the Connection Manager component.
//
// The Connection Manager:
//   - Maintains at most one WebSocket channel, for the open document
//   - Reconnects with linear backoff (0s, 1s, 2s, ...) up to 5 attempts
//   - Degrades to REST polling plus HTTP saves once reconnects are exhausted
//   - Translates save acknowledgements into the Status Store's save status
//
// Every callback (read loop, close, reconnect timer) carries the session it
// was started for and does nothing once that session has been superseded or
// disconnected.
package connection
