// internal/handlers/ws_codes.go
package handlers

// Custom WebSocket close codes used by the room handler. These give clients
// a more specific reason for closure than the standard codes.
const (
	BadSubprotocolError  = 3000 // client connected with an unsupported subprotocol
	InvalidRoomCodeError = 3001 // room code in the WS URL was malformed
	AuthFailedError      = 3002 // guest session could not be established
)
