// Package timeouts defines shared timeout constants for the game service and
// its clients.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the game service.
const GRPCDial = 2 * time.Second

// GRPCRequest caps a single client call to the game service.
const GRPCRequest = 5 * time.Second

// Shutdown limits how long the gRPC server drains in-flight calls.
const Shutdown = 5 * time.Second
