// Package server hosts the sea battle game and history services over gRPC.
package server
