// Package domain defines the MCP tools that play sea battle through the game
// service.
//
// Every tool acts as the single player whose token the bridge was started
// with. Game failures such as a busy cell come back as tool errors carrying
// the failure code and the game's own message.
package domain
