// Package rlaunch is the checked-in codec for the rlaunch protocol, generated
// from rlaunch.msg.
package rlaunch

//go:generate go run ../../../cmd/msgc generate --config msgc.toml
