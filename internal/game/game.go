package game

import (
	"fmt"
	"time"
)

// Version of the game.
// Bumping this number will eventually make clients reload the WASM.
//
// If you set this to an empty string, a random version number will be
// used, and force the reload of the WASM on every restart (the reload
// still only happens after the first page is loaded, so there is a delay).
// This is useful during development.
var Version = "v0.1.0"

// FormatElapsed formats a game duration as "mm:ss". Hours are dropped.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", (seconds/60)%60, seconds%60)
}
