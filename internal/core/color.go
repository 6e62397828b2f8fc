package core

// Color is a semantic foreground color for a screen cell.
// The platform layer maps each value to a terminal style.
type Color uint8

const (
	ColorDefault Color = iota
	ColorLane          // lane separators and background grid
	ColorLaneActive    // highlight of the player's lane
	ColorPlayer
	ColorPlayerHit // player while invincible
	ColorObstacle
	ColorHUD
	ColorTitle
	ColorHit // full-screen hit flash tint
	ColorDebug
	ColorHitbox
)
