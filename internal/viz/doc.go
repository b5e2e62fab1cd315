// Package viz is the live terminal view of a double pendulum, built on
// Bubble Tea.
//
// The pendulum and its fading trail are drawn on a braille [Canvas], two
// dots wide and four dots tall per cell. A side panel shows time, energy,
// relative energy drift, flip count and an energy sparkline.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - New random start
//	T     - Cycle color themes
//	Tab   - Select g, m or l
//	Up/K  - Increase the selected constant by 5%
//	Down/J- Decrease the selected constant by 5%
//	G     - Start/stop GIF recording
//	Q     - Quit
package viz
