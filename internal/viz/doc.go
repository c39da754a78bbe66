// Package viz renders the simulation in a terminal.
//
// Particles are projected through an orbiting [Camera] onto a braille
// [Canvas], two by four dots per cell, each cell tinted with the blended
// color of the particles landing in it. The box, its axes and the gravity
// sources are drawn on top.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to the starting scene
//	Tab   - Cycle tunable parameters
//	↑/↓   - Adjust the selected parameter
//	+/-   - Zoom (mouse wheel too)
//	WASD  - Look around (mouse motion too)
//	F     - Follow the comet
//	M     - Switch between static and emitted particles
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
