// Package viz is the terminal surface of tradenet.
//
// [Model] is a Bubble Tea program that hosts an interact.Session on a braille
// canvas. Frame ticks carry the session epoch, so ticks scheduled for a graph
// that has since been replaced are dropped and end their chain.
//
// # Key Bindings
//
//	n/p    - Next/previous result
//	+/-    - Zoom in/out (mouse wheel too)
//	arrows - Pan
//	0      - Reset zoom and pan
//	c      - Re-center and settle again
//	l      - Toggle node labels
//	t      - Cycle color themes
//	?      - Toggle help
//	q      - Quit
//
// Moving the mouse over a node or edge shows its tooltip in the sidebar.
package viz
