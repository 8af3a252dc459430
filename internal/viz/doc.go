// Package viz provides terminal rendering for bifurcation diagrams.
//
//   - [Canvas]: braille grid with 2x4 dots per cell
//   - [Plot] and [Preview]: scatter a point cloud onto a canvas
//   - lipgloss styles shared by the CLI and the explorer
//
// A 100x25 preview resolves 200x100 dots, enough to make out the
// period-doubling cascade of the logistic map.
package viz
