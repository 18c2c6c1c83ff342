// Package fluor computes ΔF/F0 time series from per-frame mean intensities
// exported by imaging software (e.g., ImageJ "Measure" results) and writes
// them out as a table and a line plot.
//
// Each input file holds rows of "frame,mean" with two rows per frame: the
// region of interest over the cell first, then a same-sized background
// region. The first few background-subtracted values define the baseline F0,
// and every later value is reported as a percentage change from F0.
package fluor
