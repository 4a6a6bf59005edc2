// Package monitor holds the diagnostics surface of the localization
// library: the swappable package logger the other packages report
// through, a particle-cloud PNG plotter for visual inspection of runs,
// and a sqlite-backed recorder for per-cycle filter metrics.
//
// Nothing here sits on a filter hot path; the plotter and recorder are
// meant to be wired in by the driving application when a run needs to
// be inspected after the fact.
package monitor
