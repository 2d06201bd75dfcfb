// Package pipeline drives one preprocessing run end to end: validate the
// input file, load it, split it, fit on the training rows, transform the
// held-out rows and export everything to the output directory.
//
// Each stage runs inside a telemetry span and is recorded in the run
// manifest written next to the outputs.
package pipeline
