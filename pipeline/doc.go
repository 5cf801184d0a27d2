// Package pipeline batch-processes collected save files into structured
// output: one economic snapshot per save, assembled into JSON time series
// and CSV summaries.
//
// Save files are independent, so parsing fans out over a worker pool.
// Progress is written periodically and an interrupted run can resume,
// skipping dates already present in the partial file.
package pipeline
