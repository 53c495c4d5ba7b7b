// Package transfer moves finance records in and out as CSV text.
//
// Exports write a fixed header followed by one row per record; string cells
// are quoted with inner quotes doubled and money is written with two
// decimals. Imports are best-effort: each data row is submitted on its own,
// a bad row is counted and reported without stopping the run, and nothing
// already created is rolled back.
package transfer
