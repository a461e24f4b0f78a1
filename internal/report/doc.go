// Package report assembles cross-domain views from individual metric
// fetches: a single-day health snapshot, a seven-day aggregate report, and a
// date-range export bundle. Sections degrade independently so one failing
// endpoint never hides the rest of the data.
package report
