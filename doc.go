// Package stockchart charts market indices against macroeconomic events.
//
// Close price series are fetched by a [Provider] and rebased to a common 100
// baseline with [Rebase]. Events read by [DecodeEvents] are selected with an
// [EventFilter] on country, category and overlap with the chart range, then
// collapsed by [Reduce] into a [Timeline] with one marker per day, the event
// midpoint. [Analyze] puts it all together for the chart and renderer
// packages.
//
// The package is the foundation of the `stockchart` command-line tool.
package stockchart
