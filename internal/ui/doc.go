// Package ui renders command lifecycle events as concise console messages.
//
// Detailed telemetry keeps flowing through the structured executor logger;
// this package only adds the human-readable progress lines shown when the
// console log format is selected.
package ui
