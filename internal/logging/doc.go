// Package logging builds slog loggers with faceoff's console and JSON
// handlers. The console handler emits compact "TIME LEVEL component: msg
// key=value" lines; the component attribute is promoted into the line prefix.
package logging
