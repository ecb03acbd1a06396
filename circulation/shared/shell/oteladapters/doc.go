// Package oteladapters implements the logging, metrics and tracing interfaces of the event store
// and the handlers on top of OpenTelemetry.
package oteladapters
