// Package httpapi exposes a library.Service over HTTP with gin. All routes live under /api/v1;
// /metrics serves the Prometheus registry and /healthz answers liveness probes.
package httpapi
