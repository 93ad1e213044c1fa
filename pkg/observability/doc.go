/*
Package observability provides lifecycle hooks for monitoring a simulation.

It includes Prometheus metrics, a trace recorder that keeps every step's
branch lineage for later rendering, structured logging hooks, and Chain for
combining several hook sets into one.
*/
package observability
