/*
Package observability turns carousel generation events into logs and metrics.

Both LogHooks and Metrics.Hooks return domain.GenerationHooks; combine them with
GenerationHooks.Merge and pass the result to the orchestrator.
*/
package observability
