/*
Package observability provides tools for monitoring trace generation.

Metrics exposes prometheus counters and histograms fed by the executor's
lifecycle hooks, LogHooks mirrors the same events to a structured logger,
and ChainHooks fans a single event out to several hook sets.
*/
package observability
