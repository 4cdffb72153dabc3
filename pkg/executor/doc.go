/*
Package executor runs a selection of algorithms against one shared input.

Each algorithm runs inside its own fail-soft boundary: a generator error, a
panic, an unknown id or a cancelled context all produce a Result with
status "error" and a one-frame trace echoing the input, while the remaining
algorithms keep running. Results are returned in selection order.
*/
package executor
