/*
Package session implements run recording and persistence orchestration.

The Manager serializes access to each run descriptor with reference-counted
local locks, optionally backed by a distributed lock, so that several
goroutines or processes can record, update and resume runs in one store.
*/
package session
