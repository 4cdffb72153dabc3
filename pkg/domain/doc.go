/*
Package domain contains the core domain models of the algotrace engine.

It defines the inputs algorithms run against, the frames and traces they
produce, the results and rankings built from those traces, and the playback
state consumed by renderers. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Input: The shared deterministic input (an integer array or a connected weighted graph).
  - Frame: One immutable snapshot of algorithm state (array, graph or matrix payload).
  - Trace: The complete ordered sequence of Frames for one algorithm run.
  - Result: The outcome of one algorithm execution (status, trace, stats, timing).
  - RankEntry: The place of a finished Result under a chosen Metric.
  - TrackState: The playback position of one trace.
  - RunDescriptor: The persisted record used to resume a run.
*/
package domain
