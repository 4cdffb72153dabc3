/*
Package ports defines the driven ports (interfaces) of the algotrace engine.

These interfaces decouple the core from external implementations, allowing
runs to be recorded in memory, on the local filesystem or in Redis.

# Key Interfaces

  - DescriptorStore: persists and loads RunDescriptors for session resume.
  - DistributedLocker: provides distributed locking for concurrent access to one run.
*/
package ports
