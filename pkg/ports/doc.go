/*
Package ports defines the driven ports (interfaces) for folium.

These interfaces decouple the editor core and the session layer from
external implementations, allowing documents to live in various storage
backends and to be coordinated across replicas.

# Key Interfaces

  - DocumentStore: persists and loads the full editor state of a document.
  - DistributedLocker: provides distributed locking for concurrent document access.
*/
package ports
