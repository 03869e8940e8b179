/*
Package session coordinates access to stored documents.

It serializes load-modify-save cycles per document, in process with
reference-counted mutexes and across replicas with an optional distributed
locker, and applies actions through a folium.Editor seeded with the stored
state.
*/
package session
