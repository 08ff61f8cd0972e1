/*
Package session serializes state transitions of a carousel.

A Manager pairs a CarouselStore with a per-carousel local lock (reference
counted, so idle carousels hold no memory) and an optional DistributedLocker
for deployments running several replicas against a shared store. Readers go
straight to the store; only check-and-set sequences take the lock.
*/
package session
