// Package fetch turns location changes into list requests and writes the
// responses into the state stores.
//
// Every list domain keeps a counter of issued requests. A response is
// applied only if no newer request for the same domain was issued after it;
// otherwise it is dropped without touching the stores or the status tiers.
// Category requests report through the category tier of the status tracker,
// all other domains through the global tier.
//
// Cart and analytics operations are simple request/sync round trips; add
// and quantity changes drive the button tier.
package fetch
