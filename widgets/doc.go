// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing helpers (notice card, overlay compositor)
//
// Not allowed here:
// - key handling, lookup state, or anything that talks to the network
package widgets
