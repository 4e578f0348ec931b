// Package classify defines the classification contract shared by all
// provider adapters: the request/result types, the deterministic batch
// prompt, the tolerant response decoder, and the trivial fallback used
// whenever a provider fails. Transport details live in the per-vendor
// subpackages; selection lives in classify/router.
package classify
