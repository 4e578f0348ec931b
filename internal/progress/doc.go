// Package progress implements the stage-weighted progress model and
// the publish/subscribe event bus that carries it. Delivery is best
// effort; publishing with no subscribers is a normal condition.
package progress
