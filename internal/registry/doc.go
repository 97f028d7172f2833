// Package registry is the glue between verb names used in scripts and the
// compiled Go handlers that implement them.
//
// Each action module registers its verbs during application startup; the
// registry is then validated so every handler matches the action contract
// before the first dispatch, preventing a class of runtime errors.
package registry
