// Package app wires the pieces of the action host together: logger,
// registry, core modules, dispatcher, and the pipeline runner.
package app
