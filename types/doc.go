// Package types contains the shared types and interfaces of the heatgrid
// library.
//
// Keeping these definitions in a leaf package lets internal packages depend
// on them without importing the root heatgrid package, avoiding import
// cycles. The root package re-exports the public ones as aliases.
package types
