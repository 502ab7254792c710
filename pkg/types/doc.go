// Package types defines the entity structs for the shared annotation schema,
// the split vocabulary, converter configuration, and standard errors used by
// the dataset converters.
package types
