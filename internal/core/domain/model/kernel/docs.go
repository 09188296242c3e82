// Package kernel provides core domain primitives for the pharmacy delivery
// system. It implements fundamental building blocks following Domain-Driven
// Design principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and
//     comparison capabilities
//   - Location: a value object for WGS84 geographic coordinates, used for
//     customer delivery points and live driver positions
//
// These primitives enforce domain invariants and validation rules. They are
// immutable and thread-safe, making them suitable for concurrent use.
package kernel
