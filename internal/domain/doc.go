// Package domain contains the core domain entities and value objects for photocat.
//
// This package represents the innermost layer of the architecture. It has
// no dependencies on infrastructure concerns (file system, EXIF decoding,
// logging) and contains only pure catalog logic.
//
// # Entities
//
//   - [Entry]: A single cataloged image with its metadata (categories, text,
//     comment, condition, physical size)
//   - [Group]: An ordered, non-empty run of entries destined for one export row
//   - [ScanMode]: The policy for partitioning entries into export groups
//
// # Design Principles
//
// Domain entities are:
//   - Free of infrastructure dependencies
//   - Focused on catalog rules and invariants
//   - Testable without mocks or external systems
package domain
