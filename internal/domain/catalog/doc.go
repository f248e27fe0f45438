// Package catalog contains the course-catalog side of the enlistment domain.
//
// The package defines the leaf entities and value objects an enlistment session
// is built from:
//
//   - Period: an immutable half-hour-granular time interval within the
//     08:30-17:30 daily window
//   - Schedule: a (day group, Period) pair with conflict testing
//   - Room: a named, capacity-bounded physical resource
//   - Subject: a catalog entry with units, a laboratory flag, and prerequisites
//   - DegreeProgram: the set of subjects a student is authorized to take
//
// All types are constructed through validating constructors and are immutable
// after construction. Predicates (Overlaps, ConflictsWith, Contains) are pure;
// the only checks with error results are capacity, prerequisite, and program
// membership guards, which return typed domain errors from the shared package.
//
// Catalog objects are loaded by an external collaborator (see the csvio
// infrastructure package) and shared read-only across sections and students,
// so the package needs no internal locking.
package catalog
