// Package enlistment contains the enlistment side of the domain: sections,
// the section registry used for room-conflict detection, and the Student
// aggregate root.
//
// # Entities
//
//   - Section: one offering of a catalog Subject, bound to a Schedule and a
//     Room, tracking its enlisted count behind a per-section mutex
//   - SectionGroup: the authoritative registry of sections for a term; rejects
//     registration of a section whose schedule overlaps another section in the
//     same room
//   - Student: the aggregate root exposing Enlist, CancelEnlistment, and
//     RequestAssessment
//
// # The enlistment state machine
//
// Student.Enlist evaluates its guards in a fixed order, any of which rejects
// the whole operation with a typed domain error before any state changes:
//
//  1. nil-section guard
//  2. schedule conflict against every enrolled section
//  3. degree-program membership of the new section's subject
//  4. prerequisites against the student's taken subjects
//  5. duplicate-subject guard
//  6. 24-unit load cap
//  7. capacity-guarded commit: the section's enlisted count is incremented
//     (which may itself fail with ErrRoomCapacityReached, leaving the student
//     untouched), then the section joins the student's load
//
// All failures are synchronous, non-retryable rejections of the single
// requested operation; see the shared package for the error taxonomy.
//
// # Concurrency
//
// A Section's check-then-increment and a SectionGroup's scan-then-insert are
// each atomic behind their own mutex, so concurrent enlistments cannot
// oversubscribe a room and concurrent registrations cannot slip a room
// conflict past the scan. A Student is private to one enlistment session and
// is not internally locked.
package enlistment
