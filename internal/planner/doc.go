// Package planner turns edited directory listings into filesystem operations.
//
// The planner compares the edited snapshots of every modified listing with the
// visited snapshots they were derived from and produces a Plan: the moves,
// copies, creates and deletes that make the disk match the edited text. It
// then checks the plan for conflicts before anything touches the disk.
//
// Key responsibilities:
//   - Track entry identity across listings through line identifiers
//   - Classify relocations as moves (source vacated) or copies (source kept)
//   - Cancel create/delete churn at the same path
//   - Detect duplicate destinations and destinations that already exist
package planner
