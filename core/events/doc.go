// Package events defines the dispatch related events emitted on the event bus.
//
// Available event types:
//   - CallEvent: new hall call received
//   - AssignmentEvent: passenger assigned to an elevator
//   - BacklogEvent: backlog push, purge or match
//   - InterceptEvent: opportunistic pickup on approach
//   - RepositionEvent: idle elevator sent to a strategic floor
package events
