// Package nav holds the dashboard's navigation state machine.
//
// The Navigator tracks which top-level section is active, which overlay
// panel is open within it, the step of each multi-step wizard and the SKU
// draft being edited. It is the single source of truth the UI renders from;
// no other component mutates navigation state directly.
//
// Two rules shape the transitions:
//
//   - Section changes away from anything but the archive close the open
//     panel and reset both wizards, so stale overlay state can never leak
//     across sections.
//   - Wizard steps form a strict sequence (form -> details -> modal ->
//     terminal) with free backward movement. Forward movement past the form
//     and past the modal is driven by the caller only after the matching API
//     call has succeeded, which keeps the navigator ignorant of errors: a
//     failed call simply never advances it.
//
// Panel-to-section legality is a fixed table consulted by OpenPanel, so an
// illegal pair (say, the tariff panel under the partner section) is rejected
// at the transition instead of being silently rendered wrong.
package nav
