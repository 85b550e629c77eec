// Package tagbar implements the active-filter tag bar widget.
//
// The bar renders the currently active filter selections as removable
// chips, shows a count, and offers a clear-all action. It stays in sync
// with sibling filter-input widgets through the event bus:
//
//   - it subscribes to filter.changed and filter.applied to mirror
//     selections made elsewhere, ignoring its own echoes by source;
//   - it publishes filter.removed when the user removes one chip, and
//     filter.cleared when the user clears everything.
//
// Alongside bus publication the bar also notifies its structural parent
// through plain callbacks (OnRemove, OnClear); that direct path is a
// pass-through kept for hosts that do not subscribe to the bus.
//
// The four event names used here are the fixed vocabulary shared by all
// filter widgets; the bus itself stays agnostic to them.
package tagbar
