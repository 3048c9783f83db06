/*
Package live synchronizes displayed state with the backend's live-data feed.

A Synchronizer polls /api/live-data at a fixed cadence (1s by default) and
publishes each applied Snapshot to subscribers. Polls overlap: a new request
goes out every tick regardless of whether the previous one returned. The
legacy frontend let the last response to arrive win; here every request is
tagged with an issue-order sequence number and the apply step rejects
anything older than what is already displayed, so displayed state is
monotonic in issue order.

Failure semantics: a failed poll is logged and counted but otherwise
ignored; the previous snapshot stays on screen indefinitely. There is no
user-visible error for a stale feed.

Teardown: Stop (or cancelling the Start context) releases the ticker and
aborts in-flight requests. Subscriptions must be released by calling the
function returned from Subscribe.
*/
package live
