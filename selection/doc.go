/*
Package selection runs the start/end pick state machine that drives route
queries and dynamic rerouting.

States and transitions:

	Idle --pick A--> AwaitingEnd{A} --pick B--> Resolved{A,B}
	Resolved --pick C--> AwaitingEnd{C}   (overlay cleared first)

Geolocation picks always start a new selection, from any state. While
Resolved, every applied live snapshot re-issues the route request for the
same pair so the overlay tracks congestion.

Invariant: a RoutePath exists only while Resolved and only from the most
recent successful response whose (start,end) tag matches the current
selection. Failed requests keep the prior overlay; stale responses are
dropped and counted.
*/
package selection
