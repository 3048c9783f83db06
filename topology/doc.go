/*
Package topology provides the static intersection/road network for a session.

The topology is fetched once from the backend's /api/config endpoint and
indexed in memory; it never changes for the lifetime of the session, so
parse it at startup and keep the store around.

# Basic Usage

	store := topology.NewStore()
	if err := store.Load(ctx, client); err != nil {
	    // store stays empty; render degrades to an empty frame
	    log.Printf("topology unavailable: %v", err)
	}

	node, ok := store.Node("3-4")
	bounds, _ := store.Bounds()

# Failure Semantics

A failed Load leaves the store empty rather than partially filled.
There is no automatic retry; the host decides when to call Load again.
*/
package topology
