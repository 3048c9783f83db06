/*
Package render builds layered display-list frames from the topology,
projection, live snapshot and route selection.

Draw order is fixed and single-pass:

 1. background fill
 2. edges (dangling node references skipped)
 3. congestion halos, before nodes so nodes stay on top
 4. nodes, signal-colored; active start/end picks override the color
 5. route overlay, two passes over one polyline: wide low-opacity glow
    first, then the narrow high-opacity core
 6. optional hover tooltip (name, signal phase, queue count)

Frames are plain data; EncodeJSON and EncodeSVG serialize them for
programmatic clients and direct inspection respectively.
*/
package render
