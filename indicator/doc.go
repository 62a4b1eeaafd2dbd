// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package indicator computes the geometry of the tab strip underlines.

A Positioner tracks which tab is hovered and which is active and turns
their measured boxes into Rects relative to the strip's scroll offset.
Compute is called after every hover, leave, scroll or resize. A tab that
has no mounted element yields a zero Rect rather than an error.

Layout estimates tab boxes from their text for the first server render,
before any element has been measured.
*/
package indicator
