// SPDX-License-Identifier: Unlicense OR MIT

// Package fling estimates release velocities of drag gestures and
// animates the scroll offset towards a snapped resting position.
package fling
