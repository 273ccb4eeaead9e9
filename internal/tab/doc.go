// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tab holds the in-memory tablature: a growable grid of chords with a
// position cursor, the metadata that travels with it, and the line-wrapped
// text rendering used both for interactive feedback and for tab files.
//
// A Grid always spans the columns [0, HighWaterMark]. Writing past the end or
// moving the cursor past the end fills the gap with blank chords; the high
// water mark never decreases.
package tab
