// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tabfile reads and writes the plain-text tab file format:
//
//	================================================================================
//	Title : <title>
//	Author: <author>
//	Date  : <date>
//	================================================================================
//
//	e|-1-----
//	B|--3----
//	...
//
// Free-form notes may sit between the date line and the closing rule. The body
// is the unmarked rendering of the grid, so a saved file loads back to the same
// chords.
package tabfile
