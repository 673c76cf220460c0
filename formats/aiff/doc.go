// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16-bit AIFF files with github.com/go-audio/aiff.
//
// go-audio needs to seek between chunks. Readers that cannot seek are
// buffered in memory first.
package aiff
