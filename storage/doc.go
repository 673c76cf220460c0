// SPDX-License-Identifier: EPL-2.0

// Package storage is the removable card the board plays from and records
// to. The engine only needs open, create-truncate, seek, read, write,
// exists and close, which FS and File cover.
//
// DirFS maps the card onto a host directory. MemFS keeps everything in
// memory for tests and for running without a card image.
package storage
