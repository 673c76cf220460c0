// SPDX-License-Identifier: EPL-2.0

package notation

import "errors"

var (
	ErrQueueFull = errors.New("notation queue full")
	ErrSyntax    = errors.New("notation syntax error")
)
