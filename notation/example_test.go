// SPDX-License-Identifier: EPL-2.0

package notation_test

import (
	"fmt"

	"github.com/ik5/yaudio/notation"
)

func ExampleAll() {
	st := notation.DefaultState()

	events, err := notation.All("T120 O4 C4 R8 E8. G#>", &st)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, ev := range events {
		fmt.Println(ev)
	}
	// Output:
	// 523Hz 500ms v5
	// rest 250ms
	// 659Hz 500ms v5
	// 1661Hz 500ms v5
}

func ExampleQueue() {
	q := notation.NewQueue(notation.DefaultCapacity)
	_ = q.Append("V8 A")
	_ = q.Append(" X1000M50")

	st := notation.DefaultState()
	for {
		ev, ok, err := q.Next(&st)
		if err != nil || !ok {
			break
		}
		fmt.Println(ev)
	}
	// Output:
	// 880Hz 500ms v8
	// 1000Hz 50ms v8
}
