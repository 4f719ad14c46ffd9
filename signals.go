// Copyright 2026 The Seqmux Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package seqmux

import "fmt"

// HaltKind discriminates dispatch halt signals.
type HaltKind int

const (
	// HaltSkipThis abandons the current route's remaining processing
	// and proceeds to the next route in the table.
	HaltSkipThis HaltKind = iota + 1

	// HaltSkipNext bypasses the next N routes entirely.
	HaltSkipNext

	// HaltSkipRemaining stops route iteration and proceeds straight to
	// post-loop resolution.
	HaltSkipRemaining
)

// DispatchHalted is the control-flow signal handlers raise to influence
// route iteration. It travels as a panic value and is consumed by the
// dispatch loop, never escaping under correct usage. An unrecognized
// kind converts into an unhandled failure.
//
// Handlers normally raise it through Context.SkipThis, Context.Skip,
// and Context.Stop rather than panicking directly.
type DispatchHalted struct {
	Kind HaltKind
	N    int // number of routes to bypass, for HaltSkipNext
}

func (h *DispatchHalted) Error() string {
	switch h.Kind {
	case HaltSkipThis:
		return "dispatch halted: skip this route"
	case HaltSkipNext:
		return fmt.Sprintf("dispatch halted: skip next %d routes", h.N)
	case HaltSkipRemaining:
		return "dispatch halted: skip remaining routes"
	default:
		return fmt.Sprintf("dispatch halted: unknown kind %d", h.Kind)
	}
}
