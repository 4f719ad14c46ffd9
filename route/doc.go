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

// Package route holds the route record, the ordered route table, and
// the factory that applies namespace prefixes during registration.
//
// The Table keeps routes in insertion order, which is the dispatch
// order, and supports a name-finalization pass that re-keys named
// entries without disturbing that order. Reverse path resolution
// reconstructs concrete paths from uncompiled pattern strings.
package route
