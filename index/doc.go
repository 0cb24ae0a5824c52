// Copyright 2025 Poiesic Systems
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


// Package index builds and queries the semantic vector index over a
// record store.
//
// Build synthesizes one text description per record, embeds the texts in
// parallel batches, and inserts the vectors into an exact flat
// squared-L2 nearest-neighbor structure keyed by row index. Build is a
// total operation: one failed embedding aborts the whole build, since a
// partial index would silently change recall.
//
// The index is immutable after Build returns and safe for concurrent
// queries. Exact search makes query results deterministic: the same
// query text against an unmodified index always returns the same hits.
package index
