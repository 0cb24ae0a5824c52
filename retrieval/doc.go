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


// Package retrieval turns raw nearest-neighbor hits into ranked,
// citation-annotated search results.
//
// The Searcher is read-only: it embeds the query, asks the vector index
// for the k nearest entries, joins each hit back to its full record in
// the store, and attaches a Citation so every result is traceable to its
// source row. Results preserve ascending-distance order; rank 1 is the
// most relevant hit.
package retrieval
