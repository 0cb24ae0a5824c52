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


// Package dataset loads the flat facility/NGO dataset and exposes typed,
// read-only access to its rows.
//
// A Store is built once at startup and never mutated afterwards, so it
// may be read concurrently without locking. Row order is load order and
// a record's row index is its identity for the process lifetime.
//
// The package also owns the two shared filter predicates (RegionMatches,
// SpecialtyMatches) and the text synthesizer that derives the embedding
// input for each record.
package dataset
