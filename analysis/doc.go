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


// Package analysis implements the coverage-gap detector and the
// facility-claim validator.
//
// Both operate on the immutable record store only, with no index or
// embedding calls, and construct fresh result objects per request, so
// any number of analyses may run concurrently.
//
// Gap detection classifies specialty/region coverage against fixed count
// thresholds; the thresholds are policy constants, not statistics.
// Claim validation scores a single record's completeness and evaluates a
// registered table of independent suspicion heuristics, degrading parse
// failures to recorded data-quality issues rather than aborting.
package analysis
