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


package core

import "errors"

var (
	// ErrDataset indicates the source dataset could not be loaded.
	// It is fatal at startup and never recoverable.
	ErrDataset = errors.New("dataset error")

	// ErrMissingNameColumn indicates the dataset schema lacks the one
	// required column.
	ErrMissingNameColumn = errors.New("dataset is missing required column \"name\"")

	// ErrFacilityNotFound indicates no record matched the requested
	// facility name. It is an expected condition, surfaced to consumers
	// as a structured error value rather than a failure.
	ErrFacilityNotFound = errors.New("facility not found")
)
