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

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel cell values treated as "no data" throughout the engine.
var emptySentinels = map[string]bool{
	"":     true,
	"[]":   true,
	"null": true,
}

// IsEmptyValue reports whether a raw cell value carries no data.
func IsEmptyValue(v string) bool {
	return emptySentinels[v]
}

// ParseStringList parses a JSON-array-encoded cell into a string slice.
// An empty cell yields an empty slice; malformed JSON is an error.
func ParseStringList(raw string) ([]string, error) {
	if IsEmptyValue(raw) {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("malformed list value %q: %w", raw, err)
	}
	return items, nil
}

// ParseStringListLenient parses a JSON-array-encoded cell, degrading to
// an empty slice on malformed input. This is the load-time policy for
// dirty multi-valued columns: absence and garbage both mean "no data",
// never a fatal error.
func ParseStringListLenient(raw string) []string {
	items, err := ParseStringList(raw)
	if err != nil {
		return nil
	}
	return items
}

// ParseNumber parses a numeric cell value. Cells may carry integer or
// float renderings ("250", "250.0"); both parse to the same value.
func ParseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("malformed numeric value %q: %w", raw, err)
	}
	return v, nil
}
