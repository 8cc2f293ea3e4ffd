// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package catalog holds the generated use-case catalog: parameterized SQL
// templates grouped by category, built lazily from the generation service
// and cached in process memory until invalidated.
package catalog

import (
	"github.com/google/uuid"

	"querysmith/cli/internal/sqltext"
)

// maxPerCategory caps how many use cases one generation pass keeps per
// category.
const maxPerCategory = 5

// CategoryOrder is the stable rendering order for catalog listings.
var CategoryOrder = []sqltext.Category{
	sqltext.CategoryCreate,
	sqltext.CategoryRead,
	sqltext.CategoryUpdate,
	sqltext.CategoryDelete,
}

// Parameter is one declared input of a use case, in declaration order.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// UseCase is one generated, parameterized statement template.
type UseCase struct {
	ID              uuid.UUID        `json:"use_case_id"`
	Description     string           `json:"description"`
	Category        sqltext.Category `json:"category"`
	Template        string           `json:"query_template"`
	InputParameters []Parameter      `json:"input_parameters"`
}

// Catalog is an ordered collection of use cases, at most maxPerCategory per
// category.
type Catalog struct {
	UseCases []UseCase
}

// New builds a Catalog from generated use cases. The category of every use
// case is derived from its template's leading keyword, and arrival order is
// preserved while each category is capped.
func New(cases []UseCase) *Catalog {
	counts := make(map[sqltext.Category]int)
	kept := make([]UseCase, 0, len(cases))
	for _, uc := range cases {
		uc.Category = sqltext.Categorize(uc.Template)
		if counts[uc.Category] >= maxPerCategory {
			continue
		}
		counts[uc.Category]++
		kept = append(kept, uc)
	}
	return &Catalog{UseCases: kept}
}

// ByCategory returns the use cases of one category in catalog order.
func (c *Catalog) ByCategory(cat sqltext.Category) []UseCase {
	var out []UseCase
	for _, uc := range c.UseCases {
		if uc.Category == cat {
			out = append(out, uc)
		}
	}
	return out
}

// Find looks up a use case by its ID string.
func (c *Catalog) Find(id string) (UseCase, bool) {
	for _, uc := range c.UseCases {
		if uc.ID.String() == id {
			return uc, true
		}
	}
	return UseCase{}, false
}

// Len returns the number of use cases in the catalog.
func (c *Catalog) Len() int { return len(c.UseCases) }
