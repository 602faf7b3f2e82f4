package classification

import (
	"log/slog"

	"github.com/Veraticus/tradeflow/internal/model"
)

// AssignCategories returns a copy of batch with Category and Sub_Category set on
// every record. Missing code or description columns are treated as empty values.
func (c *Categorizer) AssignCategories(batch *model.Batch) *model.Batch {
	codeCol, hasCode := batch.FirstPresent(model.HSCodeAliases...)
	descCol, hasDesc := batch.FirstPresent(model.DescriptionAliases...)
	if !hasCode {
		slog.Warn("HS code column not found, categories default to Other",
			"candidates", model.HSCodeAliases)
	}
	if !hasDesc {
		slog.Warn("Goods description column not found, sub-categories use HS code only",
			"candidates", model.DescriptionAliases)
	}

	out := batch.Clone()
	out.AddColumn(model.ColumnCategory)
	out.AddColumn(model.ColumnSubCategory)

	counts := make(map[string]int)
	for _, rec := range out.Records {
		var code, desc string
		if hasCode {
			code, _ = rec.String(codeCol)
		}
		if hasDesc {
			desc, _ = rec.String(descCol)
		}

		category := c.CategoryFromCode(code)
		rec.Set(model.ColumnCategory, category)
		rec.Set(model.ColumnSubCategory, c.SubcategoryFromDescription(desc, code))
		counts[category]++
	}

	slog.Debug("Assigned categories", "records", out.Len(), "by_category", counts)
	return out
}
