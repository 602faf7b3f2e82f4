package parsing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tradeflow/internal/model"
	"golang.org/x/sync/errgroup"
)

// Fields holds everything extracted from a single goods description.
type Fields struct {
	ModelName        *string
	ModelNumber      *string
	Capacity         *string
	MaterialType     *string
	EmbeddedQuantity *float64
	UnitPriceUSD     *float64
}

// Extract runs every extractor over description.
func Extract(description string) Fields {
	return Fields{
		ModelName:        ExtractModelName(description),
		ModelNumber:      ExtractModelNumber(description),
		Capacity:         ExtractCapacity(description),
		MaterialType:     ExtractMaterialType(description),
		EmbeddedQuantity: ExtractEmbeddedQuantity(description),
		UnitPriceUSD:     ExtractUnitPriceUSD(description),
	}
}

// ParsedColumns lists the columns appended by the parser, in output order.
var ParsedColumns = []string{
	model.ColumnModelNameParsed,
	model.ColumnModelNumberParsed,
	model.ColumnCapacityParsed,
	model.ColumnMaterialTypeParsed,
	model.ColumnEmbeddedQuantity,
	model.ColumnUnitPriceUSDParsed,
	model.ColumnModelNameFinal,
	model.ColumnModelNumberFinal,
	model.ColumnCapacityFinal,
}

// Parser enriches a batch with fields parsed from goods descriptions.
type Parser struct {
	workers int
}

// Option configures a Parser.
type Option func(*Parser)

// WithWorkers spreads extraction over n goroutines. Values below 2 run sequentially.
func WithWorkers(n int) Option {
	return func(p *Parser) {
		p.workers = n
	}
}

// NewParser creates a new parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{workers: 1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseGoodsDescription parses a batch sequentially.
func ParseGoodsDescription(batch *model.Batch) (*model.Batch, error) {
	return NewParser().Parse(context.Background(), batch)
}

// Parse returns a copy of batch with the parsed and final columns appended.
// A batch without a description column is returned unchanged.
func (p *Parser) Parse(ctx context.Context, batch *model.Batch) (*model.Batch, error) {
	descCol, ok := batch.FirstPresent(model.DescriptionAliases...)
	if !ok {
		slog.Warn("Goods description column not found, skipping parsing",
			"candidates", model.DescriptionAliases)
		return batch, nil
	}

	out := batch.Clone()
	for _, col := range ParsedColumns {
		out.AddColumn(col)
	}

	n := out.Len()
	if p.workers < 2 || n < 2 {
		for i := range out.Records {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			enrichRecord(out.Records[i], descCol)
		}
		return out, nil
	}

	// Each goroutine owns a disjoint range of records.
	g, gctx := errgroup.WithContext(ctx)
	chunk := (n + p.workers - 1) / p.workers
	for start := 0; start < n; start += chunk {
		start := start
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				enrichRecord(out.Records[i], descCol)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to parse goods descriptions: %w", err)
	}
	return out, nil
}

func enrichRecord(rec model.Record, descCol string) {
	desc, _ := rec.String(descCol)
	fields := Extract(desc)

	rec.Set(model.ColumnModelNameParsed, fields.ModelName)
	rec.Set(model.ColumnModelNumberParsed, fields.ModelNumber)
	rec.Set(model.ColumnCapacityParsed, fields.Capacity)
	rec.Set(model.ColumnMaterialTypeParsed, fields.MaterialType)
	rec.Set(model.ColumnEmbeddedQuantity, fields.EmbeddedQuantity)
	rec.Set(model.ColumnUnitPriceUSDParsed, fields.UnitPriceUSD)

	rec.Set(model.ColumnModelNameFinal, Reconcile(fields.ModelName, rec.StringPtr(model.ColumnModelName)))
	rec.Set(model.ColumnModelNumberFinal, Reconcile(fields.ModelNumber, rec.StringPtr(model.ColumnModelNumber)))
	rec.Set(model.ColumnCapacityFinal, Reconcile(fields.Capacity, rec.StringPtr(model.ColumnCapacity)))
}
