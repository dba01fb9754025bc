package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
)

func TestGenerateValuationPDF(t *testing.T) {
	summary := dto.ValuationSummaryDTO{
		TotalCostValue:         decimal.NewFromInt(190),
		TotalSellingValue:      decimal.NewFromInt(300),
		TotalPotentialProfit:   decimal.NewFromInt(110),
		ProfitMarginPercentage: decimal.RequireFromString("57.89"),
		TotalItemsValued:       2,
	}
	items := []dto.ValuationItemDTO{
		{SKU: "A", ProductName: "Alicate", Warehouse: "Norte", QuantityOnHand: 15, CostValue: decimal.NewFromInt(150), SellingValue: decimal.NewFromInt(225)},
		{SKU: "A", ProductName: "Alicate", Warehouse: "Central", QuantityOnHand: 4, CostValue: decimal.NewFromInt(40), SellingValue: decimal.NewFromInt(60)},
	}

	out, err := NewValuationPDFGenerator().GenerateValuationPDF(context.Background(), "company-1", summary, items, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
}

func TestGenerateValuationPDF_SinItems(t *testing.T) {
	out, err := NewValuationPDFGenerator().GenerateValuationPDF(context.Background(), "company-1", dto.ValuationSummaryDTO{}, nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateValuationPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewValuationPDFGenerator().GenerateValuationPDF(ctx, "company-1", dto.ValuationSummaryDTO{}, nil, time.Now())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1.234.568", formatMoney(decimal.RequireFromString("1234567.8")))
	assert.Equal(t, "$0", formatMoney(decimal.Zero))
	assert.Equal(t, "2.500.000", formatQuantity(2500000))
}
