// Package margins computes period profitability ratios from an extracted
// income statement.
package margins

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"dart_extractor/pkg/core/dart"
)

// NetBasis selects which net-income line anchors the net margin.
type NetBasis string

const (
	// NetBasisOwner prefers profit attributable to owners of parent, falling
	// back to total profit when the filing reports no owner split.
	NetBasisOwner NetBasis = "owner"
	// NetBasisTotal prefers total profit for the period.
	NetBasisTotal NetBasis = "total"
)

// Record is the profitability of one period column.
type Record struct {
	Period             string
	Revenue            *float64
	OperatingProfit    *float64
	NetIncome          *float64
	OperatingMarginPct *float64
	NetMarginPct       *float64
	// DenominatorMethod records whether revenue came from an explicit total
	// line or was summed from interest + fee + insurance income (finance
	// filers often report no single revenue line).
	DenominatorMethod string
	NetBasisUsed      string
}

// ErrNoNumericColumns indicates the table has no promoted numeric column to
// read period amounts from.
var ErrNoNumericColumns = errors.New("no numeric period columns in table")

var totalRevenueNames = []string{
	"매출액", "영업수익", "수익", "수익합계", "총수익", "영업수익합계", "총영업수익",
	"revenue", "sales",
}

var operatingProfitNames = []string{
	"영업이익", "영업이익손실", "영업손익", "operatingprofit", "operatingincome",
}

var netOwnerNames = []string{
	"지배기업소유주지분순이익", "지배기업주주지분순이익", "지배주주순이익",
	"profitattributabletoownersofparent",
}

var netTotalNames = []string{
	"당기순이익", "당기순이익손실", "분기순이익", "반기순이익", "순이익",
	"profitfortheperiod", "netincome",
}

var interestIncomeNames = []string{"이자수익", "interestincome"}
var feeIncomeNames = []string{"수수료수익", "feeincome", "feeandcommissionincome"}
var insuranceIncomeNames = []string{"보험수익", "insurancerevenue"}

var labelNoiseRE = regexp.MustCompile(`[()\[\]{}·,./\\\-_%:;|'\s]+`)

// normLabel collapses a line-item label for matching: brackets, punctuation,
// and whitespace stripped, lowercased.
func normLabel(s string) string {
	return strings.ToLower(labelNoiseRE.ReplaceAllString(s, ""))
}

// Compute derives per-period operating and net margins from a numerically
// promoted income statement. The first textual column is taken as the label
// column; every promoted column yields one Record. Missing lines produce
// missing margins, not errors.
func Compute(t *dart.NumericTable, basis NetBasis) ([]Record, error) {
	labelCol := labelColumn(t)
	var periodCols []int
	for j, numeric := range t.Numeric {
		if numeric && j != labelCol {
			periodCols = append(periodCols, j)
		}
	}
	if len(periodCols) == 0 {
		return nil, ErrNoNumericColumns
	}

	revRow := findRow(t, labelCol, totalRevenueNames)
	opRow := findRow(t, labelCol, operatingProfitNames)

	niRow, niKind := -1, ""
	switch basis {
	case NetBasisTotal:
		niRow, niKind = findRow(t, labelCol, netTotalNames), "total"
		if niRow < 0 {
			niRow, niKind = findRow(t, labelCol, netOwnerNames), "owner(fallback)"
		}
	default:
		niRow, niKind = findRow(t, labelCol, netOwnerNames), "owner"
		if niRow < 0 {
			niRow, niKind = findRow(t, labelCol, netTotalNames), "total(fallback)"
		}
	}

	interestRow := findRow(t, labelCol, interestIncomeNames)
	feeRow := findRow(t, labelCol, feeIncomeNames)
	insRow := findRow(t, labelCol, insuranceIncomeNames)

	var out []Record
	for _, col := range periodCols {
		rec := Record{Period: t.Header[col], NetBasisUsed: niKind}

		denom := cellValue(t, revRow, col)
		rec.DenominatorMethod = "explicit_total_revenue"
		if denom == nil {
			sum, any := 0.0, false
			for _, r := range []int{interestRow, feeRow, insRow} {
				if v := cellValue(t, r, col); v != nil {
					sum += *v
					any = true
				}
			}
			if any {
				denom = &sum
			}
			rec.DenominatorMethod = "interest+fee+insurance"
		}

		op := cellValue(t, opRow, col)
		ni := cellValue(t, niRow, col)

		rec.Revenue = denom
		rec.OperatingProfit = op
		rec.NetIncome = ni
		rec.OperatingMarginPct = pct(op, denom)
		rec.NetMarginPct = pct(ni, denom)
		out = append(out, rec)
	}
	return out, nil
}

// labelColumn picks the first non-promoted column, defaulting to column zero.
func labelColumn(t *dart.NumericTable) int {
	for j, numeric := range t.Numeric {
		if !numeric {
			return j
		}
	}
	return 0
}

// findRow returns the index of the first row whose normalized label matches a
// candidate name exactly. Exact matching only: a contains match would let
// 기타수익 pass for 수익.
func findRow(t *dart.NumericTable, labelCol int, names []string) int {
	normed := make(map[string]bool, len(names))
	for _, n := range names {
		normed[normLabel(n)] = true
	}
	for i, r := range t.Rows {
		label := normLabel(r[labelCol].Text)
		if label != "" && normed[label] {
			return i
		}
	}
	return -1
}

func cellValue(t *dart.NumericTable, row, col int) *float64 {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	c := t.Rows[row][col]
	if !c.Valid {
		return nil
	}
	v := c.Value
	return &v
}

// pct returns n/d as a percentage rounded to two decimals.
func pct(n, d *float64) *float64 {
	if n == nil || d == nil || *d == 0 {
		return nil
	}
	v := math.Round(*n / *d * 100 * 100) / 100
	return &v
}
