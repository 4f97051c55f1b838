package dart

import "strings"

// RejectScore marks a disqualified candidate. Valid scores are always >= 0,
// so a rejected candidate can never win selection.
const RejectScore = -1.0

// ScoreContext scores the phrase signals for one candidate: each distinct
// vocabulary phrase found in the preceding context window or in the table's
// own text contributes its configured weight, and the preferred-variant boost
// is added once when requested and a preferred marker (연결 / consolidated) is
// present. The boost is additive, a soft preference rather than a hard filter
// on the non-preferred variant.
func ScoreContext(cfg Config, ctx, tbl string, preferConsolidated bool) float64 {
	score := 0.0
	for _, p := range cfg.Vocab.Phrases {
		if strings.Contains(ctx, p.Text) || strings.Contains(tbl, p.Text) {
			score += p.Weight
		}
	}
	if preferConsolidated {
		for _, marker := range cfg.Vocab.Preferred {
			if strings.Contains(ctx, marker) || strings.Contains(tbl, marker) {
				score += cfg.PreferredBoost
				break
			}
		}
	}
	return score
}

// ScoreRows scores a candidate's structural signals. Candidates under the
// minimum row count get RejectScore. Otherwise the score combines distinct
// line-item hits, the fraction of numeric-shaped cells, a header bonus from
// the first HeaderHintRows rows, and a row-count bonus that saturates at
// SizeSaturation rows. Never fails: a candidate with no numeric signal still
// gets a defined (near-zero) score.
func ScoreRows(cfg Config, rows [][]string) float64 {
	if len(rows) < cfg.MinRows {
		return RejectScore
	}

	var sb strings.Builder
	totalCells, numCells := 0, 0
	for _, r := range rows {
		for _, c := range r {
			sb.WriteString(c)
			sb.WriteByte(' ')
			totalCells++
			if numericLike(c) {
				numCells++
			}
		}
	}
	flat := sb.String()

	liHits := 0
	for _, p := range cfg.Vocab.Phrases {
		if p.Category == CategoryTitle {
			continue
		}
		if strings.Contains(flat, p.Text) {
			liHits++
		}
	}

	density := 0.0
	if totalCells > 0 {
		density = float64(numCells) / float64(totalCells)
	}

	headerBonus := 0.0
	limit := cfg.HeaderHintRows
	if limit > len(rows) {
		limit = len(rows)
	}
	for _, r := range rows[:limit] {
		joined := strings.Join(r, " ")
		if containsAnyHint(joined, cfg.Vocab.HeaderHints) {
			headerBonus = 1.0
			break
		}
		if periodRE.MatchString(joined) && headerBonus < 0.6 {
			headerBonus = 0.6
		}
	}

	size := len(rows)
	if size > cfg.SizeSaturation {
		size = cfg.SizeSaturation
	}
	sizeBonus := float64(size) / float64(cfg.SizeSaturation)

	return float64(liHits)*cfg.LineItemRowWeight +
		density*cfg.DensityWeight +
		headerBonus*cfg.HeaderBonusWeight +
		sizeBonus
}

// numericLike reports whether a cell looks like a formatted figure: it must
// contain a digit alongside grouping separators, parentheses, a negative
// marker, or be a bare number outright.
func numericLike(s string) bool {
	if !strings.ContainsAny(s, "0123456789") {
		return false
	}
	if strings.ContainsAny(s, ",()-△") {
		return true
	}
	return numberRE.MatchString(s)
}

func containsAnyHint(s string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(s, h) {
			return true
		}
	}
	return false
}
