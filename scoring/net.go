package scoring

// NetScore is the stroke-play net: gross round total minus the full
// handicap index. No rounding is applied; the result carries the
// precision of the index itself.
func NetScore(gross int, handicapIndex float64) float64 {
	return float64(gross) - handicapIndex
}
