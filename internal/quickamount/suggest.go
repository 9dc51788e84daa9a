package quickamount

import (
	"math"
	"sort"
)

// MaxSuggestions caps the number of amounts returned by Suggest.
const MaxSuggestions = 4

var fallback = []float64{10, 20, 50, 100}

// band pairs an exclusive upper bound on the remaining amount with the
// denominations used to round it up.
type band struct {
	name   string
	below  float64
	ladder []float64
}

var bands = []band{
	{name: "lt20", below: 20, ladder: []float64{5, 10, 20, 50}},
	{name: "lt100", below: 100, ladder: []float64{10, 20, 50, 100}},
	{name: "lt500", below: 500, ladder: []float64{50, 100, 200, 500}},
	{name: "lt2000", below: 2000, ladder: []float64{100, 200, 500, 1000}},
	{name: "large", below: math.Inf(1), ladder: []float64{500, 1000, 2000, 5000}},
}

// Fallback returns the suggestions offered when nothing is left to pay.
func Fallback() []float64 {
	out := make([]float64, len(fallback))
	copy(out, fallback)
	return out
}

// Suggest proposes up to four round payment amounts for the remaining balance.
// The exact amount (rounded up to a whole unit) is always first; the rest are
// picked greedily from the denomination ladder for the balance's magnitude.
func Suggest(remaining float64) []float64 {
	if math.IsNaN(remaining) || math.IsInf(remaining, 0) || remaining <= 0 {
		SuggestTotal.WithLabelValues("fallback").Inc()
		return Fallback()
	}

	exact := math.Ceil(remaining)
	b := bandFor(remaining)
	SuggestTotal.WithLabelValues(b.name).Inc()

	minGap := math.Max(5, exact*0.05)
	amounts := []float64{exact}

	accept := func(candidate float64) {
		if len(amounts) >= MaxSuggestions || candidate <= exact {
			return
		}
		for _, existing := range amounts {
			if math.Abs(candidate-existing) < minGap {
				return
			}
		}
		amounts = append(amounts, candidate)
	}

	for _, denom := range b.ladder {
		if len(amounts) >= MaxSuggestions {
			break
		}
		rounded := math.Ceil(remaining/denom) * denom
		accept(rounded)
		accept(rounded + denom)
	}

	return normalize(amounts)
}

func bandFor(remaining float64) band {
	for _, b := range bands {
		if remaining < b.below {
			return b
		}
	}
	return bands[len(bands)-1]
}

// normalize drops non-positive and duplicate values, sorts ascending and caps the list.
func normalize(amounts []float64) []float64 {
	seen := make(map[float64]struct{}, len(amounts))
	out := make([]float64, 0, len(amounts))
	for _, a := range amounts {
		if a <= 0 {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	sort.Float64s(out)
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}
