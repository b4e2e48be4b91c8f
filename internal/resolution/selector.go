package resolution

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// AspectTolerance is the largest absolute difference between two minor/major
// ratios that still counts as the same aspect ratio.
const AspectTolerance = 0.05

// Tier identifies the rule that picked a resolution.
type Tier string

// Selection tiers.
const (
	TierExact    Tier = "exact"
	TierAspect   Tier = "aspect"
	TierFallback Tier = "fallback"
	TierPreview  Tier = "preview"
)

// Selection is a chosen resolution together with the rule that chose it.
type Selection struct {
	Resolution Resolution `json:"resolution"`
	Tier       Tier       `json:"tier"`
}

// SelectBest returns the candidate that best matches target.
func SelectBest(candidates []Resolution, target Target) (Resolution, error) {
	sel, err := Select(candidates, target)
	if err != nil {
		return Resolution{}, err
	}
	return sel.Resolution, nil
}

// Select returns the candidate that best matches target and the tier that
// decided it. candidates is not modified.
func Select(candidates []Resolution, target Target) (Selection, error) {
	if err := validate(candidates, target); err != nil {
		return Selection{}, err
	}

	minor, major := target.Minor(), target.Major()
	for _, c := range candidates {
		if c.Minor() == minor && c.Major() == major {
			return Selection{Resolution: c, Tier: TierExact}, nil
		}
	}

	sorted := byPixelsDesc(candidates)
	targetRatio := target.Ratio()
	for _, c := range sorted {
		if math.Abs(c.Ratio()-targetRatio) <= AspectTolerance {
			return Selection{Resolution: c, Tier: TierAspect}, nil
		}
	}

	return Selection{Resolution: sorted[0], Tier: TierFallback}, nil
}

// SelectPicture picks a still-picture size. A candidate identical to the
// chosen preview size wins outright so preview and picture frames line up;
// otherwise it falls back to Select.
func SelectPicture(candidates []Resolution, preview Resolution, target Target) (Selection, error) {
	if err := validate(candidates, target); err != nil {
		return Selection{}, err
	}
	if !preview.Valid() {
		return Selection{}, newInvalidInput(fmt.Sprintf("preview %s has a non-positive dimension", preview))
	}

	for _, c := range candidates {
		if c == preview {
			return Selection{Resolution: c, Tier: TierPreview}, nil
		}
	}
	return Select(candidates, target)
}

func validate(candidates []Resolution, target Target) error {
	if !target.Valid() {
		return newInvalidInput(fmt.Sprintf("target %s has a non-positive dimension", target))
	}
	if len(candidates) == 0 {
		return newInvalidInput("no candidate resolutions")
	}
	for i, c := range candidates {
		if !c.Valid() {
			return newInvalidInput(fmt.Sprintf("candidate %d (%s) has a non-positive dimension", i, c))
		}
	}
	return nil
}

// byPixelsDesc returns a stably sorted copy, largest pixel count first.
func byPixelsDesc(candidates []Resolution) []Resolution {
	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b Resolution) int {
		return cmp.Compare(b.Pixels(), a.Pixels())
	})
	return sorted
}
