package main

import (
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// SortStrategy orders media for the grid and the viewer
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(media []MediaRef) []MediaRef
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

// sortedCopy returns a stably sorted copy of media. A nil less keeps the input order.
func sortedCopy(media []MediaRef, less func(a, b string) bool) []MediaRef {
	result := slices.Clone(media)
	if result == nil {
		result = []MediaRef{}
	}
	if less == nil {
		return result
	}
	slices.SortStableFunc(result, func(a, b MediaRef) int {
		switch {
		case less(a.Path, b.Path):
			return -1
		case less(b.Path, a.Path):
			return 1
		default:
			return 0
		}
	})
	return result
}

// NaturalSortStrategy orders numbered files by value (file2 before file10)
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(media []MediaRef) []MediaRef {
	return sortedCopy(media, natural.Less)
}

func (s *NaturalSortStrategy) Name() string { return "Natural" }

func (s *NaturalSortStrategy) ID() int { return SortNatural }

// SimpleSortStrategy orders by byte-wise path comparison
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(media []MediaRef) []MediaRef {
	return sortedCopy(media, func(a, b string) bool { return strings.Compare(a, b) < 0 })
}

func (s *SimpleSortStrategy) Name() string { return "Simple" }

func (s *SimpleSortStrategy) ID() int { return SortSimple }

// EntryOrderSortStrategy keeps the order media were found in
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(media []MediaRef) []MediaRef {
	return sortedCopy(media, nil)
}

func (s *EntryOrderSortStrategy) Name() string { return "Entry Order" }

func (s *EntryOrderSortStrategy) ID() int { return SortEntryOrder }

// GetSortStrategy returns the strategy for a config sort method, falling back to natural order
func GetSortStrategy(sortMethod int) SortStrategy {
	for _, s := range GetAllSortStrategies() {
		if s.ID() == sortMethod {
			return s
		}
	}
	return &NaturalSortStrategy{}
}

// GetAllSortStrategies returns all available sort strategies
func GetAllSortStrategies() []SortStrategy {
	return []SortStrategy{
		&NaturalSortStrategy{},
		&SimpleSortStrategy{},
		&EntryOrderSortStrategy{},
	}
}
