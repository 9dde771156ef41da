package milp

import "github.com/cubeworks/procure-cli/internal/model"

// Index is the bijective mapping between feasible offers and model
// columns. Each offer gets a monotonically assigned ordinal in input
// order; its quantity column is the ordinal and its activation column
// is offset by the offer count. The builder and the extractor share an
// Index so they agree on column identity without relying on map
// iteration order.
type Index struct {
	offers   []model.Offer
	ordinals map[model.OfferKey]int
}

// NewIndex assigns ordinals to offers in slice order. The caller is
// expected to pass the sorted feasible set so ordinals are
// deterministic across runs.
func NewIndex(offers []model.Offer) *Index {
	ix := &Index{
		offers:   offers,
		ordinals: make(map[model.OfferKey]int, len(offers)),
	}
	for i, o := range offers {
		ix.ordinals[o.Key()] = i
	}
	return ix
}

// Len returns the number of indexed offers.
func (ix *Index) Len() int { return len(ix.offers) }

// Offer returns the offer at the given ordinal.
func (ix *Index) Offer(i int) model.Offer { return ix.offers[i] }

// Ordinal returns the ordinal for an offer key, if indexed.
func (ix *Index) Ordinal(key model.OfferKey) (int, bool) {
	i, ok := ix.ordinals[key]
	return i, ok
}

// QtyCol returns the quantity column for ordinal i.
func (ix *Index) QtyCol(i int) int { return i }

// ActCol returns the binary activation column for ordinal i.
func (ix *Index) ActCol(i int) int { return len(ix.offers) + i }

// NumCols returns the total column count (quantity plus activation).
func (ix *Index) NumCols() int { return 2 * len(ix.offers) }
