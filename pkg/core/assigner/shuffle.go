package assigner

import (
	"math/rand"

	"github.com/jortega/tlmkt-assign/pkg/core/model"
)

// DefaultSeed is the shuffle seed used when the configuration does not
// override it. Repeated runs over the same snapshot must produce the
// same assignment, so every shuffle point seeds a fresh generator
// rather than touching process-global random state.
const DefaultSeed int64 = 42

// shuffleLeads returns a deterministically shuffled copy of leads.
// The input slice is never modified.
func shuffleLeads(leads []model.Lead, seed int64) []model.Lead {
	shuffled := make([]model.Lead, len(leads))
	copy(shuffled, leads)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled
}

// filterByCurrency returns the leads whose currency is in the target
// set, preserving input order.
func filterByCurrency(leads []model.Lead, currencies []string) []model.Lead {
	target := make(map[string]bool, len(currencies))
	for _, c := range currencies {
		target[c] = true
	}

	var filtered []model.Lead
	for _, lead := range leads {
		if target[lead.Currency] {
			filtered = append(filtered, lead)
		}
	}
	return filtered
}
