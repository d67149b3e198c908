package assigner

import "github.com/jortega/tlmkt-assign/pkg/core/model"

// CompletionConfig drives the last-resort fill pass.
type CompletionConfig struct {
	// ExtraCampaigns may donate leads to another campaign's unmet
	// quota once the target campaign's own leftovers run out.
	ExtraCampaigns []string

	// PriorityCurrencies are preferred first, RelevantCurrencies
	// second, within each campaign level of the search.
	PriorityCurrencies []string
	RelevantCurrencies []string

	// Seed for the single shuffle of the leftover pool.
	Seed int64
}

// CompletionResult is the output of the completion pass.
type CompletionResult struct {
	Assignments []model.Assignment

	// Unassigned is the leftover pool after the pass. Informational;
	// nothing consumes it further.
	Unassigned []model.Lead

	EmptyOperatorCampaigns []string
}

// leadPool is the live candidate set for the completion pass: a fixed
// shuffled order plus O(1) consumption by user ID. Selection order is
// always the shuffle order, which doubles as the tie-break.
type leadPool struct {
	leads    []model.Lead
	consumed map[int64]bool
	left     int
}

func newLeadPool(leads []model.Lead) *leadPool {
	return &leadPool{
		leads:    leads,
		consumed: make(map[int64]bool, len(leads)),
		left:     len(leads),
	}
}

// pick removes and returns the first unconsumed lead matching the
// predicate, or nil when none matches.
func (p *leadPool) pick(match func(model.Lead) bool) *model.Lead {
	for i := range p.leads {
		if p.consumed[p.leads[i].UserID] {
			continue
		}
		if match(p.leads[i]) {
			p.consumed[p.leads[i].UserID] = true
			p.left--
			return &p.leads[i]
		}
	}
	return nil
}

func (p *leadPool) empty() bool {
	return p.left == 0
}

func (p *leadPool) remaining() []model.Lead {
	var rest []model.Lead
	for _, lead := range p.leads {
		if !p.consumed[lead.UserID] {
			rest = append(rest, lead)
		}
	}
	return rest
}

// CompleteAssignments fills leftover quota from the cross-tier leftover
// pool. The pool is deduplicated by user ID, shuffled once with the
// fixed seed, and then each campaign's operators are cycled with the
// same skip semantics as the tier allocator (cap = remaining quota, no
// currency restriction). Each draw takes the first candidate found by
// descending priority:
//
//  1. target campaign, priority currency
//  2. target campaign, relevant currency
//  3. target campaign, any currency
//  4. extra campaign, priority currency
//  5. extra campaign, relevant currency
//  6. extra campaign, any currency
//
// When no level matches, the campaign cannot be filled further and the
// pass moves on.
func CompleteAssignments(leftover []model.Lead, table *QuotaTable, cfg CompletionConfig) CompletionResult {
	var res CompletionResult

	pool := newLeadPool(shuffleLeads(dedupeByUserID(leftover), cfg.Seed))

	priority := toSet(cfg.PriorityCurrencies)
	relevant := toSet(cfg.RelevantCurrencies)
	extras := toSet(cfg.ExtraCampaigns)

	for _, campaign := range table.Campaigns() {
		operators := table.Operators(campaign)
		if len(operators) == 0 {
			res.EmptyOperatorCampaigns = append(res.EmptyOperatorCampaigns, campaign)
			continue
		}

		counts := make(map[string]int, len(operators))
		idx := 0
		skips := 0

		for !pool.empty() {
			op := operators[idx]
			if counts[op.Operator] >= op.Quota {
				idx = (idx + 1) % len(operators)
				skips++
				if skips == len(operators) {
					break
				}
				continue
			}

			lead := pickByPriority(pool, campaign, extras, priority, relevant)
			if lead == nil {
				// Nothing in the pool can serve this campaign anymore.
				break
			}

			res.Assignments = append(res.Assignments, model.Assignment{
				Campaign: campaign,
				Operator: op.Operator,
				Lead:     *lead,
			})
			counts[op.Operator]++
			skips = 0
			idx = (idx + 1) % len(operators)
		}
	}

	res.Unassigned = pool.remaining()
	return res
}

// pickByPriority runs the six-level candidate search over the pool.
func pickByPriority(pool *leadPool, campaign string, extras, priority, relevant map[string]bool) *model.Lead {
	levels := []func(model.Lead) bool{
		func(l model.Lead) bool { return l.Campaign == campaign && priority[l.Currency] },
		func(l model.Lead) bool { return l.Campaign == campaign && relevant[l.Currency] },
		func(l model.Lead) bool { return l.Campaign == campaign },
		func(l model.Lead) bool { return extras[l.Campaign] && priority[l.Currency] },
		func(l model.Lead) bool { return extras[l.Campaign] && relevant[l.Currency] },
		func(l model.Lead) bool { return extras[l.Campaign] },
	}

	for _, match := range levels {
		if lead := pool.pick(match); lead != nil {
			return lead
		}
	}
	return nil
}

// dedupeByUserID keeps the first occurrence of each user ID.
func dedupeByUserID(leads []model.Lead) []model.Lead {
	seen := make(map[int64]bool, len(leads))
	var unique []model.Lead
	for _, lead := range leads {
		if seen[lead.UserID] {
			continue
		}
		seen[lead.UserID] = true
		unique = append(unique, lead)
	}
	return unique
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
