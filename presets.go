package valyu

import "sort"

// SearchPreset is a named, fixed combination of search type and source list.
type SearchPreset struct {
	SearchType      string
	IncludedSources []string
}

// Search types understood by the /search endpoint.
const (
	SearchTypeWeb         = "web"
	SearchTypeNews        = "news"
	SearchTypeProprietary = "proprietary"
	SearchTypeAll         = "all"
)

var searchPresets = map[string]SearchPreset{
	"web": {SearchType: SearchTypeWeb},
	"finance": {
		SearchType: SearchTypeProprietary,
		IncludedSources: []string{
			"valyu/valyu-stocks", "valyu/valyu-sec-filings", "valyu/valyu-earnings-US",
			"valyu/valyu-balance-sheet-US", "valyu/valyu-income-statement-US",
			"valyu/valyu-cash-flow-US", "valyu/valyu-dividends-US",
			"valyu/valyu-insider-transactions-US", "valyu/valyu-crypto", "valyu/valyu-forex",
		},
	},
	"paper": {
		SearchType:      SearchTypeProprietary,
		IncludedSources: []string{"valyu/valyu-arxiv", "valyu/valyu-biorxiv", "valyu/valyu-medrxiv", "valyu/valyu-pubmed"},
	},
	"bio": {
		SearchType: SearchTypeProprietary,
		IncludedSources: []string{
			"valyu/valyu-pubmed", "valyu/valyu-biorxiv", "valyu/valyu-medrxiv",
			"valyu/valyu-clinical-trials", "valyu/valyu-drug-labels",
		},
	},
	"patent": {SearchType: SearchTypeProprietary, IncludedSources: []string{"valyu/valyu-patents"}},
	"sec":    {SearchType: SearchTypeProprietary, IncludedSources: []string{"valyu/valyu-sec-filings"}},
	"economics": {
		SearchType: SearchTypeProprietary,
		IncludedSources: []string{
			"valyu/valyu-bls", "valyu/valyu-fred", "valyu/valyu-world-bank",
			"valyu/valyu-worldbank-indicators", "valyu/valyu-usaspending",
		},
	},
	"news": {SearchType: SearchTypeNews},
}

// LookupPreset returns the preset registered under name.
// The returned source list is a copy.
func LookupPreset(name string) (SearchPreset, bool) {
	p, ok := searchPresets[name]
	if !ok {
		return SearchPreset{}, false
	}
	if p.IncludedSources != nil {
		p.IncludedSources = append([]string(nil), p.IncludedSources...)
	}
	return p, true
}

// PresetNames returns all preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(searchPresets))
	for name := range searchPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
