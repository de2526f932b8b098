package entitlement

import "strings"

// Canonical feature keys. Callers should gate on these; the tables below
// absorb the historical variation in how plans actually spell them.
const (
	FeatureBasicReports    = "basicReports"
	FeatureAdvancedReports = "advancedReports"
	FeatureBatchTracking   = "batchTracking"
	FeatureInventoryAlerts = "inventoryAlerts"
	FeatureAPIAccess       = "apiAccess"
	FeatureMultiLocation   = "multiLocation"
	FeaturePrioritySupport = "prioritySupport"
)

// featureSynonyms maps a canonical key to every boolean-map key that
// satisfies it. Tiered features list their higher tiers too: a plan that
// only sets advancedReports implicitly grants basicReports.
//
// This table is the single place the "fuzzy" reconciliation rule lives;
// evolve it here, not at call sites.
var featureSynonyms = map[string][]string{
	FeatureBasicReports:    {FeatureBasicReports, FeatureAdvancedReports, "reports", "reporting"},
	FeatureAdvancedReports: {FeatureAdvancedReports, "advancedAnalytics"},
	FeatureBatchTracking:   {FeatureBatchTracking, "batchManagement", "batches"},
	FeatureInventoryAlerts: {FeatureInventoryAlerts, "lowStockAlerts", "stockAlerts"},
	FeatureAPIAccess:       {FeatureAPIAccess, "api", "apiKeys"},
	FeatureMultiLocation:   {FeatureMultiLocation, "multiSite", "additionalLocations"},
	FeaturePrioritySupport: {FeaturePrioritySupport, "premiumSupport"},
}

// legacyPhrases maps a canonical key to the human-readable fragments found
// in historical free-text plan rows. Matching is case-insensitive and
// two-way substring: "Reports" matches a plan phrase "Advanced report and
// analytics" and vice versa, because the old data was entered without a
// fixed vocabulary.
var legacyPhrases = map[string][]string{
	FeatureBasicReports:    {"basic report", "reporting", "advanced report and analytics"},
	FeatureAdvancedReports: {"advanced report and analytics", "advanced analytics"},
	FeatureBatchTracking:   {"batch tracking", "production batches"},
	FeatureInventoryAlerts: {"inventory alert", "low stock notification"},
	FeatureAPIAccess:       {"api access", "developer api"},
	FeatureMultiLocation:   {"multiple locations", "multi-location"},
	FeaturePrioritySupport: {"priority support", "premium support"},
}

// Has reports whether the feature identified by the canonical key is
// granted. Unknown keys with no table entry fall back to checking the
// literal key only.
func (fs FeatureSet) Has(key string) bool {
	if fs.kind == featureKindFlags {
		for _, candidate := range synonymsFor(key) {
			if fs.flags[candidate] {
				return true
			}
		}
		return false
	}

	targets := phrasesFor(key)
	for _, configured := range fs.legacy {
		configured = strings.ToLower(strings.TrimSpace(configured))
		if configured == "" {
			continue
		}
		for _, target := range targets {
			target = strings.ToLower(target)
			if strings.Contains(configured, target) || strings.Contains(target, configured) {
				return true
			}
		}
	}
	return false
}

func synonymsFor(key string) []string {
	if syns, ok := featureSynonyms[key]; ok {
		return syns
	}
	return []string{key}
}

func phrasesFor(key string) []string {
	if phrases, ok := legacyPhrases[key]; ok {
		return append([]string{key}, phrases...)
	}
	return []string{key}
}
