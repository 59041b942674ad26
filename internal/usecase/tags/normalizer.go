// Package tags standardizes and consolidates the free-form Tags field of the episode export.
package tags

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxLength drops tags that read like phrases.
const DefaultMaxLength = 35

// drop marks a tag that is removed outright.
const drop = ""

// defaultMappings rewrites known variants to one canonical tag. Mapped values are final
// and are not mapped again.
var defaultMappings = map[string]string{
	// spelled with spaces
	"ai integration":            "ai-integration",
	"business acquisition":      "acquisitions",
	"business frameworks":       "business-frameworks",
	"business growth":           "growth-strategy",
	"business ideas":            "entrepreneurship",
	"business models":           "business-model",
	"business operations":       "operations",
	"career transition":         "career-transition",
	"content creation":          "content-creation",
	"corporate to entrepreneur": "career-transition",
	"customer service":          "customer-service",
	"decision making":           "decision-making",
	"digital marketing":         "marketing",
	"email marketing":           "email-marketing",
	"market research":           "market-research",
	"real estate":               "real-estate",
	"sales strategy":            "sales",
	"social media":              "social-media",
	"supply chain":              "supply-chain",
	"team building":             "team-building",
	"work life balance":         "work-life-balance",

	// variants
	"ecommerce":    "e-commerce",
	"acquisition":  "acquisitions",
	"startup":      "entrepreneurship",
	"growth":       "growth-strategy",
	"business":     "entrepreneurship",
	"company":      "entrepreneurship",
	"entrepreneur": "entrepreneurship",

	// too generic to be useful
	"success": drop,

	"ai":               "artificial-intelligence",
	"machine-learning": "artificial-intelligence",
	"chatgpt":          "artificial-intelligence",
	"llm":              "artificial-intelligence",

	"software-as-a-service": "saas",
	"sass":                  "saas",

	"b-2-b": "b2b",
	"b-2-c": "b2c",

	"advertising": "marketing",
	"ads":         "marketing",
	"ad-spend":    "marketing",

	"operational-efficiency": "operations",
	"process":                "process-improvement",
	"processes":              "process-improvement",

	"recruiting":  "hiring",
	"recruitment": "hiring",
	"talent":      "hiring",
	"team":        "team-building",
	"culture":     "company-culture",

	"revenue":    "profitability",
	"profit":     "profitability",
	"margins":    "profitability",
	"investment": "fundraising",
	"funding":    "fundraising",
	"capital":    "fundraising",
	"investors":  "fundraising",

	"scale":          "scaling",
	"growth-hacking": "growth-strategy",
	"expansion":      "scaling",

	"customers":            "customer-retention",
	"customer-success":     "customer-retention",
	"churn":                "customer-retention",
	"retention":            "customer-retention",
	"acquisition-strategy": "customer-acquisition",

	"product":             "product-development",
	"product-development": "product-market-fit",

	"selling":              "sales",
	"sales-process":        "sales",
	"business-development": "sales",
}

// Normalizer maps raw tags to canonical ones.
type Normalizer struct {
	mappings  map[string]string
	canonical map[string]struct{}
	maxLength int
}

// NewNormalizer creates a Normalizer with the built-in mapping table.
// maxLength <= 0 means DefaultMaxLength.
func NewNormalizer(maxLength int) *Normalizer {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	canonical := make(map[string]struct{}, len(defaultMappings))
	for _, v := range defaultMappings {
		if v != drop {
			canonical[v] = struct{}{}
		}
	}
	return &Normalizer{mappings: defaultMappings, canonical: canonical, maxLength: maxLength}
}

// Normalize lowercases and trims tag, then applies the mapping table. Unmapped tags get
// spaces replaced with hyphens. ok is false when the tag should be removed.
func (n *Normalizer) Normalize(tag string) (string, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))

	if mapped, found := n.mappings[tag]; found {
		return mapped, mapped != drop
	}

	tag = strings.ReplaceAll(tag, " ", "-")
	if utf8.RuneCountInString(tag) > n.maxLength {
		return "", false
	}
	return tag, true
}

// IsCanonical reports whether tag is the target of some mapping.
func (n *Normalizer) IsCanonical(tag string) bool {
	_, ok := n.canonical[tag]
	return ok
}

// Split breaks a comma-separated Tags value into trimmed, non-empty tags.
func Split(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
