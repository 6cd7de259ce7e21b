package domain

import "strings"

// ConsentCategory names the resident-consent flag a vendor's sales are
// gated on.
type ConsentCategory string

const (
	CategoryHairdressing ConsentCategory = "hairdressing"
	CategoryChiropody    ConsentCategory = "chiropody"
	CategoryNewspapers   ConsentCategory = "newspapers"
	CategoryShop         ConsentCategory = "shop"
	CategorySundry       ConsentCategory = "sundry"
)

type categoryRule struct {
	keywords []string
	category ConsentCategory
}

// categoryRules is ordered; the first rule whose keyword appears in the
// vendor's trade contact wins.
var categoryRules = []categoryRule{
	{keywords: []string{"hair"}, category: CategoryHairdressing},
	{keywords: []string{"chiropod"}, category: CategoryChiropody},
	{keywords: []string{"news", "paper"}, category: CategoryNewspapers},
	{keywords: []string{"shop"}, category: CategoryShop},
}

// CategoryFor maps a vendor's trade contact to exactly one consent
// category. Unmatched contacts fall back to the sundry category.
func CategoryFor(tradeContact string) ConsentCategory {
	contact := strings.ToLower(strings.TrimSpace(tradeContact))
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(contact, kw) {
				return rule.category
			}
		}
	}
	return CategorySundry
}
