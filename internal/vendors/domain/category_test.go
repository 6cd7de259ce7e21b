package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFor(t *testing.T) {
	cases := []struct {
		contact string
		want    ConsentCategory
	}{
		{"Hairdressing", CategoryHairdressing},
		{"Mobile hair salon", CategoryHairdressing},
		{"Chiropody", CategoryChiropody},
		{"chiropodist", CategoryChiropody},
		{"Newsagent", CategoryNewspapers},
		{"Paper delivery", CategoryNewspapers},
		{"Village shop", CategoryShop},
		{"Taxi firm", CategorySundry},
		{"", CategorySundry},
		{"  HAIR  ", CategoryHairdressing},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CategoryFor(tc.contact), "contact %q", tc.contact)
	}
}

func TestCategoryForPrefersEarlierRule(t *testing.T) {
	// A contact matching two rules takes the first one in order.
	assert.Equal(t, CategoryHairdressing, CategoryFor("hair and paper goods"))
}
