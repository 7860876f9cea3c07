// Package domain contains the catalog entities.
package domain

// Package is a purchasable virtual-currency bundle. Catalog entries are
// plain read-only records: they are seeded at bootstrap and never change
// through the API. Orders snapshot the price at purchase time, so editing
// a row later never rewrites history.
type Package struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	CurrencyAmount int64  `json:"currency_amount"`
	Description    string `json:"description"`
}

// DefaultCatalog is the seed catalog, created when the packages table is
// empty on first run.
func DefaultCatalog() []Package {
	return []Package{
		{Name: "400 Robux", Price: 8, CurrencyAmount: 400, Description: "400 Robux bundle"},
		{Name: "1700 Robux", Price: 15, CurrencyAmount: 1700, Description: "1700 Robux bundle"},
		{Name: "2000 Robux", Price: 23, CurrencyAmount: 2000, Description: "2k Robux bundle"},
		{Name: "4500 Robux", Price: 40, CurrencyAmount: 4500, Description: "4.5k Robux bundle"},
		{Name: "10000 Robux", Price: 50, CurrencyAmount: 10000, Description: "10k Robux bundle"},
		{Name: "22500 Robux", Price: 80, CurrencyAmount: 22500, Description: "22.5k Robux bundle"},
	}
}
