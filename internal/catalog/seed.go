package catalog

// SeedItems returns the demo catalog used when no database is configured.
func SeedItems() []Item {
	return []Item{
		{ID: 1, SKU: "LAP001", Name: "Aspire 14 Laptop", Description: "Slim 14-inch laptop with 16GB RAM and all-day battery", Category: "Electronics", Price: 449.99, Currency: "$", Active: true},
		{ID: 2, SKU: "LAP002", Name: "ProBook 15 Laptop", Description: "Workstation laptop with dedicated graphics", Category: "Electronics", Price: 1199.00, Currency: "$", Active: true},
		{ID: 3, SKU: "PHN001", Name: "Pixelmate Phone", Description: "Compact smartphone with a great camera", Category: "Electronics", Price: 599.00, Currency: "$", Active: true},
		{ID: 4, SKU: "HDP001", Name: "Silent Pro Headphones", Description: "Over-ear noise cancelling headphones", Category: "Electronics", Price: 199.50, Currency: "$", Active: true},
		{ID: 5, SKU: "WCH001", Name: "Trail Smartwatch", Description: "GPS smartwatch with heart-rate tracking", Category: "Accessories", Price: 149.99, Currency: "$", Active: true},
		{ID: 6, SKU: "TSH001", Name: "Everyday Cotton Tee", Description: "Classic crew-neck t-shirt in organic cotton", Category: "Apparel", Price: 14.99, Currency: "$", Active: true},
		{ID: 7, SKU: "HDY001", Name: "Fleece Hoodie", Description: "Heavyweight fleece hoodie for cold mornings", Category: "Apparel", Price: 39.99, Currency: "$", Active: true},
		{ID: 8, SKU: "SNK001", Name: "CloudRunner Sneakers", Description: "Lightweight running sneakers with cushioned sole", Category: "Footwear", Price: 89.00, Currency: "$", Active: true},
		{ID: 9, SKU: "BOT001", Name: "Trailhead Hiking Boots", Description: "Waterproof hiking boots with ankle support", Category: "Footwear", Price: 129.00, Currency: "$", Active: true},
		{ID: 10, SKU: "BAG001", Name: "Commuter Backpack", Description: "Water-resistant backpack with laptop sleeve", Category: "Accessories", Price: 59.95, Currency: "$", Active: true},
		{ID: 11, SKU: "LMP001", Name: "Nordic Desk Lamp", Description: "Dimmable LED desk lamp in matte black", Category: "Home & Living", Price: 34.50, Currency: "$", Active: true},
		{ID: 12, SKU: "MAT001", Name: "GripFlow Yoga Mat", Description: "Non-slip yoga mat with carry strap", Category: "Sports & Outdoors", Price: 24.99, Currency: "$", Active: true},
		{ID: 13, SKU: "TNT001", Name: "Basecamp 2P Tent", Description: "Two-person tent with quick setup poles", Category: "Sports & Outdoors", Price: 159.00, Currency: "$", Active: true},
		{ID: 14, SKU: "OLD001", Name: "Retired Media Player", Description: "Discontinued portable media player", Category: "Electronics", Price: 49.99, Currency: "$", Active: false},
	}
}
