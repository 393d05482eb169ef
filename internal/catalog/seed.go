package catalog

// SeedProducts returns the built-in catalog used by cmd/seed and the dev
// bootstrap. Prices are cents.
func SeedProducts() []Product {
	return []Product{
		{
			ID:                  1,
			Name:                "Premium Wireless Headphones",
			PriceCents:          29900,
			CompareAtPriceCents: centsPtr(39900),
			Rating:              4.8,
			ReviewCount:         124,
			Image:               "photo-1618160702438-9b02ab6515c9",
			Badge:               strPtr("Best Seller"),
			Category:            strPtr("Electronics"),
			Brand:               strPtr("TechSound"),
		},
		{
			ID:          2,
			Name:        "Smart Home Speaker",
			PriceCents:  19900,
			Rating:      4.6,
			ReviewCount: 89,
			Image:       "photo-1721322800607-8c38375eef04",
			Badge:       strPtr("New"),
			IsNew:       true,
			Category:    strPtr("Electronics"),
			Brand:       strPtr("SmartHome"),
		},
		{
			ID:                  3,
			Name:                "Luxury Watch Collection",
			PriceCents:          89900,
			CompareAtPriceCents: centsPtr(119900),
			Rating:              4.9,
			ReviewCount:         67,
			Image:               "photo-1582562124811-c09040d0a901",
			Badge:               strPtr("Limited"),
			Category:            strPtr("Fashion"),
			Brand:               strPtr("LuxTime"),
		},
		{
			ID:          4,
			Name:        "Professional Camera",
			PriceCents:  129900,
			Rating:      4.7,
			ReviewCount: 156,
			Image:       "photo-1523712999610-f77fbcfc3843",
			Category:    strPtr("Electronics"),
			Brand:       strPtr("PhotoPro"),
		},
		{
			ID:                  5,
			Name:                "Gaming Console",
			PriceCents:          49900,
			CompareAtPriceCents: centsPtr(59900),
			Rating:              4.8,
			ReviewCount:         234,
			Image:               "photo-1500673922987-e212871fec22",
			Badge:               strPtr("Hot Deal"),
			Category:            strPtr("Electronics"),
			Brand:               strPtr("GameBox"),
		},
		{
			ID:          6,
			Name:        "Wireless Earbuds Pro",
			PriceCents:  17900,
			Rating:      4.5,
			ReviewCount: 98,
			Image:       "photo-1649972904349-6e44c42644a7",
			Badge:       strPtr("New"),
			IsNew:       true,
			Category:    strPtr("Electronics"),
			Brand:       strPtr("AudioTech"),
		},
		{
			ID:                  7,
			Name:                "Designer Sunglasses",
			PriceCents:          24900,
			CompareAtPriceCents: centsPtr(32900),
			Rating:              4.4,
			ReviewCount:         78,
			Image:               "photo-1488590528505-98d2b5aba04b",
			Category:            strPtr("Fashion"),
			Brand:               strPtr("StyleCo"),
		},
		{
			ID:          8,
			Name:        "Fitness Tracker",
			PriceCents:  12900,
			Rating:      4.3,
			ReviewCount: 143,
			Image:       "photo-1531297484001-80022131f5a1",
			Badge:       strPtr("Popular"),
			Category:    strPtr("Sports"),
			Brand:       strPtr("FitTech"),
		},
		{
			ID:                  9,
			Name:                "Smart Watch Pro",
			PriceCents:          29900,
			CompareAtPriceCents: centsPtr(39900),
			Rating:              4.7,
			ReviewCount:         89,
			Image:               "photo-1544117519-31a4b719223d",
			Badge:               strPtr("Sale"),
			Category:            strPtr("Electronics"),
			Brand:               strPtr("TechWear"),
		},
		{
			ID:          10,
			Name:        "Wireless Keyboard",
			PriceCents:  8900,
			Rating:      4.5,
			ReviewCount: 67,
			Image:       "photo-1587829741301-dc798b83add3",
			Badge:       strPtr("New"),
			IsNew:       true,
			Category:    strPtr("Electronics"),
			Brand:       strPtr("KeyTech"),
		},
		{
			ID:                  11,
			Name:                "Designer Handbag",
			PriceCents:          19900,
			CompareAtPriceCents: centsPtr(29900),
			Rating:              4.6,
			ReviewCount:         112,
			Image:               "photo-1584917865442-de89df76afd3",
			Badge:               strPtr("Sale"),
			Category:            strPtr("Fashion"),
			Brand:               strPtr("StyleCo"),
		},
		{
			ID:          12,
			Name:        "Bluetooth Speaker",
			PriceCents:  7900,
			Rating:      4.4,
			ReviewCount: 95,
			Image:       "photo-1608043152269-423dbba4e7e1",
			Badge:       strPtr("New"),
			IsNew:       true,
			Category:    strPtr("Electronics"),
			Brand:       strPtr("AudioTech"),
		},
	}
}

func centsPtr(value int64) *int64 {
	return &value
}

func strPtr(value string) *string {
	return &value
}
