package catalog

// DefaultProducts is the built-in fallback set used when the catalog source
// is unconfigured, unreachable or returns a malformed payload.
func DefaultProducts() []*Product {
	return []*Product{
		{
			ID:          1,
			Name:        "Anodized Aluminium Strip",
			Category:    CategoryStrip,
			Price:       25.99,
			Unit:        "/meter",
			Image:       "images/Anodized Aluminium Strip.jpeg",
			Description: "High-quality anodized aluminium strips for various industrial applications",
			Features:    []string{"Corrosion resistant", "Custom lengths", "Multiple colors", "ISO certified"},
			Stock:       100,
		},
		{
			ID:          2,
			Name:        "Coloured Aluminium Coil",
			Category:    CategoryCoil,
			Price:       18.50,
			Unit:        "/kg",
			Image:       "images/aluminium-coil.jpg",
			Description: "Pre-coloured aluminium coils with excellent surface finish",
			Features:    []string{"UV resistant", "Weather proof", "Easy fabrication", "Consistent quality"},
			Stock:       200,
		},
	}
}
