package catalog

// The built-in catalog. The storefront works offline against this set;
// a reachable backend overrides it.

var defaultSizes = []string{"6", "7", "8", "9", "10", "11"}

var staticProducts = []Product{
	{
		ID:          "men1",
		Name:        "Stride Air Max Alpha",
		Description: "Men's running shoe. Lightweight, responsive, and built for speed.",
		Category:    "Running",
		Audience:    "men",
		Price:       8995,
		ImageURL:    "/assets/men1.jpeg",
		Sizes:       defaultSizes,
	},
	{
		ID:          "men2",
		Name:        "Stride Court Vision",
		Description: "Men's basketball shoe. Superior grip and support for the court.",
		Category:    "Basketball",
		Audience:    "men",
		Price:       10995,
		ImageURL:    "/assets/men2.jpeg",
		Sizes:       defaultSizes,
	},
	{
		ID:          "men3",
		Name:        "Stride Monarch GT",
		Description: "Men's football shoe. Precision touch and explosive speed.",
		Category:    "Football",
		Audience:    "men",
		Price:       9995,
		ImageURL:    "/assets/men3.jpg",
		Sizes:       defaultSizes,
	},
	{
		ID:          "men4",
		Name:        "Stride Force One",
		Description: "Men's running shoe. A classic silhouette for everyday miles.",
		Category:    "Running",
		Audience:    "men",
		Price:       7495,
		ImageURL:    "/assets/men4.jpg",
		Sizes:       defaultSizes,
	},
	{
		ID:          "women1",
		Name:        "Stride Flex Runner",
		Description: "Women's running shoe. Soft, springy cushioning for daily training.",
		Category:    "Running",
		Audience:    "women",
		Price:       8495,
		ImageURL:    "/assets/women1.jpeg",
		Sizes:       defaultSizes,
	},
	{
		ID:          "women2",
		Name:        "Stride Court Royale",
		Description: "Women's basketball shoe. Locked-in fit with court-ready traction.",
		Category:    "Basketball",
		Audience:    "women",
		Price:       9495,
		ImageURL:    "/assets/women2.jpeg",
		Sizes:       defaultSizes,
	},
	{
		ID:          "women3",
		Name:        "Stride Zoom Rival",
		Description: "Women's football shoe. Light on the foot, fast on the pitch.",
		Category:    "Football",
		Audience:    "women",
		Price:       11495,
		ImageURL:    "/assets/women3.jpg",
		Sizes:       defaultSizes,
	},
	{
		ID:          "kids1",
		Name:        "Stride Star Runner Jr",
		Description: "Kids' running shoe. Durable and easy to get on and off.",
		Category:    "Running",
		Audience:    "kids",
		Price:       4995,
		ImageURL:    "/assets/kids1.jpeg",
		Sizes:       []string{"1", "2", "3", "4", "5"},
	},
	{
		ID:          "kids2",
		Name:        "Stride Team Hustle Jr",
		Description: "Kids' basketball shoe. Big-game feel in small sizes.",
		Category:    "Basketball",
		Audience:    "kids",
		Price:       5495,
		ImageURL:    "/assets/kids2.jpeg",
		Sizes:       []string{"1", "2", "3", "4", "5"},
	},
}

// StaticProducts returns a copy of the built-in catalog.
func StaticProducts() []Product {
	out := make([]Product, len(staticProducts))
	copy(out, staticProducts)
	return out
}
