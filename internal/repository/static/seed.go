package static

import (
	"fmt"
	"time"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/domain"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/slug"
)

var kurtaSizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

type seedProduct struct {
	name       string
	category   string
	typ        string
	region     string
	fabric     string
	price      int64 // rupees
	bestseller bool
	ageDays    int
}

var seedProducts = []seedProduct{
	{"Kāñjīvaram Silk Saree", domain.CategorySarees, "silk", "Tamil Nadu", "Mulberry Silk", 18999, true, 40},
	{"Banārasi Brocade Saree", domain.CategorySarees, "silk", "Uttar Pradesh", "Katan Silk", 15499, true, 35},
	{"Paithani Peacock Saree", domain.CategorySarees, "silk", "Maharashtra", "Silk", 21999, false, 12},
	{"Chanderi Cotton Silk Saree", domain.CategorySarees, "cotton-silk", "Madhya Pradesh", "Cotton Silk", 4999, false, 20},
	{"Bandhani Georgette Saree", domain.CategorySarees, "georgette", "Gujarat", "Georgette", 3499, true, 8},
	{"Jamdani Handloom Saree", domain.CategorySarees, "handloom", "West Bengal", "Cotton", 6999, false, 3},
	{"Sambalpuri Ikat Saree", domain.CategorySarees, "handloom", "Odisha", "Cotton", 5799, false, 60},
	{"Lucknowi Chikankari Kurta", domain.CategoryKurtas, "straight", "Uttar Pradesh", "Cotton", 2499, true, 15},
	{"Block Print Anarkali Kurta", domain.CategoryKurtas, "anarkali", "Rajasthan", "Cotton", 1899, false, 5},
	{"Kalamkari A-Line Kurta", domain.CategoryKurtas, "a-line", "Andhra Pradesh", "Cotton", 1599, false, 25},
	{"Phulkari Embroidered Kurta", domain.CategoryKurtas, "straight", "Punjab", "Georgette", 2999, true, 2},
	{"Ajrakh Linen Kurta", domain.CategoryKurtas, "straight", "Gujarat", "Linen", 2299, false, 50},
}

// seedEpoch anchors CreatedAt so the default "newest" order is stable.
var seedEpoch = time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)

// SeedCatalog returns the built-in storefront catalog.
func SeedCatalog() []domain.Product {
	products := make([]domain.Product, 0, len(seedProducts))
	for i, s := range seedProducts {
		prefix := "sar"
		var sizes []string
		if s.category == domain.CategoryKurtas {
			prefix = "kur"
			sizes = kurtaSizes
		}
		sl := slug.Generate(s.name)
		products = append(products, domain.Product{
			ID:           fmt.Sprintf("%s-%03d", prefix, i+1),
			Slug:         sl,
			Name:         s.name,
			Price:        s.price * 100,
			ImageURL:     "/images/products/" + sl + ".jpg",
			Category:     s.category,
			IsBestseller: s.bestseller,
			Type:         s.typ,
			Region:       s.region,
			Fabric:       s.fabric,
			Sizes:        append([]string(nil), sizes...),
			CreatedAt:    seedEpoch.AddDate(0, 0, -s.ageDays),
		})
	}
	return products
}
