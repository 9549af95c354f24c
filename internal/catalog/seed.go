package catalog

import (
	"context"

	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// SeedIfEmpty writes the fixture catalog into any empty collection. Already
// populated collections are left alone, so repeated calls are no-ops.
func (s *service) SeedIfEmpty(ctx context.Context) error {
	var errs error

	sellers, err := s.sellers.Get(ctx)
	if err != nil {
		errs = multierr.Append(errs, err)
	} else if len(sellers) == 0 {
		errs = multierr.Append(errs, s.sellers.Put(ctx, fixtureSellers()))
	}

	categories, err := s.categories.Get(ctx)
	if err != nil {
		errs = multierr.Append(errs, err)
	} else if len(categories) == 0 {
		errs = multierr.Append(errs, s.categories.Put(ctx, fixtureCategories()))
	}

	products, err := s.products.Get(ctx)
	if err != nil {
		errs = multierr.Append(errs, err)
	} else if len(products) == 0 {
		errs = multierr.Append(errs, s.products.Put(ctx, fixtureProducts()))
	}

	return errs
}

func fixtureCategories() []models.Category {
	return []models.Category{
		{ID: "electronics", Name: "Electronics", Icon: "📱"},
		{ID: "clothing", Name: "Clothing", Icon: "👕"},
		{ID: "home", Name: "Home & Garden", Icon: "🏠"},
		{ID: "sports", Name: "Sports", Icon: "⚽"},
		{ID: "beauty", Name: "Beauty", Icon: "💄"},
		{ID: "books", Name: "Books", Icon: "📚"},
		{ID: "toys", Name: "Toys", Icon: "🧸"},
		{ID: "food", Name: "Food", Icon: "🍎"},
	}
}

func fixtureSellers() []models.Seller {
	return []models.Seller{
		{
			ID:                     "s1",
			Name:                   "TechnoWorld",
			Avatar:                 "https://ui-avatars.com/api/?name=TechnoWorld&background=random",
			Rating:                 4.8,
			ReviewsCount:           1243,
			PositiveReviewsPercent: 97,
		},
		{
			ID:                     "s2",
			Name:                   "Fashion Hub",
			Avatar:                 "https://ui-avatars.com/api/?name=Fashion+Hub&background=random",
			Rating:                 4.6,
			ReviewsCount:           867,
			PositiveReviewsPercent: 94,
		},
		{
			ID:                     "s3",
			Name:                   "Cozy Home",
			Avatar:                 "https://ui-avatars.com/api/?name=Cozy+Home&background=random",
			Rating:                 4.9,
			ReviewsCount:           542,
			PositiveReviewsPercent: 98,
		},
	}
}

func fixtureProducts() []models.Product {
	sellers := fixtureSellers()
	techno, fashion, cozy := sellers[0], sellers[1], sellers[2]

	price := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	oldPrice := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}

	return []models.Product{
		{
			ID:           "p1",
			Name:         "Wireless Headphones Pro",
			Description:  "Over-ear wireless headphones with active noise cancellation and 30-hour battery life.",
			Price:        price(7990),
			OldPrice:     oldPrice(9990),
			Image:        "/images/products/headphones.jpg",
			Category:     "electronics",
			Seller:       techno,
			InStock:      true,
			Rating:       4.7,
			ReviewsCount: 312,
		},
		{
			ID:           "p2",
			Name:         "Smart Watch Active",
			Description:  "Fitness tracking smart watch with heart rate monitoring and GPS.",
			Price:        price(12990),
			Image:        "/images/products/watch.jpg",
			Category:     "electronics",
			Seller:       techno,
			InStock:      true,
			Rating:       4.5,
			ReviewsCount: 198,
		},
		{
			ID:           "p3",
			Name:         "Classic Denim Jacket",
			Description:  "Unisex denim jacket in a relaxed fit, stone washed.",
			Price:        price(3490),
			OldPrice:     oldPrice(4990),
			Image:        "/images/products/jacket.jpg",
			Category:     "clothing",
			Seller:       fashion,
			InStock:      true,
			Rating:       4.4,
			ReviewsCount: 86,
		},
		{
			ID:           "p4",
			Name:         "Running Sneakers Lite",
			Description:  "Lightweight breathable sneakers for everyday running.",
			Price:        price(5290),
			Image:        "/images/products/sneakers.jpg",
			Category:     "sports",
			Seller:       fashion,
			InStock:      false,
			Rating:       4.6,
			ReviewsCount: 154,
		},
		{
			ID:           "p5",
			Name:         "Aroma Diffuser Stone",
			Description:  "Ultrasonic aroma diffuser with a ceramic finish and warm light.",
			Price:        price(2190),
			Image:        "/images/products/diffuser.jpg",
			Category:     "home",
			Seller:       cozy,
			InStock:      true,
			Rating:       4.9,
			ReviewsCount: 73,
		},
		{
			ID:           "p6",
			Name:         "Cast Iron Skillet 26cm",
			Description:  "Pre-seasoned cast iron skillet, oven safe.",
			Price:        price(2890),
			OldPrice:     oldPrice(3590),
			Image:        "/images/products/skillet.jpg",
			Category:     "home",
			Seller:       cozy,
			InStock:      true,
			Rating:       4.8,
			ReviewsCount: 129,
		},
		{
			ID:           "p7",
			Name:         "Portable Bluetooth Speaker",
			Description:  "Waterproof pocket speaker with 12 hours of playback.",
			Price:        price(3990),
			Image:        "/images/products/speaker.jpg",
			Category:     "electronics",
			Seller:       techno,
			InStock:      true,
			Rating:       4.3,
			ReviewsCount: 241,
		},
		{
			ID:           "p8",
			Name:         "Yoga Mat Non-Slip",
			Description:  "6mm thick TPE yoga mat with carrying strap.",
			Price:        price(1590),
			Image:        "/images/products/yogamat.jpg",
			Category:     "sports",
			Seller:       cozy,
			InStock:      true,
			Rating:       4.5,
			ReviewsCount: 64,
		},
	}
}
