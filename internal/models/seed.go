package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Seed loads the starting catalog, pages and coupons. Records that already
// exist are left alone so a persistent store can be seeded on every boot.
func Seed(ctx context.Context, s Store, now time.Time) error {
	for _, p := range SeedProducts() {
		if err := s.InsertProduct(ctx, p); err != nil && !errors.Is(err, ErrDuplicate) {
			return err
		}
	}
	for _, c := range SeedCoupons() {
		if err := s.InsertCoupon(ctx, c); err != nil && !errors.Is(err, ErrDuplicate) {
			return err
		}
	}
	for _, p := range SeedPages(now) {
		if _, err := s.GetPage(ctx, p.ID); err == nil {
			continue
		} else if !errors.Is(err, ErrNoRecord) {
			return err
		}
		if err := s.UpsertPage(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func SeedCoupons() []Coupon {
	return []Coupon{
		{Code: "ORGANIC10", DiscountPercentage: 10, ExpiryDate: time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)},
		{Code: "FREESHIP", DiscountPercentage: 0, ExpiryDate: time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
}

func SeedProducts() []Product {
	const weight = "250g"
	return []Product{
		{
			ID: "1", Name: "ABC Malt", Category: "Health Mix", Weight: weight,
			Description:      "Apple, Beetroot, and Carrot mix for ultimate vitality.",
			Image:            "https://images.unsplash.com/photo-1615485290382-441e4d049cb5?auto=format&fit=crop&w=800&q=80",
			Price:            decimal.NewFromInt(225),
			Stock:            50,
			Ingredients:      "Dehydrated Apple, Beetroot, Carrot, Country Sugar, Cardamom.",
			NutritionalValue: "Energy: 380kcal, Protein: 4g, Iron: 12mg",
			FSSAI:            "22423567000123",
			Rating:           4.8, ReviewCount: 124,
		},
		{
			ID: "2", Name: "Beetroot Malt", Category: "Health Mix", Weight: weight,
			Description: "Rich in iron and antioxidants, perfect for natural energy.",
			Image:       "https://images.unsplash.com/photo-1596525753634-93302da93673?auto=format&fit=crop&w=800&q=80",
			Price:       decimal.NewFromInt(175), Stock: 30,
			Rating: 4.5, ReviewCount: 89,
		},
		{
			ID: "3", Name: "Multigrain Mix", Category: "Breakfast", Weight: weight,
			Description: "The complete breakfast solution for all ages.",
			Image:       "https://images.unsplash.com/photo-1505253716362-afaea1d3d1af?auto=format&fit=crop&w=800&q=80",
			Price:       decimal.NewFromInt(200), Stock: 45,
			Rating: 4.7, ReviewCount: 56,
		},
		{
			ID: "4", Name: "Carrot Malt", Category: "Health Mix", Weight: weight,
			Description: "Natural eye-health booster made with farm-fresh carrots.",
			Image:       "https://images.unsplash.com/photo-1598155523122-38423bb4d601?auto=format&fit=crop&w=800&q=80",
			Price:       decimal.NewFromInt(175), Stock: 25,
			Rating: 4.3, ReviewCount: 42,
		},
		{
			ID: "5", Name: "Red Banana Malt", Category: "Kids Nutrition", Weight: weight,
			Description: "Energy dense malt specifically for growing kids.",
			Image:       "https://images.unsplash.com/photo-1623081048684-25cb27e75344?auto=format&fit=crop&w=800&q=80",
			Price:       decimal.NewFromInt(185), Stock: 15,
			FSSAI:  "22424309000052",
			Rating: 4.9, ReviewCount: 210,
		},
		{
			ID: "6", Name: "Talbina", Category: "Prophetic Medicine", Weight: weight,
			Description: "Sunnah food made from Barley for heart health.",
			Image:       "https://images.unsplash.com/photo-1640188636418-4e1a00a4d07b?auto=format&fit=crop&w=800&q=80",
			Price:       decimal.NewFromInt(125), Stock: 40,
			Rating: 4.6, ReviewCount: 75,
		},
		{
			ID: "7", Name: "Pumpkin Malt", Category: "Health Mix", Weight: weight,
			Description: "Rare nutrition from pumpkin seeds and flesh.",
			Image:       "https://images.unsplash.com/photo-1570534536531-c3bcd6b963cc?auto=format&fit=crop&w=800&q=80",
			Price:       decimal.NewFromInt(175), Stock: 20,
			Rating: 4.4, ReviewCount: 31,
		},
		{
			ID: "8", Name: "Ragi Malt", Category: "Breakfast", Weight: weight,
			Description: "Calcium-rich sprouted Ragi for bone strength.",
			Image:       "https://images.unsplash.com/photo-1610725663727-08799a997893?auto=format&fit=crop&w=800&q=80",
			Price:       decimal.NewFromInt(200), Stock: 60,
			Rating: 4.8, ReviewCount: 92,
		},
	}
}

func SeedPages(now time.Time) []StaticPage {
	return []StaticPage{
		{ID: "about", Title: "About Us", LastUpdated: now,
			Content: "Al Hyra Organics was founded with a single mission: to provide pure, traditional, and chemical-free nutrition to modern families. Our journey started in 2015 when we realized the lack of authentic health malts in the market. Today, we serve thousands of happy customers with our signature ABC Malt and other organic offerings."},
		{ID: "contact", Title: "Contact Us", LastUpdated: now,
			Content: "We are here to help! \n\nEmail: support@alhyra.com\nPhone: +91 97513 11724\nAddress: Al Hyra Organics, Industrial Estate, Tamil Nadu, India."},
		{ID: "privacy", Title: "Privacy Policy", LastUpdated: now,
			Content: "Your privacy is important to us. We only collect information necessary to process your orders and improve your shopping experience. We never share your data with third parties."},
		{ID: "refund", Title: "Refund Policy", LastUpdated: now,
			Content: "If you are not satisfied with your purchase, you can return unopened products within 7 days of delivery for a full refund. Please contact our support team to initiate a return."},
		{ID: "terms", Title: "Terms & Conditions", LastUpdated: now,
			Content: "By using our website, you agree to our terms of service. All products are subject to availability. Prices may change without prior notice."},
	}
}
