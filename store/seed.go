package store

import (
	"time"

	"storefront-backend/models"
)

// Bootstrap dataset installed when the backend is empty or unreachable.

func seedProducts() []models.Product {
	return []models.Product{
		{
			ID:            "1",
			Name:          "Smart Watch Series 8",
			Brand:         "Apple Clone",
			Category:      "Electronics",
			Price:         45.99,
			Cost:          20.00,
			Stock:         100,
			Description:   "Latest smart watch with health tracking",
			Image:         "https://images.unsplash.com/photo-1546868871-7041f2a55e12?w=500&q=80",
			IsSale:        true,
			DiscountPrice: 29.99,
		},
		{
			ID:          "2",
			Name:        "Wireless Earbuds Pro",
			Brand:       "AudioTechnica",
			Category:    "Electronics",
			Price:       25.50,
			Cost:        10.00,
			Stock:       50,
			Description: "Noise cancelling earbuds",
			Image:       "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=500&q=80",
		},
		{
			ID:          "3",
			Name:        "Fashion Summer Dress",
			Brand:       "Zara",
			Category:    "Clothing",
			Price:       15.99,
			Cost:        5.00,
			Stock:       200,
			Description: "Floral print summer dress",
			Image:       "https://images.unsplash.com/photo-1572804013309-59a88b7e92f1?w=500&q=80",
			IsSale:      true,
		},
		{
			ID:          "4",
			Name:        "Gaming Mechanical Keyboard",
			Brand:       "Logitech",
			Category:    "Electronics",
			Price:       55.00,
			Cost:        30.00,
			Stock:       15,
			Description: "RGB Backlit mechanical keyboard",
			Image:       "https://images.unsplash.com/photo-1511467687858-23d96c32e4ae?w=500&q=80",
		},
	}
}

func seedUsers() []models.User {
	return []models.User{
		{
			ID:          "1",
			Name:        "Admin User",
			Email:       "admin@aliexpress.com",
			Password:    "admin123",
			Role:        models.RoleAdmin,
			Permissions: []string{"inventory", "pos", "sales", "users"},
			CreatedAt:   time.Now().UTC(),
		},
	}
}
