package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectPath(t *testing.T) {
	assert.Equal(t, "restaurants/4/logo/4/brand.png", ObjectPath(4, PurposeLogo, 4, "brand.png"))
	assert.Equal(t, "restaurants/4/menu-items/19/dish.jpg", ObjectPath(4, PurposeMenuItem, 19, "../../dish.jpg"))
}

func TestResolve(t *testing.T) {
	r := NewURLResolver("https://xyz.supabase.co/", "restaurant-assets")

	assert.Equal(t, "https://cdn.example.com/a.png", r.Resolve("https://cdn.example.com/a.png"))
	assert.Equal(t, "http://cdn.example.com/a.png", r.Resolve("http://cdn.example.com/a.png"))
	assert.Equal(t,
		"https://xyz.supabase.co/storage/v1/object/public/restaurant-assets/restaurants/4/logo/4/brand.png",
		r.Resolve("restaurants/4/logo/4/brand.png"))
	assert.Equal(t,
		"https://xyz.supabase.co/storage/v1/object/public/restaurant-assets/restaurants/4/cover/4/c.jpg",
		r.Resolve("/restaurants/4/cover/4/c.jpg"))
	assert.Equal(t, "", r.Resolve("  "))
}
