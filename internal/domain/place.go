package domain

import "time"

type Price string

const (
	PriceLow      Price = "$"
	PriceModerate Price = "$$"
	PriceHigh     Price = "$$$"
	PriceLuxury   Price = "$$$$"
)

var Prices = []Price{PriceLow, PriceModerate, PriceHigh, PriceLuxury}

// Weight maps a price tier to 1..4. Unknown tiers report ok=false.
func (p Price) Weight() (int, bool) {
	switch p {
	case PriceLow:
		return 1, true
	case PriceModerate:
		return 2, true
	case PriceHigh:
		return 3, true
	case PriceLuxury:
		return 4, true
	default:
		return 0, false
	}
}

func (p Price) Valid() bool {
	_, ok := p.Weight()
	return ok
}

const (
	TypeRestaurant = "Restaurant"
	TypeCafe       = "Cafe / Bakery"
	TypeDessert    = "Dessert"
	TypeBar        = "Bar / Cocktails"
	TypeActivity   = "Activity / Sightseeing"
	TypeExperience = "Experience"
	TypeStay       = "Stay"
	TypeOther      = "Other"
)

var PlaceTypes = []string{
	TypeRestaurant,
	TypeCafe,
	TypeDessert,
	TypeBar,
	TypeActivity,
	TypeExperience,
	TypeStay,
	TypeOther,
}

// IsFood reports whether placeType counts towards the food total of a recap.
func IsFood(placeType string) bool {
	switch placeType {
	case TypeRestaurant, TypeCafe, TypeBar, TypeDessert:
		return true
	}
	return false
}

// HasCuisine reports whether a cuisine is meaningful for placeType.
func HasCuisine(placeType string) bool {
	return placeType == TypeRestaurant || placeType == TypeCafe
}

var Cuisines = []string{
	"American", "Balkan", "Brazilian", "Caribbean", "Chinese", "Cuban", "Ethiopian",
	"Filipino", "French", "Fusion", "German", "Greek", "Hawaiian", "Indian", "Italian",
	"Japanese", "Korean", "Lebanese", "Mediterranean", "Mexican", "Middle Eastern", "Other",
	"Peruvian", "Spanish", "Taiwanese", "Thai", "Turkish", "Vietnamese",
}

var Tags = []string{
	"Date Night", "Family-Friendly", "Solo Friendly",
	"Quick Bite", "Late Night", "Happy Hour",
	"Great Service", "Good Ambience", "Cozy", "Trendy",
	"Outdoor Seating", "Great Views",
	"Hidden Gem", "Tourist Spot", "Local Favorite", "Casual",
	"Fast Casual", "Fine Dining", "All You Can Eat",
	"Authentic", "Scenic", "Cocktail Spot",
}

type Place struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	PlaceType    string   `json:"placeType,omitempty"`
	Cuisine      string   `json:"cuisine,omitempty"`
	TopItem      string   `json:"topItem,omitempty"`
	Rating       *int     `json:"rating"`
	IsFavorite   bool     `json:"isFavorite"`
	Price        Price    `json:"price,omitempty"`
	Tags         []string `json:"tags"`
	Notes        string   `json:"notes"`
	City         string   `json:"city,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	DateVisited  string   `json:"dateVisited,omitempty"`
	MapURL       string   `json:"mapUrl,omitempty"`
	WebsiteURL   string   `json:"websiteUrl,omitempty"`
	MenuURL      string   `json:"menuUrl,omitempty"`
	CreatedAt    int64    `json:"createdAt"`
	UpdatedAt    int64    `json:"updatedAt"`
}

// RatingValue returns the rating, or 0 when the place is unrated.
func (p Place) RatingValue() int {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// Clone returns a copy that shares no slices or pointers with p.
func (p Place) Clone() Place {
	c := p
	if p.Rating != nil {
		r := *p.Rating
		c.Rating = &r
	}
	c.Tags = append([]string{}, p.Tags...)
	return c
}

// NewPlace is the manual-entry form for a place.
type NewPlace struct {
	Name         string   `json:"name"`
	PlaceType    string   `json:"placeType"`
	Cuisine      string   `json:"cuisine"`
	TopItem      string   `json:"topItem"`
	Rating       *int     `json:"rating"`
	Price        Price    `json:"price"`
	Tags         []string `json:"tags"`
	Notes        string   `json:"notes"`
	City         string   `json:"city"`
	Neighborhood string   `json:"neighborhood"`
	DateVisited  string   `json:"dateVisited"`
	MapURL       string   `json:"mapUrl"`
	WebsiteURL   string   `json:"websiteUrl"`
	MenuURL      string   `json:"menuUrl"`
}

// PlaceUpdate is a partial update; nil fields are left untouched.
type PlaceUpdate struct {
	Name         *string   `json:"name,omitempty"`
	PlaceType    *string   `json:"placeType,omitempty"`
	Cuisine      *string   `json:"cuisine,omitempty"`
	TopItem      *string   `json:"topItem,omitempty"`
	Rating       *int      `json:"rating,omitempty"`
	ClearRating  bool      `json:"clearRating,omitempty"`
	IsFavorite   *bool     `json:"isFavorite,omitempty"`
	Price        *Price    `json:"price,omitempty"`
	ClearPrice   bool      `json:"clearPrice,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	City         *string   `json:"city,omitempty"`
	Neighborhood *string   `json:"neighborhood,omitempty"`
	DateVisited  *string   `json:"dateVisited,omitempty"`
	MapURL       *string   `json:"mapUrl,omitempty"`
	WebsiteURL   *string   `json:"websiteUrl,omitempty"`
	MenuURL      *string   `json:"menuUrl,omitempty"`
}

// Apply returns p with u applied and UpdatedAt refreshed to now. Validation of
// rating and price is the caller's job.
func (u PlaceUpdate) Apply(p Place, now time.Time) Place {
	next := p.Clone()
	setString(&next.Name, u.Name)
	setString(&next.PlaceType, u.PlaceType)
	setString(&next.Cuisine, u.Cuisine)
	setString(&next.TopItem, u.TopItem)
	setString(&next.Notes, u.Notes)
	setString(&next.City, u.City)
	setString(&next.Neighborhood, u.Neighborhood)
	setString(&next.DateVisited, u.DateVisited)
	setString(&next.MapURL, u.MapURL)
	setString(&next.WebsiteURL, u.WebsiteURL)
	setString(&next.MenuURL, u.MenuURL)

	switch {
	case u.ClearRating:
		next.Rating = nil
	case u.Rating != nil:
		r := *u.Rating
		next.Rating = &r
	}
	switch {
	case u.ClearPrice:
		next.Price = ""
	case u.Price != nil:
		next.Price = *u.Price
	}
	if u.IsFavorite != nil {
		next.IsFavorite = *u.IsFavorite
	}
	if u.Tags != nil {
		next.Tags = append([]string{}, (*u.Tags)...)
	}

	next.UpdatedAt = now.UnixMilli()
	if next.UpdatedAt < next.CreatedAt {
		next.UpdatedAt = next.CreatedAt
	}
	return next
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
