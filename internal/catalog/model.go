package catalog

// Game is one top-up product line in the storefront.
type Game struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	Regionable  bool   `json:"regionable"`
	UIDRequired bool   `json:"uid_required"`
}

// Region is one selectable region of a regionable game.
type Region struct {
	GameID    string `json:"game_id"`
	RegionKey string `json:"region_key"`
	Name      string `json:"name"`
	Flag      string `json:"flag"`
}

// Package is one purchasable denomination. Price is in minor units (sen);
// it is the display price only, orders lock their own price at checkout.
type Package struct {
	ID        string `json:"id"`
	GameID    string `json:"game_id"`
	RegionKey string `json:"region_key,omitempty"`
	Label     string `json:"label"`
	Price     int64  `json:"price"`
}
