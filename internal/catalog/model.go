package catalog

// Product is the sellable catalog entry. This service only reads it;
// the price captured at order time is OfferPrice.
type Product struct {
	ID         string `json:"productId"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Price      int64  `json:"price"`
	OfferPrice int64  `json:"offerPrice"`
	InStock    bool   `json:"inStock"`
}
