package commerce

type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type PriceRange struct {
	MinVariantPrice *Money `json:"minVariantPrice,omitempty"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

type Variant struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	AvailableForSale bool   `json:"availableForSale"`
	Price            Money  `json:"price"`
}

// Product is a storefront product flattened out of its GraphQL connections.
type Product struct {
	ID            string     `json:"id"`
	Handle        string     `json:"handle"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	FeaturedImage *Image     `json:"featuredImage,omitempty"`
	Images        []Image    `json:"images,omitempty"`
	PriceRange    PriceRange `json:"priceRange"`
	Variants      []Variant  `json:"variants,omitempty"`
}

// Price returns the minimum variant price amount, or "" when the product has none.
func (p Product) Price() string {
	if p.PriceRange.MinVariantPrice == nil {
		return ""
	}
	return p.PriceRange.MinVariantPrice.Amount
}

// ImageURL returns the featured image, falling back to the first gallery image.
func (p Product) ImageURL() string {
	if p.FeaturedImage != nil && p.FeaturedImage.URL != "" {
		return p.FeaturedImage.URL
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

type MenuItem struct {
	Title string     `json:"title"`
	URL   string     `json:"url"`
	Type  string     `json:"type,omitempty"`
	Items []MenuItem `json:"items,omitempty"`
}

type Menu struct {
	Handle string     `json:"handle"`
	Title  string     `json:"title"`
	Items  []MenuItem `json:"items"`
}

// TourDate is a `tour_date` metaobject.
type TourDate struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Venue     string `json:"venue"`
	City      string `json:"city"`
	Country   string `json:"country,omitempty"`
	TicketURL string `json:"ticketUrl,omitempty"`
	SoldOut   bool   `json:"soldOut"`
}

// FeaturedArtist is assembled from the shop's `artist` namespace metafields.
type FeaturedArtist struct {
	Name     string `json:"name"`
	Bio      string `json:"bio,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
}
