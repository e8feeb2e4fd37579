package commerce

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

const productFields = `
fragment ProductFields on Product {
  id
  handle
  title
  description
  featuredImage { url altText }
  images(first: 5) { edges { node { url altText } } }
  priceRange { minVariantPrice { amount currencyCode } }
  variants(first: 10) {
    edges { node { id title availableForSale price { amount currencyCode } } }
  }
}`

const (
	menuQuery = `
query Menu($handle: String!) {
  menu(handle: $handle) {
    handle
    title
    items { title url type items { title url type } }
  }
}`

	productsQuery = `
query Products($first: Int!) {
  products(first: $first, sortKey: BEST_SELLING) {
    edges { node { ...ProductFields } }
  }
}` + productFields

	productByHandleQuery = `
query ProductByHandle($handle: String!) {
  product(handle: $handle) { ...ProductFields }
}` + productFields

	tourDatesQuery = `
query TourDates($first: Int!) {
  metaobjects(type: "tour_date", first: $first) {
    edges { node { id fields { key value } } }
  }
}`

	featuredArtistQuery = `
query FeaturedArtist {
  shop {
    name: metafield(namespace: "artist", key: "name") { value }
    bio: metafield(namespace: "artist", key: "bio") { value }
    image: metafield(namespace: "artist", key: "image_url") { value }
    video: metafield(namespace: "artist", key: "video_url") { value }
  }
}`
)

var queries = map[string]string{
	"Menu":            menuQuery,
	"Products":        productsQuery,
	"ProductByHandle": productByHandleQuery,
	"TourDates":       tourDatesQuery,
	"FeaturedArtist":  featuredArtistQuery,
}

// checkQueries parses every fixed query so a typo fails at start-up instead of
// on the first request.
func checkQueries() error {
	for name, q := range queries {
		doc, err := parser.ParseQuery(&ast.Source{Name: name, Input: q})
		if err != nil {
			return fmt.Errorf("query %s: %w", name, err)
		}
		if len(doc.Operations) != 1 || doc.Operations[0].Name != name {
			return fmt.Errorf("query %s: expected a single operation named %s", name, name)
		}
	}
	return nil
}
