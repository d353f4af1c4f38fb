package product

import dbproduct "com.martdev.kitchenrack/internal/database/product"

// computeDisplayPrices resolves the price a listing should show. A product
// with variants displays the cheapest variant's regular price and, when any
// variant is on sale, the cheapest sale price. Without variants the product's
// own prices are used.
func computeDisplayPrices(product *dbproduct.Product) (float64, *float64) {
	if !product.HasVariants || len(product.Variants) == 0 {
		return product.Price, product.SalePrice
	}

	displayPrice := product.Variants[0].Price
	var displaySalePrice *float64

	for i := range product.Variants {
		variant := &product.Variants[i]
		if variant.Price < displayPrice {
			displayPrice = variant.Price
		}
		if variant.SalePrice != nil {
			if displaySalePrice == nil || *variant.SalePrice < *displaySalePrice {
				salePrice := *variant.SalePrice
				displaySalePrice = &salePrice
			}
		}
	}

	return displayPrice, displaySalePrice
}
