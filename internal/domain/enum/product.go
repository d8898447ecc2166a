package enum

// ProductCategory classifies what kind of eyewear product this is
type ProductCategory string

const (
	ProductCategoryFrame     ProductCategory = "frame"
	ProductCategoryLens      ProductCategory = "lens"
	ProductCategoryContact   ProductCategory = "contact"
	ProductCategoryAccessory ProductCategory = "accessory"
)

// Valid reports whether the category is a known product category
func (c ProductCategory) Valid() bool {
	switch c {
	case ProductCategoryFrame, ProductCategoryLens, ProductCategoryContact, ProductCategoryAccessory:
		return true
	}
	return false
}

func (c ProductCategory) String() string {
	return string(c)
}

// ManagementType determines how stock of a product is tracked: per physical
// unit with a serial number, or by count per store.
type ManagementType string

const (
	ManagementTypeIndividual ManagementType = "individual"
	ManagementTypeQuantity   ManagementType = "quantity"
)

// Valid reports whether the management type is known
func (m ManagementType) Valid() bool {
	return m == ManagementTypeIndividual || m == ManagementTypeQuantity
}

func (m ManagementType) String() string {
	return string(m)
}
