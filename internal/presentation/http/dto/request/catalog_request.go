package request

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search         string `form:"search"`
	Category       string `form:"category"`
	ManagementType string `form:"management_type"`
	Page           int    `form:"page"`
	PerPage        int    `form:"per_page"`
}
