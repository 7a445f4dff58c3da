package entities

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(total int64, page, limit int) Pagination {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return Pagination{Total: total, Page: page, Limit: limit, TotalPages: pages}
}
