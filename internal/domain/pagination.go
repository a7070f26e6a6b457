package domain

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type ListQuery struct {
	Page     int
	PageSize int
	Status   *Status
}

func DefaultListQuery() ListQuery {
	return ListQuery{Page: DefaultPage, PageSize: DefaultPageSize}
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

type Pagination struct {
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
	HasNext     bool
	HasPrev     bool
}

func NewPagination(page, pageSize, totalItems int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}
	return Pagination{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

type OrderPage struct {
	Orders     []Order
	Pagination Pagination
}
