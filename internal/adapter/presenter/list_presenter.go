package presenter

import (
	"github.com/johnquangdev/sales-review/internal/adapter/dto/common"
)

// ToListResponse wraps one page of items with its pagination metadata
func ToListResponse(items interface{}, limit, offset int, total int64) *common.ListResponse {
	return &common.ListResponse{
		Items: items,
		Pagination: &common.PaginationResponse{
			Limit:  limit,
			Offset: offset,
			Total:  total,
		},
	}
}
