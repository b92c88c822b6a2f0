package utils

import (
	"github.com/kataras/iris/v12"
)

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// PageParams reads the {page, limit} query convention with sane bounds.
func PageParams(ctx iris.Context) (page, limit int) {
	page = ctx.URLParamIntDefault("page", 1)
	limit = ctx.URLParamIntDefault("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func JSONPage(ctx iris.Context, data interface{}, page, limit int, total int64) {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	ctx.JSON(iris.Map{
		"success":    true,
		"data":       data,
		"pagination": Pagination{Total: total, Page: page, Limit: limit, TotalPages: totalPages},
	})
}

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{"success": false, "error": code, "message": message})
}
