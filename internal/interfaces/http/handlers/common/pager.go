package common

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/infrastructure/backend"
	"github.com/ilim-academy/website/internal/interfaces/http/view"
)

// NewPager links the neighbouring pages of a list, keeping the other query
// parameters of the current request.
func NewPager(c *gin.Context, p backend.Pagination) view.Pager {
	pager := view.Pager{
		Page:       max(p.Page, 1),
		TotalPages: max(p.TotalPages, 1),
		Total:      p.Total,
	}
	if pager.Page > 1 {
		pager.PrevURL = pageURL(c, pager.Page-1)
	}
	if pager.Page < pager.TotalPages {
		pager.NextURL = pageURL(c, pager.Page+1)
	}
	return pager
}

func pageURL(c *gin.Context, page int) string {
	q := c.Request.URL.Query()
	q.Set("page", strconv.Itoa(page))
	return c.Request.URL.Path + "?" + q.Encode()
}
