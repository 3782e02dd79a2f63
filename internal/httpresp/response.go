package httpresp

import "github.com/gin-gonic/gin"

type ListResponse[T any] struct {
	Data   []T   `json:"data"`
	Total  int64 `json:"total"`
	Pagina int   `json:"pagina"`
	Limite int   `json:"limite"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(201, data)
}

func List[T any](c *gin.Context, data []T, total int64, pagina, limite int) {
	c.JSON(200, ListResponse[T]{
		Data:   data,
		Total:  total,
		Pagina: pagina,
		Limite: limite,
	})
}
