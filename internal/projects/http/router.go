package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/mine", h.mine)
	rg.GET("/creator/:username", h.byCreator)
	rg.GET("/:public_id", h.get)
	rg.DELETE("/:public_id", h.delete)
}
