package routes

import (
	"github.com/stringfold/ally/internal/service/login"

	"github.com/gin-gonic/gin"
)

func SetupReddit(r *gin.Engine, handler *login.Handler) {
	reddit := r.Group("/reddit")
	{
		reddit.GET("", handler.IndexHandler())
		reddit.GET("/redirect", handler.RedirectHandler())
		reddit.GET("/callback", handler.CallbackHandler())
		reddit.POST("/logout", handler.LogoutHandler())
	}
}
