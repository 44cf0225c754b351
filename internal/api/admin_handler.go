package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *api) listUsers(c *gin.Context) {
	users, err := a.deps.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (a *api) dashboardStats(c *gin.Context) {
	dash, err := a.deps.Stats.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}
