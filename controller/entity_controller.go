package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resto/entity"
	"resto/form"
	"resto/query"
	"resto/utils"
)

// EntityController serves the list, form and delete endpoints of one entity.
type EntityController[T any] struct {
	Repo  *entity.Repository[T]
	Query query.Spec[T]
	Form  func(form.Capabilities) *form.Controller[T]
}

func (ec *EntityController[T]) List(c *gin.Context) {
	var req query.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	req.Direction = query.ParseDirection(string(req.Direction))

	page := query.Run(ec.Query, ec.Repo.List(), req)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": page})
}

func (ec *EntityController[T]) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rec, err := ec.Repo.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rec})
}

func (ec *EntityController[T]) Add(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	delete(body, "id")

	f := ec.Form(utils.Capabilities(c))
	f.OpenForCreate()
	if err := f.SetFields(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	rec, err := f.Submit(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": ec.Repo.Name() + " record added", "data": rec})
}

func (ec *EntityController[T]) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	delete(body, "id")

	current, err := ec.Repo.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	f := ec.Form(utils.Capabilities(c))
	if err := f.OpenForEdit(current); err != nil {
		respondError(c, err)
		return
	}
	if err := f.SetFields(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	rec, err := f.Submit(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": ec.Repo.Name() + " record updated", "data": rec})
}

// Delete removes the record only when the request carries confirm=true.
func (ec *EntityController[T]) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	confirmed := c.Query("confirm") == "true"

	f := ec.Form(utils.Capabilities(c))
	deleted, err := f.Delete(c.Request.Context(), id, func() bool { return confirmed })
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Deletion not confirmed", "data": gin.H{"deleted": false}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": ec.Repo.Name() + " record deleted", "data": gin.H{"deleted": true}})
}

// Register mounts the standard endpoints under group.
func (ec *EntityController[T]) Register(group *gin.RouterGroup) {
	group.GET("", ec.List)
	group.GET("/:id", ec.Get)
	group.POST("/add", ec.Add)
	group.PUT("/update/:id", ec.Update)
	group.DELETE("/delete/:id", ec.Delete)
}
