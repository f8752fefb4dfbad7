package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resto/entity"
	"resto/model"
	"resto/pos"
	"resto/utils"
)

// Handler opens sessions for employees. There are no passwords: a session
// only carries the permissions of the employee's role.
type Handler struct {
	restaurant      *pos.Restaurant
	tokens          *utils.Tokens
	rolePermissions map[string][]string
}

func NewHandler(r *pos.Restaurant, tokens *utils.Tokens, rolePermissions map[string][]string) *Handler {
	return &Handler{restaurant: r, tokens: tokens, rolePermissions: rolePermissions}
}

func (h *Handler) Session(c *gin.Context) {
	type Request struct {
		EmployeeID int64 `json:"employee_id" form:"employee_id" binding:"required"`
	}

	var req Request
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "employee_id is required"})
		return
	}

	employee, err := h.restaurant.Employees.Get(req.EmployeeID)
	if errors.Is(err, entity.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Employee not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if employee.Status != model.EmployeeActive {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Employee is inactive"})
		return
	}

	session := utils.Session{
		EmployeeID:  employee.ID,
		Role:        string(employee.Role),
		Permissions: h.rolePermissions[string(employee.Role)],
	}
	access, refresh, err := h.tokens.GenerateTokens(session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"access_token":  access,
		"refresh_token": refresh,
		"data":          session,
	})
}

func (h *Handler) RefreshToken(c *gin.Context) {
	type Request struct {
		RefreshToken string `json:"refresh_token" form:"refresh_token" binding:"required"`
	}

	var req Request
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "refresh_token is required"})
		return
	}

	access, refresh, err := h.tokens.RefreshTokens(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"access_token":  access,
		"refresh_token": refresh,
	})
}
