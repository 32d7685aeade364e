package handler

import (
	"net/http"

	"liblend/internal/api/dto"
	"liblend/internal/api/service"

	"github.com/gin-gonic/gin"
)

type LoanHandler struct {
	loanService service.LoanService
}

func NewLoanHandler(loanService service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// RegisterRoutes registers borrow/return and loan record routes
func (h *LoanHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/users/:userId/borrow/:bookId", h.Borrow)
	router.POST("/users/:userId/return/:bookId", h.Return)
	router.PATCH("/books/:bookId/users/:userId/score", h.AmendScore)
	router.DELETE("/loan-records/users/:userId/books/:bookId", h.DeleteLoanRecord)
}

// Borrow opens a loan
// POST /users/:userId/borrow/:bookId
func (h *LoanHandler) Borrow(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return
	}

	if _, err := h.loanService.Borrow(c.Request.Context(), userID, bookID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Return closes the open loan and records the score
// POST /users/:userId/return/:bookId
func (h *LoanHandler) Return(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return
	}

	var req dto.ReturnBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Score must be an integer between 1 and 10"})
		return
	}

	if err := h.loanService.Return(c.Request.Context(), userID, bookID, req.Score); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AmendScore rewrites the score on the latest closed loan for the pair
// PATCH /books/:bookId/users/:userId/score
func (h *LoanHandler) AmendScore(c *gin.Context) {
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	var req dto.AmendScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "newScore must be an integer between 0 and 10"})
		return
	}

	if err := h.loanService.AmendScore(c.Request.Context(), userID, bookID, *req.NewScore); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Score updated successfully"})
}

// DeleteLoanRecord removes a loan record, open or closed
// DELETE /loan-records/users/:userId/books/:bookId
func (h *LoanHandler) DeleteLoanRecord(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return
	}

	if err := h.loanService.DeleteLoanRecord(c.Request.Context(), userID, bookID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
