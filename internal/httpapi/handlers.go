package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thomasdelmas/Ecommerce-sub000/bulk"
	"github.com/thomasdelmas/Ecommerce-sub000/entity"
)

const (
	defaultPage    = 1
	defaultPerPage = 20
)

type handler[I any, E any] struct {
	svc            EntityService[I, E]
	rejectedStatus int
}

type deleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type creationResponse[I any, E any] struct {
	Status   string              `json:"status"`
	Created  []E                 `json:"created"`
	Rejected []bulk.Rejection[I] `json:"rejected"`
}

type deletionResponse struct {
	Status string `json:"status"`
	bulk.DeletionResult
}

type pageResponse[E any] struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Items   []E `json:"items"`
}

func (h *handler[I, E]) createBatch(c *gin.Context) {
	var inputs []I
	if err := c.ShouldBindJSON(&inputs); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.svc.CreateBatch(c.Request.Context(), inputs)
	if err != nil {
		writeError(c, err)
		return
	}

	status := result.Status()
	c.JSON(h.creationStatus(status), creationResponse[I, E]{
		Status:   status.String(),
		Created:  result.Created,
		Rejected: result.Rejected,
	})
}

func (h *handler[I, E]) creationStatus(s bulk.Status) int {
	switch s {
	case bulk.StatusComplete:
		return http.StatusCreated
	case bulk.StatusPartial:
		return http.StatusMultiStatus
	case bulk.StatusFailed:
		return h.rejectedStatus
	default:
		return http.StatusOK
	}
}

func (h *handler[I, E]) deleteBatch(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.svc.DeleteBatch(c.Request.Context(), req.IDs)
	if err != nil {
		writeError(c, err)
		return
	}

	status := result.Status()
	c.JSON(deletionStatus(status), deletionResponse{Status: status.String(), DeletionResult: result})
}

func deletionStatus(s bulk.Status) int {
	switch s {
	case bulk.StatusPartial:
		return http.StatusMultiStatus
	case bulk.StatusFailed:
		return http.StatusNotFound
	default:
		return http.StatusOK
	}
}

func (h *handler[I, E]) deleteOne(c *gin.Context) {
	id := c.Param("id")

	deleted, ok, err := h.svc.DeleteOne(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"id": id, "error": entity.NotFoundReason(h.svc.Kind())})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": deleted})
}

func (h *handler[I, E]) search(c *gin.Context) {
	page, err := queryInt(c, "page", defaultPage)
	if err != nil {
		badRequest(c, err)
		return
	}
	perPage, err := queryInt(c, "per_page", defaultPerPage)
	if err != nil {
		badRequest(c, err)
		return
	}

	var spec entity.FilterSpec
	if err := c.ShouldBindJSON(&spec); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	items, err := h.svc.ReadFiltered(c.Request.Context(), spec, page, perPage)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, pageResponse[E]{Page: page, PerPage: perPage, Items: items})
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return v, nil
}
