package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error messages returned to clients.
const (
	msgNoAlgorithms  = "No sorting algorithms available"
	msgInvalidBody   = "invalid request body"
	msgBodyTooLarge  = "request body too large"
	msgRateLimited   = "rate limit exceeded"
	msgInputTooLong  = "input has %d values, the limit is %d"
	msgCORSForbidden = "origin not allowed"
)

// sortRequest is the body of both sort endpoints. A missing data field is
// an empty input.
type sortRequest struct {
	Data []int `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	data, ok := s.bindData(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, s.analyzer.Analyze(c.Request.Context(), data))
}

func (s *Server) handleBest(c *gin.Context) {
	data, ok := s.bindData(c)
	if !ok {
		return
	}

	best, found := s.analyzer.GetBest(c.Request.Context(), data)
	if !found {
		c.JSON(http.StatusNotFound, errorResponse{Error: msgNoAlgorithms})

		return
	}

	c.JSON(http.StatusOK, best)
}

// bindData decodes the request and enforces the input length cap. On
// failure it writes the error response and returns false.
func (s *Server) bindData(c *gin.Context) ([]int, bool) {
	var req sortRequest

	err := c.ShouldBindJSON(&req)

	var tooLarge *http.MaxBytesError

	switch {
	case err == nil, errors.Is(err, io.EOF):
	case errors.As(err, &tooLarge):
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, errorResponse{Error: msgBodyTooLarge})

		return nil, false
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msgInvalidBody + ": " + err.Error()})

		return nil, false
	}

	if s.maxInputLength > 0 && len(req.Data) > s.maxInputLength {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf(msgInputTooLong, len(req.Data), s.maxInputLength),
		})

		return nil, false
	}

	if req.Data == nil {
		req.Data = []int{}
	}

	return req.Data, true
}
