package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waypoint-app/waypoint/internal/services"
)

// PlaceQR renders the QR code for a place's detail URL as a PNG.
func PlaceQR(s *services.PlaceService, q *services.QRService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		// The place must exist before a code for it is issued.
		if _, err := s.Detail(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}

		png, err := q.EncodePlace(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}
