package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"nursery/orders"
)

// respondError translates the order subsystem's error taxonomy into the JSON
// envelope and status code the API promises. Internal failures only leak
// their detail outside release mode.
func respondError(c *gin.Context, err error) {
	status := orders.HTTPStatus(err)
	message := "Internal server error"

	var oe *orders.Error
	if errors.As(err, &oe) {
		if oe.Kind != orders.KindInternal || gin.Mode() != gin.ReleaseMode {
			message = oe.Error()
		} else {
			message = oe.Message
		}
	}

	body := gin.H{"success": false, "message": message}
	for k, v := range orders.Details(err) {
		body[k] = v
	}
	c.JSON(status, body)
}
