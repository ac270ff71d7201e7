package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"backend/pkg/apperror"
	"backend/pkg/response"
)

// invalidPayload normalizes gin binding failures into a validation error.
func invalidPayload(err error) error {
	return apperror.Validationf("invalid request payload: %s", err.Error())
}

// fail writes the error envelope with the HTTP status derived from the
// error's kind.
func fail(c *gin.Context, err error) {
	c.JSON(apperror.Status(err), response.Fail(err))
}

// pathID parses the :id route parameter as a UUID.
func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.Validationf("invalid id")
	}
	return id, nil
}

// listPayload is the standard shape for paginated list data.
func listPayload(key string, items interface{}, total int64, skip, limit int) map[string]interface{} {
	return map[string]interface{}{
		key:     items,
		"total": total,
		"skip":  skip,
		"limit": limit,
	}
}
