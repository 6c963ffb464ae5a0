package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"goaguide/pkg/logger"
)

// respondInternalError логирует причину и отдает клиенту общее сообщение
func respondInternalError(c *gin.Context, err error, message string) {
	logger.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.FullPath()).
		Msg(message)

	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// queryInt разбирает целочисленный параметр; некорректное значение считается отсутствующим
func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return value
}
