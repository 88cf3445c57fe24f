package utils

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/tsingjyujing/langdetect/errs"
)

// EchoHandleDetectError maps a typed detection error to an HTTP response.
func EchoHandleDetectError(echoCtx *echo.Context, err error) error {
	switch errs.CodeOf(err) {
	case errs.CannotDetect:
		return echoCtx.JSON(http.StatusUnprocessableEntity, map[string]string{"status": err.Error()})
	case errs.InitParam:
		return EchoHandleGenericError(echoCtx, err, http.StatusBadRequest)
	case errs.ProfileNotLoaded, errs.FailedToInitialize:
		return EchoHandleGenericError(echoCtx, err, http.StatusServiceUnavailable)
	}
	return EchoHandleInternalError(echoCtx, err)
}

func EchoHandleGenericError(echoCtx *echo.Context, err error, status int) error {
	Logger.WithError(err).WithField("status", status).Error("Error handling request")
	return echoCtx.JSON(status, map[string]string{"status": err.Error()})
}

func EchoHandleInternalError(echoCtx *echo.Context, err error) error {
	return EchoHandleGenericError(echoCtx, err, http.StatusInternalServerError)
}

func EchoJsonResponse(echoCtx *echo.Context, data any, status int) error {
	jsonString, err := json.Marshal(data)
	if err != nil {
		return EchoHandleInternalError(echoCtx, err)
	}
	return echoCtx.JSONBlob(status, jsonString)
}
