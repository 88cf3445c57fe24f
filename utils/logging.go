package utils

import (
	"time"

	"github.com/labstack/echo/v5"
	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// SetVerbose enables debug logging on Logger and on the standard logger used
// by the library packages.
func SetVerbose() {
	Logger.SetLevel(logrus.DebugLevel)
	logrus.SetLevel(logrus.DebugLevel)
}

// RequestLogger logs every request handled by the group it is attached to.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			start := time.Now()
			err := next(c)
			entry := Logger.WithField("method", c.Request().Method).
				WithField("uri", c.Request().RequestURI).
				WithField("latency", time.Since(start))
			if err != nil {
				entry.WithError(err).Warn("Request failed")
			} else {
				entry.Info("Request handled")
			}
			return err
		}
	}
}
