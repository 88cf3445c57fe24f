package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/tsingjyujing/langdetect/detector"
	"github.com/tsingjyujing/langdetect/utils"
)

var logger = logrus.StandardLogger()

type Controller struct {
	factory    *detector.Factory
	detections *prometheus.CounterVec
}

// NewController registers the detection counter on registerer. A nil
// registerer keeps the counter unregistered.
func NewController(factory *detector.Factory, registerer prometheus.Registerer) (*Controller, error) {
	detections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "langdetect_detections_total",
		Help: "Number of detection requests by detected language.",
	}, []string{"language"})
	if registerer != nil {
		if err := registerer.Register(detections); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return nil, err
			}
			detections = already.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	return &Controller{factory: factory, detections: detections}, nil
}

type DetectParams struct {
	Text  string             `json:"text"`
	Prior map[string]float64 `json:"prior,omitempty"`
	Alpha *float64           `json:"alpha,omitempty"`
	Seed  *uint64            `json:"seed,omitempty"`
}

type DetectResult struct {
	Language      string              `json:"language"`
	Probabilities []detector.Language `json:"probabilities"`
	RequestID     string              `json:"request_id"`
}

func (c *Controller) Detect(echoCtx *echo.Context) error {
	param := DetectParams{}
	if err := echoCtx.Bind(&param); err != nil {
		return utils.EchoHandleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	if strings.TrimSpace(param.Text) == "" {
		return utils.EchoHandleGenericError(echoCtx, errors.New("text is required"), http.StatusBadRequest)
	}

	var d *detector.Detector
	if param.Seed != nil {
		d = c.factory.CreateSeeded(*param.Seed)
	} else {
		d = c.factory.Create()
	}
	if param.Alpha != nil {
		d.SetAlpha(*param.Alpha)
	}
	if param.Prior != nil {
		if err := d.SetPriorMap(param.Prior); err != nil {
			return utils.EchoHandleDetectError(echoCtx, err)
		}
	}
	d.Append(param.Text)

	probabilities, err := d.GetProbabilities()
	if err != nil {
		c.detections.WithLabelValues(detector.Unknown).Inc()
		return utils.EchoHandleDetectError(echoCtx, err)
	}
	language := detector.Unknown
	if len(probabilities) > 0 {
		language = probabilities[0].Lang
	}
	c.detections.WithLabelValues(language).Inc()

	result := DetectResult{
		Language:      language,
		Probabilities: probabilities,
		RequestID:     uuid.NewString(),
	}
	logger.WithField("request_id", result.RequestID).WithField("language", language).Debug("Detected language")
	return utils.EchoJsonResponse(echoCtx, result, http.StatusOK)
}

// ListLanguages returns the languages of the model in index order.
func (c *Controller) ListLanguages(echoCtx *echo.Context) error {
	return echoCtx.JSON(http.StatusOK, c.factory.Languages())
}

type BatchDetectParams struct {
	Texts []string `json:"texts"`
}

type BatchDetectItem struct {
	Language      string              `json:"language"`
	Probabilities []detector.Language `json:"probabilities"`
	Error         string              `json:"error,omitempty"`
}

// BatchDetect classifies each text independently. Texts without features are
// reported per item instead of failing the whole request.
func (c *Controller) BatchDetect(echoCtx *echo.Context) error {
	param := BatchDetectParams{}
	if err := echoCtx.Bind(&param); err != nil {
		return utils.EchoHandleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	if len(param.Texts) == 0 {
		return utils.EchoHandleGenericError(echoCtx, errors.New("texts is required"), http.StatusBadRequest)
	}
	items := lo.Map(param.Texts, func(text string, _ int) BatchDetectItem {
		d := c.factory.Create()
		d.Append(text)
		probabilities, err := d.GetProbabilities()
		if err != nil {
			c.detections.WithLabelValues(detector.Unknown).Inc()
			return BatchDetectItem{Language: detector.Unknown, Probabilities: []detector.Language{}, Error: err.Error()}
		}
		language := detector.Unknown
		if len(probabilities) > 0 {
			language = probabilities[0].Lang
		}
		c.detections.WithLabelValues(language).Inc()
		return BatchDetectItem{Language: language, Probabilities: probabilities}
	})
	return utils.EchoJsonResponse(echoCtx, items, http.StatusOK)
}
