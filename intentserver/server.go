package intentserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/copier"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/fabriqs/paysheet/intentserver/docs"
	"github.com/fabriqs/paysheet/payment"
)

type Options struct {
	Provider       payment.Provider
	Price          payment.Money
	Description    string
	PublishableKey string
	Log            *logrus.Entry
}

type createIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type confirmIntentRequest struct {
	ClientSecret string `json:"clientSecret" validate:"required"`
}

// intentResponse never carries the client secret.
type intentResponse struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	AmountMinor int64     `json:"amount"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"createdAt"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Server issues client secrets for the fixed-price purchase and confirms them.
type Server struct {
	provider       payment.Provider
	price          payment.Money
	description    string
	publishableKey string
	log            *logrus.Entry
}

func New(opts Options) *Server {
	return &Server{
		provider:       opts.Provider,
		price:          opts.Price,
		description:    opts.Description,
		publishableKey: opts.PublishableKey,
		log:            opts.Log,
	}
}

// Echo builds the HTTP handler.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.WithFields(logrus.Fields{
				"method": v.Method,
				"uri":    v.URI,
				"status": v.Status,
			}).Debug("request")
			return nil
		},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.POST("/create-payment-intent", s.createIntent)

	intents := e.Group("/payment-intents")
	intents.POST("/confirm", s.confirmIntent, middleware.KeyAuth(func(key string, c echo.Context) (bool, error) {
		return key == s.publishableKey, nil
	}))
	intents.GET("/:id", s.getIntent)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// @Summary	Create a payment intent for the fixed-price purchase
// @Tags		payment-intents
// @Produce	json
// @Success	200	{object}	createIntentResponse
// @Failure	500	{object}	errorResponse
// @Router		/create-payment-intent [post]
func (s *Server) createIntent(c echo.Context) error {
	intent, err := s.provider.CreateIntent(c.Request().Context(), &payment.IntentRequest{
		Amount:             s.price,
		Description:        s.description,
		PaymentMethodTypes: []string{"card", "google_pay"},
	})
	if err != nil {
		s.log.WithError(err).Error("create payment intent")
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "could not create payment intent"})
	}

	s.log.WithField("intent", intent.ID).Info("payment intent created")
	return c.JSON(http.StatusOK, createIntentResponse{ClientSecret: string(intent.ClientSecret)})
}

// @Summary	Confirm a payment intent with its client secret
// @Tags		payment-intents
// @Accept		json
// @Produce	json
// @Param		request	body		confirmIntentRequest	true	"Client secret"
// @Success	200		{object}	intentResponse
// @Failure	400		{object}	errorResponse
// @Failure	404		{object}	errorResponse
// @Failure	409		{object}	errorResponse
// @Security	PublishableKey
// @Router		/payment-intents/confirm [post]
func (s *Server) confirmIntent(c echo.Context) error {
	var req confirmIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "clientSecret is required"})
	}

	intent, err := s.provider.ConfirmIntent(c.Request().Context(), payment.ClientSecret(req.ClientSecret))
	if err != nil {
		return s.intentError(c, err)
	}

	s.log.WithField("intent", intent.ID).Info("payment intent confirmed")
	return s.intentJSON(c, intent)
}

// @Summary	Get a payment intent
// @Tags		payment-intents
// @Produce	json
// @Param		id	path		string	true	"Intent ID"
// @Success	200	{object}	intentResponse
// @Failure	404	{object}	errorResponse
// @Router		/payment-intents/{id} [get]
func (s *Server) getIntent(c echo.Context) error {
	intent, err := s.provider.GetIntent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.intentError(c, err)
	}
	return s.intentJSON(c, intent)
}

func (s *Server) intentJSON(c echo.Context, intent *payment.Intent) error {
	var resp intentResponse
	if err := copier.Copy(&resp, intent); err != nil {
		return err
	}
	resp.AmountMinor = intent.Amount.Amount
	resp.Currency = intent.Amount.Currency
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) intentError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, payment.ErrIntentNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Message: err.Error()})
	case errors.Is(err, payment.ErrInvalidClientSecret):
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, payment.ErrIntentNotConfirmable):
		return c.JSON(http.StatusConflict, errorResponse{Message: err.Error()})
	default:
		s.log.WithError(err).Error("payment intent request failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "internal error"})
	}
}

// StartSweeper removes stale intents every interval until ctx is done.
func StartSweeper(ctx context.Context, provider *MemoryProvider, ttl, interval time.Duration, log *logrus.Entry) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(interval).Do(provider.Sweep, ttl); err != nil {
		return nil, err
	}
	scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		scheduler.Stop()
		log.Debug("intent sweeper stopped")
	}()
	return scheduler, nil
}
