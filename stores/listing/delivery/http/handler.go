package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campustrade/goapi/base/ctx"
	"github.com/campustrade/goapi/base/delivery"
	"github.com/campustrade/goapi/base/metrics"
	"github.com/campustrade/goapi/domain"
	"github.com/campustrade/goapi/domain/listing"
	"github.com/campustrade/goapi/middleware"
)

var met metrics.Service

type handler struct {
	listing listing.UseCase
}

func New(e *echo.Echo, uc listing.UseCase) {
	met = metrics.New("listing")

	h := &handler{uc}

	gs := e.Group("/listings")

	gs.POST("", h.create)

	gs.GET("", h.search, middleware.CacheHttp(30*time.Second))

	gs.GET("/stats/overview", h.stats, middleware.CacheHttp(1*time.Minute))

	g := e.Group("/listings/:id")

	g.GET("", h.get)

	g.POST("/bid", h.placeBid)

	g.POST("/buy-now", h.buyNow)

	g.POST("/watch", h.watch)

	g.POST("/questions", h.askQuestion)

	g.PUT("/questions/:questionId/answer", h.answerQuestion)

	g.PUT("/status", h.setStatus)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &listing.Listing{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.Create(ctx, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	met.BumpSum("create.count", 1, "category", string(res.Category))

	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Category    *string  `query:"category"`
		Condition   *string  `query:"condition"`
		PricingType *string  `query:"pricingType"`
		Status      *string  `query:"status"`
		Seller      *string  `query:"seller"`
		MinPrice    *float64 `query:"minPrice"`
		MaxPrice    *float64 `query:"maxPrice"`
		Search      *string  `query:"search"`
		Tag         *string  `query:"tag"`
		Page        int32    `query:"page"`
		Limit       int32    `query:"limit"`
		SortBy      *string  `query:"sortBy"`
		SortOrder   *string  `query:"sortOrder"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []listing.FindAllOptionsFunc{}

	if p.Category != nil {
		opts = append(opts, listing.WithCategory(listing.Category(*p.Category)))
	}

	if p.Condition != nil {
		opts = append(opts, listing.WithCondition(listing.Condition(*p.Condition)))
	}

	if p.PricingType != nil {
		opts = append(opts, listing.WithPricingType(listing.PricingType(*p.PricingType)))
	}

	if p.Status != nil {
		status, err := listing.ToStatus(*p.Status)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
		opts = append(opts, listing.WithStatus(status))
	} else {
		opts = append(opts, listing.WithStatus(listing.StatusActive))
	}

	if p.Seller != nil {
		opts = append(opts, listing.WithSellerEmail(domain.Email(*p.Seller)))
	}

	if p.MinPrice != nil || p.MaxPrice != nil {
		opts = append(opts, listing.WithPriceRange(p.MinPrice, p.MaxPrice))
	}

	if p.Search != nil {
		opts = append(opts, listing.WithSearch(*p.Search))
	}

	if p.Tag != nil {
		opts = append(opts, listing.WithTag(*p.Tag))
	}

	limit := p.Limit
	if limit <= 0 {
		limit = 12
	}
	page := p.Page
	if page <= 0 {
		page = 1
	}
	opts = append(opts, listing.WithPagination((page-1)*limit, limit))

	if p.SortBy != nil {
		desc := p.SortOrder == nil || *p.SortOrder != "asc"
		opts = append(opts, listing.WithSort(*p.SortBy, desc))
	}

	res, err := h.listing.Search(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Id listing.Id `param:"id"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.listing.Get(ctx, p.Id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Id     listing.Id      `param:"id"`
		Bidder listing.Contact `json:"bidder" validate:"required"`
		Amount float64         `json:"amount" validate:"required,gte=1"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.PlaceBid(ctx, p.Id, p.Bidder, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	met.BumpSum("bid.count", 1, "listing", string(p.Id))

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) buyNow(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Id            listing.Id            `param:"id"`
		Buyer         listing.Contact       `json:"buyer" validate:"required"`
		PaymentMethod listing.PaymentMethod `json:"paymentMethod"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.BuyNow(ctx, p.Id, p.Buyer, p.PaymentMethod)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	met.BumpSum("buynow.count", 1, "listing", string(p.Id))

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) watch(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Id      listing.Id      `param:"id"`
		Watcher listing.Contact `json:"watcher" validate:"required"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	count, err := h.listing.Watch(ctx, p.Id, p.Watcher)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	type response struct {
		WatchersCount int `json:"watchersCount"`
	}

	return delivery.MakeJsonResp(c, http.StatusOK, response{count})
}

func (h *handler) askQuestion(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Id         listing.Id      `param:"id"`
		Questioner listing.Contact `json:"questioner" validate:"required"`
		Question   string          `json:"question" validate:"required,max=1000"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.AskQuestion(ctx, p.Id, p.Questioner, p.Question)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) answerQuestion(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Id         listing.Id `param:"id"`
		QuestionId string     `param:"questionId"`
		Answer     string     `json:"answer" validate:"required,max=1000"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.AnswerQuestion(ctx, p.Id, p.QuestionId, p.Answer)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) setStatus(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Id     listing.Id `param:"id"`
		Status string     `json:"status" validate:"required"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.SetStatus(ctx, p.Id, listing.Status(p.Status))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) stats(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.listing.Stats(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
