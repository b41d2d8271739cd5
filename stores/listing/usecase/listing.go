package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/campustrade/goapi/base/backoff"
	"github.com/campustrade/goapi/base/ctx"
	"github.com/campustrade/goapi/base/log"
	"github.com/campustrade/goapi/domain"
	"github.com/campustrade/goapi/domain/keys"
	"github.com/campustrade/goapi/domain/listing"
	"github.com/campustrade/goapi/service/cache"
)

const (
	defaultBidIncrement = 10
	defaultPageSize     = 12
	// versioned writes retry this many times on a lost race before
	// surfacing the conflict
	maxVersionRetries = 3

	endingSoonWindow = 24 * time.Hour
	endingSoonLimit  = 5

	retryBackoffStart = 5 * time.Millisecond
	retryBackoffLimit = 50 * time.Millisecond
)

type ListingUseCaseCfg struct {
	ListingRepo listing.Repo
	// StatsCache is optional. When set the stats overview is served
	// from cache.
	StatsCache cache.Service
}

type impl struct {
	listingRepo listing.Repo
	statsCache  cache.Service
}

func New(cfg *ListingUseCaseCfg) listing.UseCase {
	return &impl{
		listingRepo: cfg.ListingRepo,
		statsCache:  cfg.StatsCache,
	}
}

func (im *impl) Create(c ctx.Ctx, l *listing.Listing) (*listing.Listing, error) {
	now := time.Now()

	l.Id = listing.Id(uuid.New().String())
	l.Seller.Email = l.Seller.Email.ToLower()
	l.Pricing.CurrentBid = 0
	if l.Pricing.Currency == "" {
		l.Pricing.Currency = listing.CurrencyBDT
	}
	if l.Auction.StartDate.IsZero() {
		l.Auction.StartDate = now
	}
	if l.Auction.BidIncrement == 0 {
		l.Auction.BidIncrement = defaultBidIncrement
	}
	if l.Location.MeetingPreference == "" {
		l.Location.MeetingPreference = listing.MeetingPreferenceCampusOnly
	}
	if l.Status == "" {
		l.Status = listing.StatusActive
	}
	l.Bids = []listing.Bid{}
	l.Watchers = []listing.Watcher{}
	l.Questions = []listing.Question{}
	l.Transaction = nil
	l.Views = 0
	l.Version = 0
	l.CreatedAt = now
	l.UpdatedAt = now

	if l.Status != listing.StatusDraft && l.Status != listing.StatusActive {
		return nil, domain.ErrBadParamInput
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	if err := im.listingRepo.Create(c, l); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  l.Id,
		}).Error("failed to listingRepo.Create")
		return nil, err
	}
	return l, nil
}

func (im *impl) Get(c ctx.Ctx, id listing.Id) (*listing.View, error) {
	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	// view counting is best effort and must not fail the read
	if err := im.listingRepo.IncrementViews(c, id, 1); err == nil {
		l.Views++
	}

	return l.ToView(time.Now()), nil
}

func (im *impl) Search(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) (*listing.SearchResult, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	limit := int32(defaultPageSize)
	offset := int32(0)
	if options.Limit != nil && *options.Limit > 0 {
		limit = *options.Limit
	}
	if options.Offset != nil && *options.Offset > 0 {
		offset = *options.Offset
	}
	opts = append(opts, listing.WithPagination(offset, limit))
	if options.SortBy == nil {
		opts = append(opts, listing.WithSort("createdAt", true))
	}

	items, err := im.listingRepo.FindAll(c, opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("failed to listingRepo.FindAll")
		return nil, err
	}

	total, err := im.listingRepo.Count(c, opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("failed to listingRepo.Count")
		return nil, err
	}

	now := time.Now()
	views := make([]*listing.View, 0, len(items))
	for _, item := range items {
		views = append(views, item.ToView(now))
	}

	totalPages := int32(total) / limit
	if int32(total)%limit > 0 {
		totalPages++
	}

	return &listing.SearchResult{
		Items:      views,
		Total:      total,
		Page:       offset/limit + 1,
		TotalPages: totalPages,
	}, nil
}

// expire performs the lazy active to expired transition. The caller
// rejects the triggering operation afterwards.
func (im *impl) expire(c ctx.Ctx, l *listing.Listing, now time.Time) error {
	expired := listing.StatusExpired
	patch := listing.ListingPatchable{Status: &expired, UpdatedAt: &now}
	if err := im.listingRepo.UpdateWithVersion(c, l.Id, l.Version, patch); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  l.Id,
		}).Error("failed to listingRepo.UpdateWithVersion")
		return err
	}
	return nil
}

func (im *impl) PlaceBid(c ctx.Ctx, id listing.Id, bidder listing.Contact, amount float64) (*listing.BidResult, error) {
	var lastErr error
	bo := backoff.NewExponential(retryBackoffStart, retryBackoffLimit)
	for i := 0; i < maxVersionRetries; i++ {
		l, err := im.listingRepo.FindOne(c, id)
		if err != nil {
			return nil, err
		}

		if l.Pricing.Type != listing.PricingTypeAuction {
			return nil, domain.ErrInvalidState
		}

		now := time.Now()
		if l.Status == listing.StatusActive && l.Ended(now) {
			if err := im.expire(c, l, now); err == domain.ErrVersionConflict {
				lastErr = err
				_ = bo.Backoff(c)
				continue
			} else if err != nil {
				return nil, err
			}
			return nil, domain.ErrListingEnded
		}
		if l.Status != listing.StatusActive {
			if l.Status == listing.StatusExpired {
				return nil, domain.ErrListingEnded
			}
			return nil, domain.ErrInvalidState
		}

		bidder.Email = bidder.Email.ToLower()
		if bidder.Email.Equals(l.Seller.Email) {
			return nil, domain.ErrForbidden
		}

		if amount < l.MinimumBid() {
			return nil, domain.ErrBidTooLow
		}

		bid := listing.Bid{
			Bidder:  bidder,
			Amount:  amount,
			BidTime: now,
		}
		err = im.listingRepo.AppendBidWithVersion(c, id, l.Version, bid)
		if err == domain.ErrVersionConflict {
			lastErr = err
			_ = bo.Backoff(c)
			continue
		} else if err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("failed to listingRepo.AppendBidWithVersion")
			return nil, err
		}

		return &listing.BidResult{
			CurrentBid:     amount,
			NextMinimumBid: amount + l.Auction.BidIncrement,
		}, nil
	}

	c.WithFields(log.Fields{
		"err": lastErr,
		"id":  id,
	}).Warn("bid retries exhausted")
	return nil, lastErr
}

func (im *impl) BuyNow(c ctx.Ctx, id listing.Id, buyer listing.Contact, paymentMethod listing.PaymentMethod) (*listing.PurchaseResult, error) {
	var lastErr error
	bo := backoff.NewExponential(retryBackoffStart, retryBackoffLimit)
	for i := 0; i < maxVersionRetries; i++ {
		l, err := im.listingRepo.FindOne(c, id)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		if l.Status == listing.StatusActive && l.Ended(now) {
			if err := im.expire(c, l, now); err == domain.ErrVersionConflict {
				lastErr = err
				_ = bo.Backoff(c)
				continue
			} else if err != nil {
				return nil, err
			}
			return nil, domain.ErrListingEnded
		}
		if l.Status != listing.StatusActive {
			return nil, domain.ErrInvalidState
		}

		finalPrice, ok := l.BuyNowPriceFor()
		if !ok {
			return nil, domain.ErrInvalidState
		}

		buyer.Email = buyer.Email.ToLower()
		if buyer.Email.Equals(l.Seller.Email) {
			return nil, domain.ErrForbidden
		}

		if paymentMethod == "" {
			paymentMethod = listing.PaymentMethodCash
		}
		sold := listing.StatusSold
		patch := listing.ListingPatchable{
			Status: &sold,
			Transaction: &listing.Transaction{
				Buyer:           buyer,
				FinalPrice:      finalPrice,
				PaymentMethod:   paymentMethod,
				TransactionDate: now,
				DeliveryStatus:  listing.DeliveryStatusPending,
			},
			UpdatedAt: &now,
		}
		err = im.listingRepo.UpdateWithVersion(c, id, l.Version, patch)
		if err == domain.ErrVersionConflict {
			lastErr = err
			_ = bo.Backoff(c)
			continue
		} else if err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("failed to listingRepo.UpdateWithVersion")
			return nil, err
		}

		return &listing.PurchaseResult{
			FinalPrice:      finalPrice,
			TransactionDate: now,
			Item: listing.PurchasedItem{
				Title:  l.Title,
				Seller: l.Seller.Name,
			},
		}, nil
	}

	c.WithFields(log.Fields{
		"err": lastErr,
		"id":  id,
	}).Warn("purchase retries exhausted")
	return nil, lastErr
}

func (im *impl) Watch(c ctx.Ctx, id listing.Id, watcher listing.Contact) (int, error) {
	var lastErr error
	bo := backoff.NewExponential(retryBackoffStart, retryBackoffLimit)
	for i := 0; i < maxVersionRetries; i++ {
		l, err := im.listingRepo.FindOne(c, id)
		if err != nil {
			return 0, err
		}

		watcher.Email = watcher.Email.ToLower()
		if l.IsWatchedBy(watcher.Email) {
			return 0, domain.ErrConflict
		}

		w := listing.Watcher{
			Contact:   watcher,
			WatchDate: time.Now(),
		}
		err = im.listingRepo.AppendWatcherWithVersion(c, id, l.Version, w)
		if err == domain.ErrVersionConflict {
			lastErr = err
			_ = bo.Backoff(c)
			continue
		} else if err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("failed to listingRepo.AppendWatcherWithVersion")
			return 0, err
		}
		return len(l.Watchers) + 1, nil
	}
	return 0, lastErr
}

func (im *impl) AskQuestion(c ctx.Ctx, id listing.Id, questioner listing.Contact, question string) (*listing.Question, error) {
	var lastErr error
	bo := backoff.NewExponential(retryBackoffStart, retryBackoffLimit)
	for i := 0; i < maxVersionRetries; i++ {
		l, err := im.listingRepo.FindOne(c, id)
		if err != nil {
			return nil, err
		}

		q := listing.Question{
			Id:           uuid.New().String(),
			Questioner:   questioner,
			Question:     question,
			QuestionDate: time.Now(),
		}
		err = im.listingRepo.AppendQuestionWithVersion(c, id, l.Version, q)
		if err == domain.ErrVersionConflict {
			lastErr = err
			_ = bo.Backoff(c)
			continue
		} else if err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("failed to listingRepo.AppendQuestionWithVersion")
			return nil, err
		}
		return &q, nil
	}
	return nil, lastErr
}

func (im *impl) AnswerQuestion(c ctx.Ctx, id listing.Id, questionId string, answer string) (*listing.Question, error) {
	var lastErr error
	bo := backoff.NewExponential(retryBackoffStart, retryBackoffLimit)
	for i := 0; i < maxVersionRetries; i++ {
		l, err := im.listingRepo.FindOne(c, id)
		if err != nil {
			return nil, err
		}
		if l.FindQuestion(questionId) == nil {
			return nil, domain.ErrNotFound
		}

		answeredAt := time.Now()
		err = im.listingRepo.AnswerQuestionWithVersion(c, id, l.Version, questionId, answer, answeredAt)
		if err == domain.ErrVersionConflict {
			lastErr = err
			_ = bo.Backoff(c)
			continue
		} else if err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("failed to listingRepo.AnswerQuestionWithVersion")
			return nil, err
		}

		q := l.FindQuestion(questionId)
		q.Answer = &answer
		q.AnswerDate = &answeredAt
		return q, nil
	}
	return nil, lastErr
}

func (im *impl) SetStatus(c ctx.Ctx, id listing.Id, status listing.Status) (*listing.View, error) {
	if _, err := listing.ToStatus(string(status)); err != nil {
		return nil, err
	}

	var lastErr error
	bo := backoff.NewExponential(retryBackoffStart, retryBackoffLimit)
	for i := 0; i < maxVersionRetries; i++ {
		l, err := im.listingRepo.FindOne(c, id)
		if err != nil {
			return nil, err
		}

		if !l.CanTransitionTo(status) {
			return nil, domain.ErrInvalidState
		}

		now := time.Now()
		patch := listing.ListingPatchable{Status: &status, UpdatedAt: &now}
		err = im.listingRepo.UpdateWithVersion(c, id, l.Version, patch)
		if err == domain.ErrVersionConflict {
			lastErr = err
			_ = bo.Backoff(c)
			continue
		} else if err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("failed to listingRepo.UpdateWithVersion")
			return nil, err
		}

		l.Status = status
		l.UpdatedAt = now
		l.Version++
		return l.ToView(now), nil
	}
	return nil, lastErr
}

func (im *impl) Stats(c ctx.Ctx) (*listing.Stats, error) {
	if im.statsCache == nil {
		return im.buildStats(c)
	}

	res := listing.Stats{}
	err := im.statsCache.GetByFunc(c, keys.RedisKey(keys.PfxListingStats, "overview"), &res, func() (interface{}, error) {
		return im.buildStats(c)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (im *impl) buildStats(c ctx.Ctx) (*listing.Stats, error) {
	byStatus, err := im.listingRepo.CountByStatus(c)
	if err != nil {
		return nil, err
	}

	total := int64(0)
	for _, bucket := range byStatus {
		total += bucket.Count
	}

	byCategory, err := im.listingRepo.CategoryDistribution(c)
	if err != nil {
		return nil, err
	}

	salesValue, err := im.listingRepo.TotalSalesValue(c)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	endingSoon, err := im.listingRepo.FindAll(c,
		listing.WithStatus(listing.StatusActive),
		listing.WithPricingType(listing.PricingTypeAuction),
		listing.WithEndDateGTE(now),
		listing.WithEndDateLTE(now.Add(endingSoonWindow)),
		listing.WithSort("auction.endDate", false),
		listing.WithPagination(0, endingSoonLimit),
	)
	if err != nil {
		return nil, err
	}

	views := make([]*listing.View, 0, len(endingSoon))
	for _, l := range endingSoon {
		views = append(views, l.ToView(now))
	}

	return &listing.Stats{
		TotalListings:        total,
		ByStatus:             byStatus,
		CategoryDistribution: byCategory,
		TotalSalesValue:      salesValue,
		EndingSoon:           views,
	}, nil
}
