package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/campustrade/goapi/base/ctx"
	"github.com/campustrade/goapi/domain"
	"github.com/campustrade/goapi/domain/listing"
)

// memoryRepo keeps listings in process memory with the same versioning
// contract as the mongo implementation. It backs tests that exercise
// concurrent write paths without a live database.
type memoryRepo struct {
	sync.Mutex
	listings map[listing.Id]*listing.Listing
}

func NewMemoryRepo() listing.Repo {
	return &memoryRepo{listings: map[listing.Id]*listing.Listing{}}
}

func (m *memoryRepo) match(l *listing.Listing, options listing.FindAllOptions) bool {
	if options.Status != nil && l.Status != *options.Status {
		return false
	}
	if options.Category != nil && l.Category != *options.Category {
		return false
	}
	if options.Condition != nil && l.Condition != *options.Condition {
		return false
	}
	if options.PricingType != nil && l.Pricing.Type != *options.PricingType {
		return false
	}
	if options.SellerEmail != nil && !l.Seller.Email.Equals(*options.SellerEmail) {
		return false
	}
	if options.PriceGTE != nil && l.Pricing.CurrentBid < *options.PriceGTE {
		return false
	}
	if options.PriceLTE != nil && l.Pricing.CurrentBid > *options.PriceLTE {
		return false
	}
	if options.Search != nil {
		needle := strings.ToLower(*options.Search)
		if !strings.Contains(strings.ToLower(l.Title), needle) &&
			!strings.Contains(strings.ToLower(l.Description), needle) {
			return false
		}
	}
	if options.Tag != nil {
		found := false
		for _, tag := range l.Tags {
			if tag == *options.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if options.EndDateGTE != nil {
		if l.Auction.EndDate == nil || l.Auction.EndDate.Before(*options.EndDateGTE) {
			return false
		}
	}
	if options.EndDateLTE != nil {
		if l.Auction.EndDate == nil || l.Auction.EndDate.After(*options.EndDateLTE) {
			return false
		}
	}
	return true
}

func (m *memoryRepo) findAllLocked(opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	res := []*listing.Listing{}
	for _, l := range m.listings {
		if m.match(l, options) {
			clone := *l
			res = append(res, &clone)
		}
	}

	sortBy := "createdAt"
	if options.SortBy != nil {
		sortBy = *options.SortBy
	}
	desc := options.SortDesc != nil && *options.SortDesc
	sort.Slice(res, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "pricing.currentBid":
			less = res[i].Pricing.CurrentBid < res[j].Pricing.CurrentBid
		case "views":
			less = res[i].Views < res[j].Views
		case "auction.endDate":
			ei, ej := res[i].Auction.EndDate, res[j].Auction.EndDate
			switch {
			case ei == nil:
				less = false
			case ej == nil:
				less = true
			default:
				less = ei.Before(*ej)
			}
		default:
			less = res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})

	if options.Offset != nil {
		offset := int(*options.Offset)
		if offset > len(res) {
			offset = len(res)
		}
		res = res[offset:]
	}
	if options.Limit != nil && int(*options.Limit) < len(res) {
		res = res[:*options.Limit]
	}
	return res, nil
}

func (m *memoryRepo) FindAll(_ ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	m.Lock()
	defer m.Unlock()
	return m.findAllLocked(opts...)
}

func (m *memoryRepo) Count(_ ctx.Ctx, opts ...listing.FindAllOptionsFunc) (int, error) {
	m.Lock()
	defer m.Unlock()

	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return 0, err
	}
	cnt := 0
	for _, l := range m.listings {
		if m.match(l, options) {
			cnt++
		}
	}
	return cnt, nil
}

func (m *memoryRepo) FindOne(_ ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	m.Lock()
	defer m.Unlock()

	l, ok := m.listings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *l
	return &clone, nil
}

func (m *memoryRepo) Create(_ ctx.Ctx, l *listing.Listing) error {
	m.Lock()
	defer m.Unlock()

	if _, ok := m.listings[l.Id]; ok {
		return domain.ErrConflict
	}
	clone := *l
	m.listings[l.Id] = &clone
	return nil
}

func (m *memoryRepo) IncrementViews(_ ctx.Ctx, id listing.Id, count int) error {
	m.Lock()
	defer m.Unlock()

	l, ok := m.listings[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.Views += int64(count)
	return nil
}

func (m *memoryRepo) withVersion(id listing.Id, version int64, apply func(l *listing.Listing)) error {
	m.Lock()
	defer m.Unlock()

	l, ok := m.listings[id]
	if !ok {
		return domain.ErrNotFound
	}
	if l.Version != version {
		return domain.ErrVersionConflict
	}
	apply(l)
	l.Version++
	return nil
}

func (m *memoryRepo) UpdateWithVersion(_ ctx.Ctx, id listing.Id, version int64, patchable listing.ListingPatchable) error {
	return m.withVersion(id, version, func(l *listing.Listing) {
		if patchable.Status != nil {
			l.Status = *patchable.Status
		}
		if patchable.CurrentBid != nil {
			l.Pricing.CurrentBid = *patchable.CurrentBid
		}
		if patchable.Transaction != nil {
			l.Transaction = patchable.Transaction
		}
		if patchable.UpdatedAt != nil {
			l.UpdatedAt = *patchable.UpdatedAt
		}
	})
}

func (m *memoryRepo) AppendBidWithVersion(_ ctx.Ctx, id listing.Id, version int64, bid listing.Bid) error {
	return m.withVersion(id, version, func(l *listing.Listing) {
		l.Bids = append(l.Bids, bid)
		l.Pricing.CurrentBid = bid.Amount
		l.UpdatedAt = bid.BidTime
	})
}

func (m *memoryRepo) AppendWatcherWithVersion(_ ctx.Ctx, id listing.Id, version int64, watcher listing.Watcher) error {
	return m.withVersion(id, version, func(l *listing.Listing) {
		l.Watchers = append(l.Watchers, watcher)
		l.UpdatedAt = watcher.WatchDate
	})
}

func (m *memoryRepo) AppendQuestionWithVersion(_ ctx.Ctx, id listing.Id, version int64, question listing.Question) error {
	return m.withVersion(id, version, func(l *listing.Listing) {
		l.Questions = append(l.Questions, question)
		l.UpdatedAt = question.QuestionDate
	})
}

func (m *memoryRepo) AnswerQuestionWithVersion(_ ctx.Ctx, id listing.Id, version int64, questionId string, answer string, answeredAt time.Time) error {
	m.Lock()
	defer m.Unlock()

	l, ok := m.listings[id]
	if !ok {
		return domain.ErrNotFound
	}

	idx := -1
	for i := range l.Questions {
		if l.Questions[i].Id == questionId {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	if l.Version != version {
		return domain.ErrVersionConflict
	}

	l.Questions[idx].Answer = &answer
	l.Questions[idx].AnswerDate = &answeredAt
	l.UpdatedAt = answeredAt
	l.Version++
	return nil
}

func (m *memoryRepo) CountByStatus(_ ctx.Ctx) ([]listing.StatusCount, error) {
	m.Lock()
	defer m.Unlock()

	counts := map[listing.Status]int64{}
	for _, l := range m.listings {
		counts[l.Status]++
	}
	res := []listing.StatusCount{}
	for status, count := range counts {
		res = append(res, listing.StatusCount{Status: status, Count: count})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Count > res[j].Count })
	return res, nil
}

func (m *memoryRepo) CategoryDistribution(_ ctx.Ctx) ([]listing.CategoryCount, error) {
	m.Lock()
	defer m.Unlock()

	counts := map[listing.Category]int64{}
	for _, l := range m.listings {
		counts[l.Category]++
	}
	res := []listing.CategoryCount{}
	for category, count := range counts {
		res = append(res, listing.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Count > res[j].Count })
	return res, nil
}

func (m *memoryRepo) TotalSalesValue(_ ctx.Ctx) (float64, error) {
	m.Lock()
	defer m.Unlock()

	total := 0.0
	for _, l := range m.listings {
		if l.Status == listing.StatusSold && l.Transaction != nil {
			total += l.Transaction.FinalPrice
		}
	}
	return total, nil
}
