package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/campustrade/goapi/base/ctx"
	"github.com/campustrade/goapi/base/ptr"
	"github.com/campustrade/goapi/domain"
	"github.com/campustrade/goapi/domain/listing"
)

var (
	mockCTX = ctx.Background()
)

type listingRepoSuite struct {
	suite.Suite
	im *listingRepoImpl
}

func (s *listingRepoSuite) SetupTest() {
	s.im = &listingRepoImpl{}
}

func (s *listingRepoSuite) TestMakeQueryEmpty() {
	query, err := s.im.makeQuery()
	s.Require().NoError(err)
	s.Equal(bson.M{}, query)
}

func (s *listingRepoSuite) TestMakeQueryFilters() {
	query, err := s.im.makeQuery(
		listing.WithStatus(listing.StatusActive),
		listing.WithCategory(listing.CategoryElectronics),
		listing.WithPricingType(listing.PricingTypeAuction),
		listing.WithSellerEmail("Seller@Example.Com"),
		listing.WithPriceRange(ptr.Float64(100), ptr.Float64(500)),
		listing.WithTag("laptop"),
	)
	s.Require().NoError(err)

	s.Equal(bson.M{
		"status":             listing.StatusActive,
		"category":           listing.CategoryElectronics,
		"pricing.type":       listing.PricingTypeAuction,
		"seller.email":       domain.Email("seller@example.com"),
		"pricing.currentBid": bson.M{"$gte": float64(100), "$lte": float64(500)},
		"tags":               "laptop",
	}, query)
}

func (s *listingRepoSuite) TestMakeQuerySearch() {
	query, err := s.im.makeQuery(listing.WithSearch("macbook"))
	s.Require().NoError(err)

	pattern := bson.M{"$regex": "macbook", "$options": "i"}
	s.Equal(bson.M{
		"$or": []bson.M{
			{"title": pattern},
			{"description": pattern},
		},
	}, query)
}

func (s *listingRepoSuite) TestMakeQueryEndDateRange() {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(24 * time.Hour)

	query, err := s.im.makeQuery(
		listing.WithEndDateGTE(now),
		listing.WithEndDateLTE(later),
	)
	s.Require().NoError(err)

	s.Equal(bson.M{
		"auction.endDate": bson.M{"$gte": now, "$lte": later},
	}, query)
}

func (s *listingRepoSuite) TestMakeSort() {
	s.Equal("createdAt", s.im.makeSort())
	s.Equal("-createdAt", s.im.makeSort(listing.WithSort("createdAt", true)))
	s.Equal("pricing.currentBid", s.im.makeSort(listing.WithSort("pricing.currentBid", false)))
}

func TestListingRepoSuite(t *testing.T) {
	suite.Run(t, new(listingRepoSuite))
}

func newMemListing(id listing.Id) *listing.Listing {
	endDate := time.Now().Add(48 * time.Hour)
	return &listing.Listing{
		Id:          id,
		Title:       "Casio FX-991EX",
		Description: "Scientific calculator, barely used",
		Category:    listing.CategoryElectronics,
		Condition:   listing.ConditionLikeNew,
		Seller: listing.Seller{
			Contact: listing.Contact{Name: "Rahim", Email: "rahim@univ.edu"},
		},
		Pricing: listing.Pricing{
			Type:          listing.PricingTypeAuction,
			StartingPrice: 1000,
			CurrentBid:    1000,
			Currency:      listing.CurrencyBDT,
		},
		Auction: listing.Auction{
			StartDate:    time.Now(),
			EndDate:      &endDate,
			BidIncrement: 50,
		},
		Status:    listing.StatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

type memoryRepoSuite struct {
	suite.Suite
	repo listing.Repo
}

func (s *memoryRepoSuite) SetupTest() {
	s.repo = NewMemoryRepo()
}

func (s *memoryRepoSuite) TestVersionedBidAppend() {
	l := newMemListing("l-1")
	s.Require().NoError(s.repo.Create(mockCTX, l))

	bid := listing.Bid{
		Bidder:  listing.Contact{Name: "Karim", Email: "karim@univ.edu"},
		Amount:  1100,
		BidTime: time.Now(),
	}
	s.Require().NoError(s.repo.AppendBidWithVersion(mockCTX, l.Id, 0, bid))

	got, err := s.repo.FindOne(mockCTX, l.Id)
	s.Require().NoError(err)
	s.Equal(int64(1), got.Version)
	s.Equal(float64(1100), got.Pricing.CurrentBid)
	s.Len(got.Bids, 1)

	err = s.repo.AppendBidWithVersion(mockCTX, l.Id, 0, bid)
	s.ErrorIs(err, domain.ErrVersionConflict)

	err = s.repo.AppendBidWithVersion(mockCTX, "missing", 0, bid)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *memoryRepoSuite) TestUpdateWithVersion() {
	l := newMemListing("l-2")
	s.Require().NoError(s.repo.Create(mockCTX, l))

	now := time.Now()
	sold := listing.StatusSold
	patch := listing.ListingPatchable{
		Status:    &sold,
		UpdatedAt: &now,
		Transaction: &listing.Transaction{
			Buyer:           listing.Contact{Name: "Karim", Email: "karim@univ.edu"},
			FinalPrice:      1500,
			PaymentMethod:   listing.PaymentMethodCash,
			TransactionDate: now,
			DeliveryStatus:  listing.DeliveryStatusPending,
		},
	}
	s.Require().NoError(s.repo.UpdateWithVersion(mockCTX, l.Id, 0, patch))

	got, err := s.repo.FindOne(mockCTX, l.Id)
	s.Require().NoError(err)
	s.Equal(listing.StatusSold, got.Status)
	s.Require().NotNil(got.Transaction)
	s.Equal(float64(1500), got.Transaction.FinalPrice)

	err = s.repo.UpdateWithVersion(mockCTX, l.Id, 0, patch)
	s.ErrorIs(err, domain.ErrVersionConflict)
}

func (s *memoryRepoSuite) TestAnswerQuestion() {
	l := newMemListing("l-3")
	l.Questions = []listing.Question{{
		Id:           "q-1",
		Questioner:   listing.Contact{Name: "Karim", Email: "karim@univ.edu"},
		Question:     "Does it come with the cover?",
		QuestionDate: time.Now(),
	}}
	s.Require().NoError(s.repo.Create(mockCTX, l))

	err := s.repo.AnswerQuestionWithVersion(mockCTX, l.Id, 0, "q-404", "yes", time.Now())
	s.ErrorIs(err, domain.ErrNotFound)

	s.Require().NoError(s.repo.AnswerQuestionWithVersion(mockCTX, l.Id, 0, "q-1", "yes", time.Now()))

	got, err := s.repo.FindOne(mockCTX, l.Id)
	s.Require().NoError(err)
	q := got.FindQuestion("q-1")
	s.Require().NotNil(q)
	s.Require().NotNil(q.Answer)
	s.Equal("yes", *q.Answer)
}

func (s *memoryRepoSuite) TestStats() {
	active := newMemListing("l-4")
	s.Require().NoError(s.repo.Create(mockCTX, active))

	sold := newMemListing("l-5")
	sold.Status = listing.StatusSold
	sold.Transaction = &listing.Transaction{FinalPrice: 700}
	s.Require().NoError(s.repo.Create(mockCTX, sold))

	counts, err := s.repo.CountByStatus(mockCTX)
	s.Require().NoError(err)
	s.Len(counts, 2)

	total, err := s.repo.TotalSalesValue(mockCTX)
	s.Require().NoError(err)
	s.Equal(float64(700), total)
}

func TestMemoryRepoSuite(t *testing.T) {
	suite.Run(t, new(memoryRepoSuite))
}
