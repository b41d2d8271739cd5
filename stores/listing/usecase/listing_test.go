package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/campustrade/goapi/base/ctx"
	"github.com/campustrade/goapi/base/ptr"
	"github.com/campustrade/goapi/domain"
	"github.com/campustrade/goapi/domain/listing"
	"github.com/campustrade/goapi/domain/listing/mocks"
	"github.com/campustrade/goapi/stores/listing/repository"
)

var (
	mockCTX = ctx.Background()
)

func newAuctionInput(increment float64) *listing.Listing {
	endDate := time.Now().Add(48 * time.Hour)
	return &listing.Listing{
		Title:       "HP Probook 450",
		Description: "Good battery, charger included",
		Category:    listing.CategoryElectronics,
		Condition:   listing.ConditionGood,
		Seller: listing.Seller{
			Contact: listing.Contact{Name: "Rahim", Email: "Rahim@Univ.Edu", Phone: "01711111111"},
		},
		Pricing: listing.Pricing{
			Type:          listing.PricingTypeAuction,
			StartingPrice: 1000,
		},
		Auction: listing.Auction{
			EndDate:      &endDate,
			BidIncrement: increment,
		},
		Location: listing.Location{Campus: "Main Campus"},
	}
}

func newFixedInput(price float64) *listing.Listing {
	return &listing.Listing{
		Title:       "Organic Chemistry 2nd ed",
		Description: "Some highlighting in chapter 3",
		Category:    listing.CategoryBooks,
		Condition:   listing.ConditionGood,
		Seller: listing.Seller{
			Contact: listing.Contact{Name: "Rahim", Email: "rahim@univ.edu"},
		},
		Pricing: listing.Pricing{
			Type:          listing.PricingTypeFixed,
			StartingPrice: price,
		},
		Location: listing.Location{Campus: "Main Campus"},
	}
}

var (
	bidder = listing.Contact{Name: "Karim", Email: "karim@univ.edu"}
	buyer  = listing.Contact{Name: "Salma", Email: "salma@univ.edu"}
)

type listingUseCaseSuite struct {
	suite.Suite
	repo listing.Repo
	uc   listing.UseCase
}

func (s *listingUseCaseSuite) SetupTest() {
	s.repo = repository.NewMemoryRepo()
	s.uc = New(&ListingUseCaseCfg{ListingRepo: s.repo})
}

func (s *listingUseCaseSuite) TestCreateDefaults() {
	created, err := s.uc.Create(mockCTX, newAuctionInput(0))
	s.Require().NoError(err)

	s.NotEmpty(created.Id)
	s.Equal(listing.StatusActive, created.Status)
	s.Equal(domain.Email("rahim@univ.edu"), created.Seller.Email)
	s.Equal(float64(0), created.Pricing.CurrentBid)
	s.Equal(float64(10), created.Auction.BidIncrement)
	s.Equal(listing.CurrencyBDT, created.Pricing.Currency)
	s.Equal(listing.MeetingPreferenceCampusOnly, created.Location.MeetingPreference)
	s.False(created.Auction.StartDate.IsZero())
}

func (s *listingUseCaseSuite) TestCreateRejectsInvalidFields() {
	unknownCategory := newFixedInput(500)
	unknownCategory.Category = "spaceship"
	_, err := s.uc.Create(mockCTX, unknownCategory)
	s.ErrorIs(err, domain.ErrBadParamInput)

	shortDescription := newFixedInput(500)
	shortDescription.Description = "short"
	_, err = s.uc.Create(mockCTX, shortDescription)
	s.ErrorIs(err, domain.ErrBadParamInput)

	noCampus := newFixedInput(500)
	noCampus.Location.Campus = ""
	_, err = s.uc.Create(mockCTX, noCampus)
	s.ErrorIs(err, domain.ErrBadParamInput)

	badMeeting := newFixedInput(500)
	badMeeting.Location.MeetingPreference = "teleport"
	_, err = s.uc.Create(mockCTX, badMeeting)
	s.ErrorIs(err, domain.ErrBadParamInput)

	badCondition := newFixedInput(500)
	badCondition.Condition = "mint"
	_, err = s.uc.Create(mockCTX, badCondition)
	s.ErrorIs(err, domain.ErrBadParamInput)
}

func (s *listingUseCaseSuite) TestCreateRejectsAuctionWithoutEndDate() {
	input := newAuctionInput(50)
	input.Auction.EndDate = nil

	_, err := s.uc.Create(mockCTX, input)
	s.ErrorIs(err, domain.ErrBadParamInput)
}

func (s *listingUseCaseSuite) TestBidSequence() {
	created, err := s.uc.Create(mockCTX, newAuctionInput(50))
	s.Require().NoError(err)

	res, err := s.uc.PlaceBid(mockCTX, created.Id, bidder, 1000)
	s.Require().NoError(err)
	s.Equal(float64(1000), res.CurrentBid)
	s.Equal(float64(1050), res.NextMinimumBid)

	_, err = s.uc.PlaceBid(mockCTX, created.Id, buyer, 1040)
	s.ErrorIs(err, domain.ErrBidTooLow)

	res, err = s.uc.PlaceBid(mockCTX, created.Id, buyer, 1050)
	s.Require().NoError(err)
	s.Equal(float64(1050), res.CurrentBid)
	s.Equal(float64(1100), res.NextMinimumBid)
}

func (s *listingUseCaseSuite) TestBidderEmailStoredLowercase() {
	created, err := s.uc.Create(mockCTX, newAuctionInput(50))
	s.Require().NoError(err)

	shouting := listing.Contact{Name: "Karim", Email: "KARIM@Univ.Edu"}
	_, err = s.uc.PlaceBid(mockCTX, created.Id, shouting, 1000)
	s.Require().NoError(err)

	stored, err := s.repo.FindOne(mockCTX, created.Id)
	s.Require().NoError(err)
	s.Require().Len(stored.Bids, 1)
	s.Equal(domain.Email("karim@univ.edu"), stored.Bids[0].Bidder.Email)
}

func (s *listingUseCaseSuite) TestBidRejectedOnNonAuction() {
	created, err := s.uc.Create(mockCTX, newFixedInput(500))
	s.Require().NoError(err)

	_, err = s.uc.PlaceBid(mockCTX, created.Id, bidder, 600)
	s.ErrorIs(err, domain.ErrInvalidState)
}

func (s *listingUseCaseSuite) TestBidRejectedForSeller() {
	created, err := s.uc.Create(mockCTX, newAuctionInput(50))
	s.Require().NoError(err)

	seller := listing.Contact{Name: "Rahim", Email: "RAHIM@univ.edu"}
	_, err = s.uc.PlaceBid(mockCTX, created.Id, seller, 1000)
	s.ErrorIs(err, domain.ErrForbidden)
}

func (s *listingUseCaseSuite) TestBidOnEndedAuctionExpiresListing() {
	input := newAuctionInput(50)
	past := time.Now().Add(-time.Hour)
	start := past.Add(-48 * time.Hour)
	input.Auction.StartDate = start
	input.Auction.EndDate = &past

	created, err := s.uc.Create(mockCTX, input)
	s.Require().NoError(err)

	_, err = s.uc.PlaceBid(mockCTX, created.Id, bidder, 1000)
	s.ErrorIs(err, domain.ErrListingEnded)

	view, err := s.uc.Get(mockCTX, created.Id)
	s.Require().NoError(err)
	s.Equal(listing.StatusExpired, view.Status)

	// the transition is sticky, later bids keep failing the same way
	_, err = s.uc.PlaceBid(mockCTX, created.Id, bidder, 1000)
	s.ErrorIs(err, domain.ErrListingEnded)
}

func (s *listingUseCaseSuite) TestBuyNowFixed() {
	created, err := s.uc.Create(mockCTX, newFixedInput(500))
	s.Require().NoError(err)

	res, err := s.uc.BuyNow(mockCTX, created.Id, buyer, listing.PaymentMethodBkash)
	s.Require().NoError(err)
	s.Equal(float64(500), res.FinalPrice)
	s.Equal("Organic Chemistry 2nd ed", res.Item.Title)
	s.Equal("Rahim", res.Item.Seller)

	view, err := s.uc.Get(mockCTX, created.Id)
	s.Require().NoError(err)
	s.Equal(listing.StatusSold, view.Status)
	s.Require().NotNil(view.Transaction)
	s.Equal(listing.DeliveryStatusPending, view.Transaction.DeliveryStatus)

	_, err = s.uc.BuyNow(mockCTX, created.Id, bidder, listing.PaymentMethodCash)
	s.ErrorIs(err, domain.ErrInvalidState)
}

func (s *listingUseCaseSuite) TestBuyNowAuctionUsesBuyNowPrice() {
	input := newAuctionInput(50)
	input.Pricing.BuyNowPrice = ptr.Float64(2000)

	created, err := s.uc.Create(mockCTX, input)
	s.Require().NoError(err)

	res, err := s.uc.BuyNow(mockCTX, created.Id, buyer, listing.PaymentMethodCash)
	s.Require().NoError(err)
	s.Equal(float64(2000), res.FinalPrice)
}

func (s *listingUseCaseSuite) TestBuyNowRejectedWithoutPrice() {
	created, err := s.uc.Create(mockCTX, newAuctionInput(50))
	s.Require().NoError(err)

	_, err = s.uc.BuyNow(mockCTX, created.Id, buyer, listing.PaymentMethodCash)
	s.ErrorIs(err, domain.ErrInvalidState)
}

func (s *listingUseCaseSuite) TestBuyNowRejectedForSeller() {
	created, err := s.uc.Create(mockCTX, newFixedInput(500))
	s.Require().NoError(err)

	seller := listing.Contact{Name: "Rahim", Email: "rahim@univ.edu"}
	_, err = s.uc.BuyNow(mockCTX, created.Id, seller, listing.PaymentMethodCash)
	s.ErrorIs(err, domain.ErrForbidden)
}

func (s *listingUseCaseSuite) TestWatch() {
	created, err := s.uc.Create(mockCTX, newFixedInput(500))
	s.Require().NoError(err)

	count, err := s.uc.Watch(mockCTX, created.Id, bidder)
	s.Require().NoError(err)
	s.Equal(1, count)

	dup := listing.Contact{Name: "Karim", Email: "KARIM@univ.edu"}
	_, err = s.uc.Watch(mockCTX, created.Id, dup)
	s.ErrorIs(err, domain.ErrConflict)
}

func (s *listingUseCaseSuite) TestQuestionFlow() {
	created, err := s.uc.Create(mockCTX, newFixedInput(500))
	s.Require().NoError(err)

	q, err := s.uc.AskQuestion(mockCTX, created.Id, bidder, "Is the charger original?")
	s.Require().NoError(err)
	s.NotEmpty(q.Id)
	s.Nil(q.Answer)

	answered, err := s.uc.AnswerQuestion(mockCTX, created.Id, q.Id, "Yes")
	s.Require().NoError(err)
	s.Require().NotNil(answered.Answer)
	s.Equal("Yes", *answered.Answer)

	_, err = s.uc.AnswerQuestion(mockCTX, created.Id, "missing", "Yes")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *listingUseCaseSuite) TestSetStatus() {
	created, err := s.uc.Create(mockCTX, newFixedInput(500))
	s.Require().NoError(err)

	view, err := s.uc.SetStatus(mockCTX, created.Id, listing.StatusWithdrawn)
	s.Require().NoError(err)
	s.Equal(listing.StatusWithdrawn, view.Status)

	_, err = s.uc.SetStatus(mockCTX, created.Id, listing.StatusActive)
	s.ErrorIs(err, domain.ErrInvalidState)

	_, err = s.uc.SetStatus(mockCTX, created.Id, "bogus")
	s.ErrorIs(err, domain.ErrBadParamInput)
}

func (s *listingUseCaseSuite) TestSetStatusDraftOnlyActivates() {
	input := newFixedInput(500)
	input.Status = listing.StatusDraft
	created, err := s.uc.Create(mockCTX, input)
	s.Require().NoError(err)

	_, err = s.uc.SetStatus(mockCTX, created.Id, listing.StatusWithdrawn)
	s.ErrorIs(err, domain.ErrInvalidState)

	view, err := s.uc.SetStatus(mockCTX, created.Id, listing.StatusActive)
	s.Require().NoError(err)
	s.Equal(listing.StatusActive, view.Status)
}

func (s *listingUseCaseSuite) TestGetRedactsContacts() {
	created, err := s.uc.Create(mockCTX, newAuctionInput(50))
	s.Require().NoError(err)

	_, err = s.uc.PlaceBid(mockCTX, created.Id, bidder, 1000)
	s.Require().NoError(err)

	view, err := s.uc.Get(mockCTX, created.Id)
	s.Require().NoError(err)

	s.Empty(view.Seller.Email)
	s.Empty(view.Seller.Phone)
	for _, bid := range view.Bids {
		s.Empty(bid.Bidder.Email)
	}
	s.Require().NotNil(view.HighestBidder)
	s.Equal("Karim", view.HighestBidder.Name)
	s.Equal(float64(1000), view.HighestBidder.Amount)
	s.Require().NotNil(view.TimeRemaining)
	s.Greater(*view.TimeRemaining, int64(0))
}

func (s *listingUseCaseSuite) TestSearchPagination() {
	for i := 0; i < 5; i++ {
		_, err := s.uc.Create(mockCTX, newFixedInput(float64(100+i)))
		s.Require().NoError(err)
	}

	res, err := s.uc.Search(mockCTX, listing.WithPagination(0, 2))
	s.Require().NoError(err)
	s.Len(res.Items, 2)
	s.Equal(5, res.Total)
	s.Equal(int32(1), res.Page)
	s.Equal(int32(3), res.TotalPages)

	res, err = s.uc.Search(mockCTX, listing.WithPagination(4, 2))
	s.Require().NoError(err)
	s.Len(res.Items, 1)
	s.Equal(int32(3), res.Page)
}

func (s *listingUseCaseSuite) TestStats() {
	created, err := s.uc.Create(mockCTX, newFixedInput(700))
	s.Require().NoError(err)
	_, err = s.uc.BuyNow(mockCTX, created.Id, buyer, listing.PaymentMethodCash)
	s.Require().NoError(err)

	_, err = s.uc.Create(mockCTX, newAuctionInput(50))
	s.Require().NoError(err)

	stats, err := s.uc.Stats(mockCTX)
	s.Require().NoError(err)
	s.Equal(int64(2), stats.TotalListings)
	s.Equal(float64(700), stats.TotalSalesValue)
	s.Len(stats.EndingSoon, 0)
}

func (s *listingUseCaseSuite) TestConcurrentBuyNowSellsOnce() {
	created, err := s.uc.Create(mockCTX, newFixedInput(500))
	s.Require().NoError(err)

	const n = 10
	results := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.uc.BuyNow(mockCTX, created.Id, buyer, listing.PaymentMethodCash)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			s.ErrorIs(err, domain.ErrInvalidState)
		}
	}
	s.Equal(1, succeeded)

	view, err := s.uc.Get(mockCTX, created.Id)
	s.Require().NoError(err)
	s.Equal(listing.StatusSold, view.Status)
}

func (s *listingUseCaseSuite) TestConcurrentBidsKeepCurrentBidMonotonic() {
	created, err := s.uc.Create(mockCTX, newAuctionInput(10))
	s.Require().NoError(err)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		amount := float64(100 + i*10)
		wg.Add(1)
		go func() {
			defer wg.Done()
			// losers surface ErrBidTooLow or ErrVersionConflict,
			// neither may corrupt the stored state
			_, _ = s.uc.PlaceBid(mockCTX, created.Id, bidder, amount)
		}()
	}
	wg.Wait()

	view, err := s.uc.Get(mockCTX, created.Id)
	s.Require().NoError(err)

	max := float64(0)
	prev := float64(0)
	for _, bid := range view.Bids {
		s.Greater(bid.Amount, prev)
		prev = bid.Amount
		if bid.Amount > max {
			max = bid.Amount
		}
	}
	s.Equal(max, view.Pricing.CurrentBid)
}

func TestListingUseCaseSuite(t *testing.T) {
	suite.Run(t, new(listingUseCaseSuite))
}

type listingRetrySuite struct {
	suite.Suite
	repo *mocks.Repo
	uc   listing.UseCase
}

func (s *listingRetrySuite) SetupTest() {
	s.repo = &mocks.Repo{}
	s.uc = New(&ListingUseCaseCfg{ListingRepo: s.repo})
}

func (s *listingRetrySuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
}

func (s *listingRetrySuite) stored() *listing.Listing {
	endDate := time.Now().Add(48 * time.Hour)
	return &listing.Listing{
		Id:     "l-1",
		Seller: listing.Seller{Contact: listing.Contact{Name: "Rahim", Email: "rahim@univ.edu"}},
		Pricing: listing.Pricing{
			Type:          listing.PricingTypeAuction,
			StartingPrice: 1000,
		},
		Auction: listing.Auction{
			StartDate:    time.Now().Add(-time.Hour),
			EndDate:      &endDate,
			BidIncrement: 50,
		},
		Status: listing.StatusActive,
	}
}

func (s *listingRetrySuite) TestPlaceBidRetriesOnVersionConflict() {
	s.repo.On("FindOne", mock.Anything, listing.Id("l-1")).Return(s.stored(), nil).Twice()
	s.repo.On("AppendBidWithVersion", mock.Anything, listing.Id("l-1"), int64(0), mock.Anything).
		Return(domain.ErrVersionConflict).Once()
	s.repo.On("AppendBidWithVersion", mock.Anything, listing.Id("l-1"), int64(0), mock.Anything).
		Return(nil).Once()

	res, err := s.uc.PlaceBid(mockCTX, "l-1", bidder, 100)
	s.Require().NoError(err)
	s.Equal(float64(100), res.CurrentBid)
	s.Equal(float64(150), res.NextMinimumBid)
}

func (s *listingRetrySuite) TestPlaceBidSurfacesConflictAfterRetries() {
	s.repo.On("FindOne", mock.Anything, listing.Id("l-1")).Return(s.stored(), nil).Times(3)
	s.repo.On("AppendBidWithVersion", mock.Anything, listing.Id("l-1"), int64(0), mock.Anything).
		Return(domain.ErrVersionConflict).Times(3)

	_, err := s.uc.PlaceBid(mockCTX, "l-1", bidder, 100)
	s.ErrorIs(err, domain.ErrVersionConflict)
}

func TestListingRetrySuite(t *testing.T) {
	suite.Run(t, new(listingRetrySuite))
}
