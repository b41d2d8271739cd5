package listing

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/campustrade/goapi/base/ctx"
	"github.com/campustrade/goapi/domain"
)

type Id string

type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusSold      Status = "sold"
	StatusExpired   Status = "expired"
	StatusWithdrawn Status = "withdrawn"
)

func ToStatus(name string) (Status, error) {
	switch Status(name) {
	case StatusDraft, StatusActive, StatusSold, StatusExpired, StatusWithdrawn:
		return Status(name), nil
	}
	return "", xerrors.Errorf("unknown status %q: %w", name, domain.ErrBadParamInput)
}

// IsTerminal reports whether no further bids or purchases are accepted.
func (s Status) IsTerminal() bool {
	return s == StatusSold || s == StatusExpired || s == StatusWithdrawn
}

type PricingType string

const (
	PricingTypeFixed      PricingType = "fixed"
	PricingTypeAuction    PricingType = "auction"
	PricingTypeNegotiable PricingType = "negotiable"
)

type Category string

const (
	CategoryBooks        Category = "Books"
	CategoryElectronics  Category = "Electronics"
	CategoryFurniture    Category = "Furniture"
	CategoryClothing     Category = "Clothing"
	CategorySports       Category = "Sports Equipment"
	CategoryInstruments  Category = "Musical Instruments"
	CategoryLabEquipment Category = "Laboratory Equipment"
	CategoryArtSupplies  Category = "Art Supplies"
	CategoryVehicle      Category = "Vehicle"
	CategoryOther        Category = "Other"
)

func ToCategory(name string) (Category, error) {
	switch Category(name) {
	case CategoryBooks, CategoryElectronics, CategoryFurniture, CategoryClothing,
		CategorySports, CategoryInstruments, CategoryLabEquipment, CategoryArtSupplies,
		CategoryVehicle, CategoryOther:
		return Category(name), nil
	}
	return "", xerrors.Errorf("unknown category %q: %w", name, domain.ErrBadParamInput)
}

type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like_new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
	ConditionPoor    Condition = "poor"
)

type Currency string

const (
	CurrencyBDT Currency = "BDT"
	CurrencyUSD Currency = "USD"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBkash        PaymentMethod = "bkash"
	PaymentMethodNagad        PaymentMethod = "nagad"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

type DeliveryStatus string

const (
	DeliveryStatusPending    DeliveryStatus = "pending"
	DeliveryStatusInProgress DeliveryStatus = "in_progress"
	DeliveryStatusCompleted  DeliveryStatus = "completed"
)

type MeetingPreference string

const (
	MeetingPreferenceCampusOnly        MeetingPreference = "campus_only"
	MeetingPreferenceFlexible          MeetingPreference = "flexible"
	MeetingPreferenceDeliveryAvailable MeetingPreference = "delivery_available"
)

func ToMeetingPreference(name string) (MeetingPreference, error) {
	switch MeetingPreference(name) {
	case MeetingPreferenceCampusOnly, MeetingPreferenceFlexible, MeetingPreferenceDeliveryAvailable:
		return MeetingPreference(name), nil
	}
	return "", xerrors.Errorf("unknown meetingPreference %q: %w", name, domain.ErrBadParamInput)
}

// Contact identifies a party by email. Phone and email are contact
// fields and must be cleared before a listing leaves the read paths.
type Contact struct {
	Name  string       `json:"name" bson:"name" validate:"required"`
	Email domain.Email `json:"email,omitempty" bson:"email" validate:"required,email"`
	Phone string       `json:"phone,omitempty" bson:"phone"`
}

type Seller struct {
	Contact    `bson:"inline"`
	StudentId  string `json:"studentId,omitempty" bson:"studentId"`
	Department string `json:"department,omitempty" bson:"department"`
	Year       int    `json:"year,omitempty" bson:"year"`
}

type Pricing struct {
	Type          PricingType `json:"type" bson:"type" validate:"required,oneof=fixed auction negotiable"`
	StartingPrice float64     `json:"startingPrice" bson:"startingPrice" validate:"gte=1"`
	BuyNowPrice   *float64    `json:"buyNowPrice,omitempty" bson:"buyNowPrice,omitempty"`
	CurrentBid    float64     `json:"currentBid" bson:"currentBid"`
	Currency      Currency    `json:"currency" bson:"currency"`
}

type Auction struct {
	StartDate    time.Time  `json:"startDate" bson:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty" bson:"endDate,omitempty"`
	BidIncrement float64    `json:"bidIncrement" bson:"bidIncrement"`
}

type Bid struct {
	Bidder      Contact  `json:"bidder" bson:"bidder"`
	Amount      float64  `json:"amount" bson:"amount"`
	BidTime     time.Time `json:"bidTime" bson:"bidTime"`
	IsAutomatic bool     `json:"isAutomatic" bson:"isAutomatic"`
	MaxBid      *float64 `json:"maxBid,omitempty" bson:"maxBid,omitempty"`
}

type Watcher struct {
	Contact   `bson:"inline"`
	WatchDate time.Time `json:"watchDate" bson:"watchDate"`
}

type Question struct {
	Id           string     `json:"id" bson:"id"`
	Questioner   Contact    `json:"questioner" bson:"questioner"`
	Question     string     `json:"question" bson:"question"`
	Answer       *string    `json:"answer,omitempty" bson:"answer,omitempty"`
	QuestionDate time.Time  `json:"questionDate" bson:"questionDate"`
	AnswerDate   *time.Time `json:"answerDate,omitempty" bson:"answerDate,omitempty"`
}

type Feedback struct {
	Rating       int       `json:"rating" bson:"rating" validate:"gte=1,lte=5"`
	Comment      string    `json:"comment,omitempty" bson:"comment,omitempty"`
	FeedbackDate time.Time `json:"feedbackDate" bson:"feedbackDate"`
}

type Transaction struct {
	Buyer           Contact        `json:"buyer" bson:"buyer"`
	FinalPrice      float64        `json:"finalPrice" bson:"finalPrice"`
	PaymentMethod   PaymentMethod  `json:"paymentMethod" bson:"paymentMethod"`
	TransactionDate time.Time      `json:"transactionDate" bson:"transactionDate"`
	DeliveryStatus  DeliveryStatus `json:"deliveryStatus" bson:"deliveryStatus"`
	Feedback        *Feedback      `json:"feedback,omitempty" bson:"feedback,omitempty"`
}

type Image struct {
	Url      string `json:"url" bson:"url" validate:"required,url"`
	Filename string `json:"filename,omitempty" bson:"filename,omitempty"`
	Caption  string `json:"caption,omitempty" bson:"caption,omitempty"`
}

type Specification struct {
	Key   string `json:"key" bson:"key"`
	Value string `json:"value" bson:"value"`
}

type Location struct {
	Campus            string            `json:"campus,omitempty" bson:"campus,omitempty"`
	Building          string            `json:"building,omitempty" bson:"building,omitempty"`
	Room              string            `json:"room,omitempty" bson:"room,omitempty"`
	MeetingPreference MeetingPreference `json:"meetingPreference,omitempty" bson:"meetingPreference,omitempty"`
}

// Listing is the aggregate root. Bids, watchers, questions and the
// transaction record are embedded; every mutation of them goes through
// a versioned update keyed on Version.
type Listing struct {
	Id             Id              `json:"id" bson:"id"`
	Title          string          `json:"title" bson:"title" validate:"required,max=200"`
	Description    string          `json:"description" bson:"description" validate:"required,min=20,max=5000"`
	Category       Category        `json:"category" bson:"category" validate:"required"`
	Condition      Condition       `json:"condition" bson:"condition" validate:"required,oneof=new like_new good fair poor"`
	Images         []Image         `json:"images,omitempty" bson:"images,omitempty"`
	Specifications []Specification `json:"specifications,omitempty" bson:"specifications,omitempty"`
	Seller         Seller          `json:"seller" bson:"seller"`
	Pricing        Pricing         `json:"pricing" bson:"pricing"`
	Auction        Auction         `json:"auction" bson:"auction"`
	Location       Location        `json:"location,omitempty" bson:"location,omitempty"`
	Bids           []Bid           `json:"bids" bson:"bids"`
	Watchers       []Watcher       `json:"watchers" bson:"watchers"`
	Questions      []Question      `json:"questions" bson:"questions"`
	Transaction    *Transaction    `json:"transaction,omitempty" bson:"transaction,omitempty"`
	Status         Status          `json:"status" bson:"status"`
	Views          int64           `json:"views" bson:"views"`
	Tags           []string        `json:"tags,omitempty" bson:"tags,omitempty"`
	Version        int64           `json:"-" bson:"version"`
	CreatedAt      time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// Validate checks cross-field rules that struct tags cannot express.
func (l *Listing) Validate() error {
	if _, err := ToCategory(string(l.Category)); err != nil {
		return err
	}
	switch l.Condition {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
	default:
		return xerrors.Errorf("unknown condition %q: %w", l.Condition, domain.ErrBadParamInput)
	}
	if len(l.Description) < 20 {
		return xerrors.Errorf("description must be at least 20 characters: %w", domain.ErrBadParamInput)
	}
	if l.Location.Campus == "" {
		return xerrors.Errorf("location.campus is required: %w", domain.ErrBadParamInput)
	}
	if l.Location.MeetingPreference != "" {
		if _, err := ToMeetingPreference(string(l.Location.MeetingPreference)); err != nil {
			return err
		}
	}
	if l.Pricing.Type == PricingTypeAuction {
		if l.Auction.EndDate == nil {
			return xerrors.Errorf("auction listing requires endDate: %w", domain.ErrBadParamInput)
		}
		if !l.Auction.EndDate.After(l.Auction.StartDate) {
			return xerrors.Errorf("endDate must be after startDate: %w", domain.ErrBadParamInput)
		}
	} else if l.Auction.EndDate != nil {
		return xerrors.Errorf("endDate only allowed for auction listings: %w", domain.ErrBadParamInput)
	}
	if l.Pricing.StartingPrice < 1 {
		return xerrors.Errorf("startingPrice must be at least 1: %w", domain.ErrBadParamInput)
	}
	if l.Auction.BidIncrement < 1 {
		return xerrors.Errorf("bidIncrement must be at least 1: %w", domain.ErrBadParamInput)
	}
	if l.Pricing.BuyNowPrice != nil && *l.Pricing.BuyNowPrice < l.Pricing.StartingPrice {
		return xerrors.Errorf("buyNowPrice must not be below startingPrice: %w", domain.ErrBadParamInput)
	}
	return nil
}

// MinimumBid is the smallest acceptable next bid, always computed from
// the stored current bid.
func (l *Listing) MinimumBid() float64 {
	return l.Pricing.CurrentBid + l.Auction.BidIncrement
}

// HighestBid returns the bid matching the current bid amount, or nil
// when no bids were placed.
func (l *Listing) HighestBid() *Bid {
	var highest *Bid
	for i := range l.Bids {
		if highest == nil || l.Bids[i].Amount > highest.Amount {
			highest = &l.Bids[i]
		}
	}
	return highest
}

// TimeRemaining returns seconds until the auction window closes, zero
// once passed and nil for non auction listings.
func (l *Listing) TimeRemaining(now time.Time) *int64 {
	if l.Pricing.Type != PricingTypeAuction || l.Auction.EndDate == nil {
		return nil
	}
	remaining := int64(l.Auction.EndDate.Sub(now) / time.Second)
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// Ended reports whether the auction window has passed.
func (l *Listing) Ended(now time.Time) bool {
	return l.Pricing.Type == PricingTypeAuction && l.Auction.EndDate != nil && now.After(*l.Auction.EndDate)
}

// BuyNowPriceFor resolves the immediate purchase price. Fixed listings
// sell at the starting price, everything else needs an explicit buy
// now price.
func (l *Listing) BuyNowPriceFor() (float64, bool) {
	if l.Pricing.Type == PricingTypeFixed {
		return l.Pricing.StartingPrice, true
	}
	if l.Pricing.BuyNowPrice != nil {
		return *l.Pricing.BuyNowPrice, true
	}
	return 0, false
}

// IsWatchedBy reports whether the email already appears in the watcher set.
func (l *Listing) IsWatchedBy(email domain.Email) bool {
	for i := range l.Watchers {
		if l.Watchers[i].Email.Equals(email) {
			return true
		}
	}
	return false
}

// FindQuestion returns the embedded question with the given id.
func (l *Listing) FindQuestion(questionId string) *Question {
	for i := range l.Questions {
		if l.Questions[i].Id == questionId {
			return &l.Questions[i]
		}
	}
	return nil
}

// CanTransitionTo reports whether the status edge is legal. Terminal
// states have no outgoing edges.
func (l *Listing) CanTransitionTo(next Status) bool {
	switch l.Status {
	case StatusDraft:
		return next == StatusActive
	case StatusActive:
		return next == StatusSold || next == StatusExpired || next == StatusWithdrawn
	}
	return false
}

// Redacted returns a copy with bidder, watcher, questioner and seller
// contact fields cleared for unauthenticated reads.
func (l *Listing) Redacted() *Listing {
	c := *l
	c.Seller.Email = ""
	c.Seller.Phone = ""
	c.Bids = make([]Bid, len(l.Bids))
	copy(c.Bids, l.Bids)
	for i := range c.Bids {
		c.Bids[i].Bidder.Email = ""
		c.Bids[i].Bidder.Phone = ""
	}
	c.Watchers = make([]Watcher, len(l.Watchers))
	copy(c.Watchers, l.Watchers)
	for i := range c.Watchers {
		c.Watchers[i].Email = ""
		c.Watchers[i].Phone = ""
	}
	c.Questions = make([]Question, len(l.Questions))
	copy(c.Questions, l.Questions)
	for i := range c.Questions {
		c.Questions[i].Questioner.Email = ""
		c.Questions[i].Questioner.Phone = ""
	}
	if l.Transaction != nil {
		t := *l.Transaction
		t.Buyer.Email = ""
		t.Buyer.Phone = ""
		c.Transaction = &t
	}
	return &c
}

// BidderDisplay is the only bidder information attached to read responses.
type BidderDisplay struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// View decorates a redacted listing with computed fields for read
// responses. Computed values are never persisted.
type View struct {
	*Listing
	TimeRemaining *int64         `json:"timeRemaining,omitempty"`
	HighestBidder *BidderDisplay `json:"highestBidder,omitempty"`
}

// ToView builds the read model at now.
func (l *Listing) ToView(now time.Time) *View {
	v := &View{Listing: l.Redacted()}
	v.TimeRemaining = l.TimeRemaining(now)
	if highest := l.HighestBid(); highest != nil {
		v.HighestBidder = &BidderDisplay{Name: highest.Bidder.Name, Amount: highest.Amount}
	}
	return v
}

// ListingPatchable carries the versioned $set fields of a listing
type ListingPatchable struct {
	Status      *Status      `bson:"status,omitempty"`
	CurrentBid  *float64     `bson:"pricing.currentBid,omitempty"`
	Transaction *Transaction `bson:"transaction,omitempty"`
	UpdatedAt   *time.Time   `bson:"updatedAt,omitempty"`
}

type FindAllOptions struct {
	Status      *Status
	Category    *Category
	Condition   *Condition
	PricingType *PricingType
	SellerEmail *domain.Email
	PriceGTE    *float64
	PriceLTE    *float64
	Search      *string
	Tag         *string
	EndDateGTE  *time.Time
	EndDateLTE  *time.Time
	Offset      *int32
	Limit       *int32
	SortBy      *string
	SortDesc    *bool
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithStatus(status Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Status = &status
		return nil
	}
}

func WithCategory(category Category) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Category = &category
		return nil
	}
}

func WithCondition(condition Condition) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Condition = &condition
		return nil
	}
}

func WithPricingType(pricingType PricingType) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.PricingType = &pricingType
		return nil
	}
}

func WithSellerEmail(email domain.Email) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		email = email.ToLower()
		options.SellerEmail = &email
		return nil
	}
}

func WithPriceRange(gte, lte *float64) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.PriceGTE = gte
		options.PriceLTE = lte
		return nil
	}
}

func WithSearch(search string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Search = &search
		return nil
	}
}

func WithTag(tag string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Tag = &tag
		return nil
	}
}

func WithEndDateGTE(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.EndDateGTE = &t
		return nil
	}
}

func WithEndDateLTE(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.EndDateLTE = &t
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSort(sortBy string, desc bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SortBy = &sortBy
		options.SortDesc = &desc
		return nil
	}
}

// StatusCount is one bucket of the per status aggregation.
type StatusCount struct {
	Status Status `json:"status" bson:"_id"`
	Count  int64  `json:"count" bson:"count"`
}

// CategoryCount is one bucket of the category distribution.
type CategoryCount struct {
	Category Category `json:"category" bson:"_id"`
	Count    int64    `json:"count" bson:"count"`
}

// Stats is the aggregate overview of the marketplace.
type Stats struct {
	TotalListings        int64           `json:"totalListings"`
	ByStatus             []StatusCount   `json:"byStatus"`
	CategoryDistribution []CategoryCount `json:"categoryDistribution"`
	TotalSalesValue      float64         `json:"totalSalesValue"`
	EndingSoon           []*View         `json:"endingSoon"`
}

// BidResult is returned by a successful bid.
type BidResult struct {
	CurrentBid     float64 `json:"currentBid"`
	NextMinimumBid float64 `json:"nextMinimumBid"`
}

// PurchaseResult is returned by a successful buy now.
// PurchasedItem is the non-sensitive listing summary echoed back on a
// successful purchase.
type PurchasedItem struct {
	Title  string `json:"title"`
	Seller string `json:"seller"`
}

type PurchaseResult struct {
	FinalPrice      float64       `json:"finalPrice"`
	TransactionDate time.Time     `json:"transactionDate"`
	Item            PurchasedItem `json:"item"`
}

// SearchResult is one page of listings plus pagination metadata.
type SearchResult struct {
	Items      []*View `json:"items"`
	Total      int     `json:"total"`
	Page       int32   `json:"page"`
	TotalPages int32   `json:"totalPages"`
}

// Repo is the storage layer of listings. Methods taking a version only
// apply when the stored version still matches and return
// domain.ErrVersionConflict otherwise.
type Repo interface {
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Count(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	FindOne(ctx ctx.Ctx, id Id) (*Listing, error)
	Create(ctx ctx.Ctx, l *Listing) error
	IncrementViews(ctx ctx.Ctx, id Id, count int) error

	UpdateWithVersion(ctx ctx.Ctx, id Id, version int64, patchable ListingPatchable) error
	AppendBidWithVersion(ctx ctx.Ctx, id Id, version int64, bid Bid) error
	AppendWatcherWithVersion(ctx ctx.Ctx, id Id, version int64, watcher Watcher) error
	AppendQuestionWithVersion(ctx ctx.Ctx, id Id, version int64, question Question) error
	AnswerQuestionWithVersion(ctx ctx.Ctx, id Id, version int64, questionId string, answer string, answeredAt time.Time) error

	CountByStatus(ctx ctx.Ctx) ([]StatusCount, error)
	CategoryDistribution(ctx ctx.Ctx) ([]CategoryCount, error)
	TotalSalesValue(ctx ctx.Ctx) (float64, error)
}

// UseCase drives the listing lifecycle, the bid engine and the
// purchase finalizer.
type UseCase interface {
	Create(ctx ctx.Ctx, l *Listing) (*Listing, error)
	Get(ctx ctx.Ctx, id Id) (*View, error)
	Search(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (*SearchResult, error)
	PlaceBid(ctx ctx.Ctx, id Id, bidder Contact, amount float64) (*BidResult, error)
	BuyNow(ctx ctx.Ctx, id Id, buyer Contact, paymentMethod PaymentMethod) (*PurchaseResult, error)
	Watch(ctx ctx.Ctx, id Id, watcher Contact) (int, error)
	AskQuestion(ctx ctx.Ctx, id Id, questioner Contact, question string) (*Question, error)
	AnswerQuestion(ctx ctx.Ctx, id Id, questionId string, answer string) (*Question, error)
	SetStatus(ctx ctx.Ctx, id Id, status Status) (*View, error)
	Stats(ctx ctx.Ctx) (*Stats, error)
}
