package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/campustrade/goapi/base/ctx"
	"github.com/campustrade/goapi/base/database/mongoclient"
	"github.com/campustrade/goapi/base/log"
	"github.com/campustrade/goapi/domain"
	"github.com/campustrade/goapi/domain/listing"
	"github.com/campustrade/goapi/service/query"
)

type listingRepoImpl struct {
	q query.Mongo
}

func NewListingRepo(q query.Mongo) listing.Repo {
	return &listingRepoImpl{q}
}

func (im *listingRepoImpl) makeQuery(opts ...listing.FindAllOptionsFunc) (bson.M, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := bson.M{}

	if options.Status != nil {
		query["status"] = *options.Status
	}

	if options.Category != nil {
		query["category"] = *options.Category
	}

	if options.Condition != nil {
		query["condition"] = *options.Condition
	}

	if options.PricingType != nil {
		query["pricing.type"] = *options.PricingType
	}

	if options.SellerEmail != nil {
		query["seller.email"] = *options.SellerEmail
	}

	priceQuery := bson.M{}
	if options.PriceGTE != nil {
		priceQuery["$gte"] = *options.PriceGTE
	}

	if options.PriceLTE != nil {
		priceQuery["$lte"] = *options.PriceLTE
	}

	if len(priceQuery) > 0 {
		query["pricing.currentBid"] = priceQuery
	}

	if options.Search != nil {
		pattern := bson.M{"$regex": *options.Search, "$options": "i"}
		query["$or"] = []bson.M{
			{"title": pattern},
			{"description": pattern},
		}
	}

	if options.Tag != nil {
		query["tags"] = *options.Tag
	}

	endDateQuery := bson.M{}
	if options.EndDateGTE != nil {
		endDateQuery["$gte"] = *options.EndDateGTE
	}

	if options.EndDateLTE != nil {
		endDateQuery["$lte"] = *options.EndDateLTE
	}

	if len(endDateQuery) > 0 {
		query["auction.endDate"] = endDateQuery
	}

	return query, nil
}

func (im *listingRepoImpl) makeSort(opts ...listing.FindAllOptionsFunc) string {
	options, _ := listing.GetFindAllOptions(opts...)
	sortBy := "createdAt"
	if options.SortBy != nil {
		sortBy = *options.SortBy
	}
	if options.SortDesc != nil && *options.SortDesc {
		return "-" + sortBy
	}
	return sortBy
}

func (im *listingRepoImpl) FindAll(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery failed")
		return nil, err
	}

	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	offset := 0
	limit := 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*listing.Listing{}
	err = im.q.Search(ctx, domain.TableListings, offset, limit, im.makeSort(opts...), qry, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *listingRepoImpl) Count(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) (int, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery failed")
		return 0, err
	}

	cnt, err := im.q.Count(ctx, domain.TableListings, qry)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *listingRepoImpl) FindOne(ctx ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	res := listing.Listing{}
	err := im.q.FindOne(ctx, domain.TableListings, bson.M{"id": id}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *listingRepoImpl) Create(ctx ctx.Ctx, l *listing.Listing) error {
	if err := im.q.Insert(ctx, domain.TableListings, l); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  l.Id,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *listingRepoImpl) IncrementViews(ctx ctx.Ctx, id listing.Id, count int) error {
	res := listing.Listing{}
	if err := im.q.Increment(ctx, domain.TableListings, bson.M{"id": id}, &res, "views", count); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.Increment")
		return err
	}
	return nil
}

// versionedPatch applies updater only when the stored version still
// matches. query.ErrNotFound is disambiguated into domain.ErrNotFound
// or domain.ErrVersionConflict by re-reading the listing.
func (im *listingRepoImpl) versionedPatch(ctx ctx.Ctx, id listing.Id, version int64, updater bson.M) error {
	selector := bson.M{"id": id, "version": version}

	err := im.q.CustomPatch(ctx, domain.TableListings, selector, updater, false)
	if err == nil {
		return nil
	}
	if err != query.ErrNotFound {
		ctx.WithFields(log.Fields{
			"err":     err,
			"id":      id,
			"version": version,
		}).Error("failed to q.CustomPatch")
		return err
	}

	if _, err := im.FindOne(ctx, id); err != nil {
		return err
	}
	return domain.ErrVersionConflict
}

func (im *listingRepoImpl) UpdateWithVersion(ctx ctx.Ctx, id listing.Id, version int64, patchable listing.ListingPatchable) error {
	set, err := mongoclient.MakeBsonM(&patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	updater := bson.M{
		"$set": set,
		"$inc": bson.M{"version": 1},
	}
	return im.versionedPatch(ctx, id, version, updater)
}

func (im *listingRepoImpl) AppendBidWithVersion(ctx ctx.Ctx, id listing.Id, version int64, bid listing.Bid) error {
	updater := bson.M{
		"$push": bson.M{"bids": bid},
		"$set": bson.M{
			"pricing.currentBid": bid.Amount,
			"updatedAt":          bid.BidTime,
		},
		"$inc": bson.M{"version": 1},
	}
	return im.versionedPatch(ctx, id, version, updater)
}

func (im *listingRepoImpl) AppendWatcherWithVersion(ctx ctx.Ctx, id listing.Id, version int64, watcher listing.Watcher) error {
	updater := bson.M{
		"$push": bson.M{"watchers": watcher},
		"$set":  bson.M{"updatedAt": watcher.WatchDate},
		"$inc":  bson.M{"version": 1},
	}
	return im.versionedPatch(ctx, id, version, updater)
}

func (im *listingRepoImpl) AppendQuestionWithVersion(ctx ctx.Ctx, id listing.Id, version int64, question listing.Question) error {
	updater := bson.M{
		"$push": bson.M{"questions": question},
		"$set":  bson.M{"updatedAt": question.QuestionDate},
		"$inc":  bson.M{"version": 1},
	}
	return im.versionedPatch(ctx, id, version, updater)
}

func (im *listingRepoImpl) AnswerQuestionWithVersion(ctx ctx.Ctx, id listing.Id, version int64, questionId string, answer string, answeredAt time.Time) error {
	selector := bson.M{"id": id, "version": version, "questions.id": questionId}
	updater := bson.M{
		"$set": bson.M{
			"questions.$.answer":     answer,
			"questions.$.answerDate": answeredAt,
			"updatedAt":              answeredAt,
		},
		"$inc": bson.M{"version": 1},
	}

	err := im.q.CustomPatch(ctx, domain.TableListings, selector, updater, false)
	if err == nil {
		return nil
	}
	if err != query.ErrNotFound {
		ctx.WithFields(log.Fields{
			"err":        err,
			"id":         id,
			"questionId": questionId,
		}).Error("failed to q.CustomPatch")
		return err
	}

	l, err := im.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if l.FindQuestion(questionId) == nil {
		return domain.ErrNotFound
	}
	return domain.ErrVersionConflict
}

func (im *listingRepoImpl) CountByStatus(ctx ctx.Ctx) ([]listing.StatusCount, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
	}

	iter, fnClose, err := im.q.Pipe(ctx, domain.TableListings, pipeline)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.Pipe")
		return nil, err
	}
	defer fnClose()

	res := []listing.StatusCount{}
	if err := iter.All(ctx, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to iter.All")
		return nil, err
	}
	return res, nil
}

func (im *listingRepoImpl) CategoryDistribution(ctx ctx.Ctx) ([]listing.CategoryCount, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
	}

	iter, fnClose, err := im.q.Pipe(ctx, domain.TableListings, pipeline)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.Pipe")
		return nil, err
	}
	defer fnClose()

	res := []listing.CategoryCount{}
	if err := iter.All(ctx, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to iter.All")
		return nil, err
	}
	return res, nil
}

func (im *listingRepoImpl) TotalSalesValue(ctx ctx.Ctx) (float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"status": listing.StatusSold}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$transaction.finalPrice"}}},
	}

	iter, fnClose, err := im.q.Pipe(ctx, domain.TableListings, pipeline)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.Pipe")
		return 0, err
	}
	defer fnClose()

	type row struct {
		Total float64 `bson:"total"`
	}
	rows := []row{}
	if err := iter.All(ctx, &rows); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to iter.All")
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
