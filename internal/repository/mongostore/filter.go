package mongostore

import (
	"regexp"

	"trimmers-api/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// productFilter translates a catalogue filter into a query document.
// An empty filter matches every product.
func productFilter(f model.ProductFilter) bson.D {
	filter := bson.D{}

	if f.Search != "" {
		filter = append(filter, bson.E{Key: "name", Value: bson.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}})
	}
	if f.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: f.Category})
	}
	if f.Company != "" {
		filter = append(filter, bson.E{Key: "company", Value: f.Company})
	}
	if f.Color != "" {
		filter = append(filter, bson.E{Key: "color", Value: f.Color})
	}
	if f.MaxPrice != nil {
		filter = append(filter, bson.E{Key: "price", Value: bson.D{{Key: "$lte", Value: *f.MaxPrice}}})
	}
	if f.FreeShipping {
		filter = append(filter, bson.E{Key: "freeShipping", Value: true})
	}

	return filter
}

// productSort returns the sort document for s. _id breaks ties in insertion order.
func productSort(s model.SortOrder) bson.D {
	field, ok := s.Field()
	if !ok {
		return bson.D{{Key: "_id", Value: 1}}
	}

	direction := 1
	if field.Descending {
		direction = -1
	}
	return bson.D{{Key: field.Field, Value: direction}, {Key: "_id", Value: 1}}
}

// productFindOptions builds the find options for opts. A zero limit means no limit.
func productFindOptions(opts model.FindOptions) *options.FindOptionsBuilder {
	find := options.Find().SetSort(productSort(opts.Sort))
	if opts.Skip > 0 {
		find.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		find.SetLimit(opts.Limit)
	}
	return find
}

// objectID parses a hex id. Malformed ids match nothing.
func objectID(id string) (bson.ObjectID, bool) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, false
	}
	return oid, true
}
