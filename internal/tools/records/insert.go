package records

import (
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/adk/tool"

	"atlas/internal/domain/order"
	"atlas/internal/domain/product"
	"atlas/internal/domain/supplier"
	"atlas/internal/tools/shared"
	"atlas/pkg/errors"
)

// NewDBInsertTool creates a record in a collection. Business IDs
// (P001/S001/O001 style) and dates are assigned server-side; order
// totals are computed from quantity and unit price.
func NewDBInsertTool(deps shared.Deps) (tool.Tool, error) {
	return shared.NewToolBuilder(
		"db_insert",
		"Insert a new record into a collection. Args: collection (products|suppliers|orders), "+
			"data (object with the record's fields). IDs and dates are assigned automatically.",
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			collection, ok := shared.StringArg(args, "collection")
			if !ok {
				return nil, errors.Wrap(errors.ErrInvalidInput, "collection is required")
			}
			if !validCollection(collection) {
				return nil, invalidCollectionErr(collection)
			}

			data, ok := shared.MapArg(args, "data")
			if !ok || len(data) == 0 {
				return nil, errors.Wrap(errors.ErrInvalidInput, "data object is required")
			}

			record, err := insertRecord(ctx, deps, collection, data)
			if err != nil {
				return nil, err
			}

			bumpCollectionVersion(ctx, deps.Cache, collection)

			return shared.OK(map[string]interface{}{
				"collection": collection,
				"record":     record,
			}), nil
		},
		deps,
	).
		WithTimeout(10 * time.Second).
		WithMetrics().
		Build()
}

func insertRecord(ctx tool.Context, deps shared.Deps, collection string, data map[string]interface{}) (map[string]interface{}, error) {
	if !deps.HasRecordServices() {
		return nil, errors.Wrap(errors.ErrUnavailable, "record services not configured")
	}

	switch collection {
	case CollectionProducts:
		p, err := deps.Products.Create(ctx, product.CreateInput{
			Name:       stringField(data, "product_name"),
			Price:      decimalField(data, "price"),
			StockCount: intField(data, "stock_count"),
			Category:   stringField(data, "category"),
			Supplier:   stringField(data, "supplier"),
			Rating:     shared.FloatArg(data, "rating", 0),
		})
		if err != nil {
			return nil, err
		}
		return toRecord(p)

	case CollectionSuppliers:
		s, err := deps.Suppliers.Create(ctx, supplier.CreateInput{
			Name:          stringField(data, "supplier_name"),
			ContactEmail:  stringField(data, "contact_email"),
			ContactNumber: stringField(data, "contact_number"),
			Address:       stringField(data, "address"),
			Rating:        shared.FloatArg(data, "rating", 0),
		})
		if err != nil {
			return nil, err
		}
		return toRecord(s)

	case CollectionOrders:
		o, err := deps.Orders.Create(ctx, order.CreateInput{
			ProductID:    stringField(data, "product_id"),
			Quantity:     intField(data, "quantity"),
			PricePerUnit: decimalField(data, "price_per_unit"),
			CustomerName: stringField(data, "customer_name"),
			TotalPrice:   decimalField(data, "total_price"),
		})
		if err != nil {
			return nil, err
		}
		return toRecord(o)
	}

	return nil, invalidCollectionErr(collection)
}

func stringField(data map[string]interface{}, key string) string {
	v, _ := data[key].(string)
	return v
}

func intField(data map[string]interface{}, key string) int {
	return shared.IntArg(data, key, 0)
}

func decimalField(data map[string]interface{}, key string) decimal.Decimal {
	switch v := data[key].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case string:
		d, err := decimal.NewFromString(v)
		if err == nil {
			return d
		}
	}
	return decimal.Zero
}
