package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const selectOrders = `
	SELECT
		o.id,
		o.customer_id,
		COALESCE(u.username, ''),
		o.status,
		o.total,
		o.payment_method,
		o.delivery_address,
		o.driver_id,
		o.created_at,
		o.updated_at
	FROM orders o
	LEFT JOIN users u ON u.id = o.customer_id
`

// orderReader loads order read models with their items in two round trips.
type orderReader struct {
	db *gorm.DB
}

// find runs selectOrders with the given WHERE clause, newest first.
func (r orderReader) find(ctx context.Context, where string, args ...any) ([]OrderResponse, error) {
	rows, err := r.db.WithContext(ctx).Raw(selectOrders+where+`
		ORDER BY o.created_at DESC, o.id
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		var (
			resp                  OrderResponse
			id, customerID        uuid.UUID
			driverID              uuid.NullUUID
			status, paymentMethod string
		)

		err = rows.Scan(
			&id,
			&customerID,
			&resp.CustomerName,
			&status,
			&resp.Total,
			&paymentMethod,
			&resp.DeliveryAddress,
			&driverID,
			&resp.CreatedAt,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if driverID.Valid {
			driver, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.DriverID = &driver
		}
		if resp.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		if resp.PaymentMethod, err = order.ParsePaymentMethod(paymentMethod); err != nil {
			return nil, err
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r orderReader) attachItems(ctx context.Context, orders []OrderResponse) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i := range orders {
		id := orders[i].ID.Bytes()
		ids = append(ids, id)
		index[id] = i
		orders[i].Items = make([]OrderItemResponse, 0)
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product_id,
			name_en,
			COALESCE(name_ar, ''),
			quantity,
			unit_price
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID uuid.UUID
			item    OrderItemResponse
		)
		if err = rows.Scan(&orderID, &item.ProductID, &item.NameEn, &item.NameAr, &item.Quantity, &item.UnitPrice); err != nil {
			return err
		}

		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	return rows.Err()
}
