package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trimmers-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = `id, tax, shipping_fee, subtotal, total, status, user_id, client_secret,
		payment_intent_id, created_at, updated_at`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

func scanOrder(row rowScanner) (model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.Tax, &o.ShippingFee, &o.Subtotal, &o.Total, &o.Status, &o.UserID, &o.ClientSecret,
		&o.PaymentIntentID, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

// Create inserts the order and its items in one transaction.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) (err error) {
	now := time.Now().UTC()
	order.ID = uuid.NewString()
	order.CreatedAt = now
	order.UpdatedAt = now

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = tx.Exec(ctx, query,
		order.ID, order.Tax, order.ShippingFee, order.Subtotal, order.Total, order.Status,
		order.UserID, order.ClientSecret, order.PaymentIntentID, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err = r.createItems(ctx, tx, order); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to commit transaction")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID).
		Int("item_count", len(order.OrderItems)).
		Msg("order created successfully")

	return nil
}

// createItems inserts the order items within the provided transaction.
func (r *orderRepository) createItems(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	if len(order.OrderItems) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, name, image, price, amount, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	batch := &pgx.Batch{}
	for i, item := range order.OrderItems {
		batch.Queue(query, uuid.NewString(), order.ID, item.ProductID, item.Name, item.Image, item.Price, item.Amount, i)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range order.OrderItems {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", order.ID).
				Str("product_id", order.OrderItems[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	return nil
}

// FindByID retrieves an order by its ID along with its items.
func (r *orderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	if !validID(id) {
		return nil, nil
	}

	order, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.findItems(ctx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.OrderItems = items[order.ID]

	return &order, nil
}

// FindAll retrieves every order, oldest first.
func (r *orderRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at, id`)
}

// FindByUser retrieves the orders placed by a user, oldest first.
func (r *orderRepository) FindByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at, id`, userID)
}

// UpdatePayment records a payment intent and the new status.
func (r *orderRepository) UpdatePayment(ctx context.Context, id, paymentIntentID, status string) (*model.Order, error) {
	if !validID(id) {
		return nil, nil
	}

	query := `
		UPDATE orders SET payment_intent_id = $2, status = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, paymentIntentID, status, time.Now().UTC())
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to update order")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	return r.FindByID(ctx, id)
}

func (r *orderRepository) query(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	items, err := r.findItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].OrderItems = items[orders[i].ID]
	}

	return orders, nil
}

// findItems loads the items of the given orders keyed by order ID.
func (r *orderRepository) findItems(ctx context.Context, orderIDs []string) (map[string][]model.OrderItem, error) {
	query := `
		SELECT order_id, product_id, name, image, price, amount
		FROM order_items
		WHERE order_id::text = ANY($1)
		ORDER BY order_id, position
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Int("order_count", len(orderIDs)).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]model.OrderItem, len(orderIDs))
	for rows.Next() {
		var (
			orderID string
			item    model.OrderItem
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.Image, &item.Price, &item.Amount); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items[orderID] = append(items[orderID], item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}
