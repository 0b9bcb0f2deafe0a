package repository

import (
	"context"
	"errors"
	"fmt"

	"pizza-store/database"
	"pizza-store/models"
	"pizza-store/session"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecentOrderLimit caps the recent orders report.
const RecentOrderLimit = 5

const (
	ownOrdersQuery = `SELECT orderid, ordertimestamp, totalprice, TRIM(orderstatus) AS orderstatus FROM foodorder
WHERE TRIM(login) = ? ORDER BY ordertimestamp DESC, orderid DESC`
	allOrdersQuery = `SELECT orderid, TRIM(login) AS login, ordertimestamp, totalprice, TRIM(orderstatus) AS orderstatus
FROM foodorder ORDER BY ordertimestamp DESC, orderid DESC`
)

// OrderHistory lists orders newest first. Customers only see their own; drivers and managers
// see everyone's with the owning login as an extra column. A limit of zero means no limit.
func (r *Repository) OrderHistory(ctx context.Context, s *session.Session, limit int) (*database.Table, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	query, args := ownOrdersQuery, []interface{}{s.Login}
	if s.SeesAllOrders() {
		query, args = allOrdersQuery, nil
	}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	table, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("order history: %w", err)
	}
	return table, nil
}

// RecentOrders is OrderHistory capped at RecentOrderLimit rows.
func (r *Repository) RecentOrders(ctx context.Context, s *session.Session) (*database.Table, error) {
	return r.OrderHistory(ctx, s, RecentOrderLimit)
}

// checkOrderAccess fails with ErrOrderNotFound when the order does not exist and with
// ErrForbidden when a customer asks for somebody else's order.
func (r *Repository) checkOrderAccess(ctx context.Context, s *session.Session, orderID int64) error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	n, err := r.conn.QueryCount(ctx, `SELECT 1 FROM foodorder WHERE orderid = ?`, orderID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	if s.SeesAllOrders() {
		return nil
	}
	n, err = r.conn.QueryCount(ctx, `SELECT 1 FROM foodorder WHERE orderid = ? AND TRIM(login) = ?`, orderID, s.Login)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrForbidden
	}
	return nil
}

func (r *Repository) getOrder(ctx context.Context, orderID int64) (*models.FoodOrder, error) {
	var order models.FoodOrder
	err := r.db.WithContext(ctx).Where("orderid = ?", orderID).First(&order).Error
	switch {
	case err == nil:
		return &order, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrOrderNotFound
	default:
		return nil, fmt.Errorf("select order: %w", err)
	}
}

// OrderDetail returns an order with its line items and a total recomputed from them.
func (r *Repository) OrderDetail(ctx context.Context, s *session.Session, orderID int64) (*models.OrderDetail, error) {
	if err := r.checkOrderAccess(ctx, s, orderID); err != nil {
		return nil, err
	}
	order, err := r.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var lines []models.OrderLine
	err = r.db.WithContext(ctx).Raw(`SELECT io.itemname, io.quantity, i.price
FROM itemsinorder io JOIN items i ON i.itemname = io.itemname
WHERE io.orderid = ? ORDER BY io.itemname`, orderID).Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("select order lines: %w", err)
	}

	total := decimal.Zero
	for i := range lines {
		lines[i].Subtotal = lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(lines[i].Quantity)))
		total = total.Add(lines[i].Subtotal)
	}
	return &models.OrderDetail{Order: *order, Lines: lines, ComputedTotal: total}, nil
}
