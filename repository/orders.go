package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pizza-store/database"
	"pizza-store/models"
	"pizza-store/session"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// orderIDSequence backs foodorder.orderid on postgres.
const orderIDSequence = "foodorder_orderid_seq"

// OrderDraft is an order being placed. Everything it writes happens inside one transaction
// that is committed by Finalize or rolled back by Abort, so an order without line items never
// becomes visible.
type OrderDraft struct {
	tx    *gorm.DB
	conn  *database.Conn
	order models.FoodOrder
	lines []models.OrderLine
	index map[string]int
	total decimal.Decimal
	done  bool
}

// BeginOrder opens a transaction and inserts an incomplete order for the session's user at
// an open store.
func (r *Repository) BeginOrder(ctx context.Context, s *session.Session, storeID int) (*OrderDraft, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	if _, err := r.OpenStore(ctx, storeID); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin tx: %w", tx.Error)
	}
	d := &OrderDraft{
		tx:   tx,
		conn: r.conn.WithTx(tx),
		order: models.FoodOrder{
			Login:          s.Login,
			StoreID:        storeID,
			OrderTimestamp: time.Now().UTC(),
			TotalPrice:     decimal.Zero,
			OrderStatus:    models.StatusIncomplete,
		},
		index: map[string]int{},
		total: decimal.Zero,
	}

	err := d.conn.ExecUpdate(ctx,
		`INSERT INTO foodorder (login, storeid, ordertimestamp, totalprice, orderstatus) VALUES (?, ?, ?, ?, ?)`,
		d.order.Login, d.order.StoreID, d.order.OrderTimestamp, d.order.TotalPrice, string(d.order.OrderStatus))
	if err != nil {
		d.rollback()
		return nil, fmt.Errorf("insert into foodorder: %w", err)
	}
	id, err := d.conn.CurrSeqVal(ctx, orderIDSequence)
	if err != nil {
		d.rollback()
		return nil, fmt.Errorf("order id: %w", err)
	}
	d.order.OrderID = id
	return d, nil
}

func (d *OrderDraft) rollback() error {
	d.done = true
	if err := d.tx.Rollback().Error; err != nil && !errors.Is(err, gorm.ErrInvalidTransaction) {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

func (d *OrderDraft) OrderID() int64 {
	return d.order.OrderID
}

func (d *OrderDraft) StoreID() int {
	return d.order.StoreID
}

// Total is the running total of all lines added so far.
func (d *OrderDraft) Total() decimal.Decimal {
	return d.total
}

// Lines returns a copy of the lines added so far, in the order they were first added.
func (d *OrderDraft) Lines() []models.OrderLine {
	out := make([]models.OrderLine, len(d.lines))
	copy(out, d.lines)
	return out
}

// Catalog returns the menu grouped by type, read inside the draft's transaction.
func (d *OrderDraft) Catalog(ctx context.Context) ([]ItemGroup, error) {
	if d.done {
		return nil, ErrDraftClosed
	}
	return catalog(d.tx.WithContext(ctx))
}

// LookupItem finds a menu item by its exact name. Unknown names yield ErrUnknownItem.
func (d *OrderDraft) LookupItem(ctx context.Context, name string) (*models.Item, error) {
	if d.done {
		return nil, ErrDraftClosed
	}
	item, err := findItem(d.tx.WithContext(ctx), name)
	if errors.Is(err, ErrItemNotFound) {
		return nil, ErrUnknownItem
	}
	return item, err
}

// AddItem adds quantity units of the named item. Unknown names and non-positive quantities
// are rejected without touching the order. Adding an item already on the order increases
// its quantity. The returned line reflects the accumulated quantity.
func (d *OrderDraft) AddItem(ctx context.Context, name string, quantity int) (models.OrderLine, error) {
	if d.done {
		return models.OrderLine{}, ErrDraftClosed
	}
	if quantity <= 0 {
		return models.OrderLine{}, ErrInvalidQuantity
	}

	item, err := d.LookupItem(ctx, name)
	if err != nil {
		return models.OrderLine{}, err
	}
	itemName := strings.TrimSpace(item.ItemName)

	i, seen := d.index[itemName]
	if seen {
		err = d.conn.ExecUpdate(ctx,
			`UPDATE itemsinorder SET quantity = quantity + ? WHERE orderid = ? AND itemname = ?`,
			quantity, d.order.OrderID, item.ItemName)
	} else {
		err = d.conn.ExecUpdate(ctx,
			`INSERT INTO itemsinorder (orderid, itemname, quantity) VALUES (?, ?, ?)`,
			d.order.OrderID, item.ItemName, quantity)
	}
	if err != nil {
		return models.OrderLine{}, fmt.Errorf("insert into itemsinorder: %w", err)
	}

	if !seen {
		d.lines = append(d.lines, models.OrderLine{ItemName: itemName, UnitPrice: item.Price, Subtotal: decimal.Zero})
		i = len(d.lines) - 1
		d.index[itemName] = i
	}
	line := &d.lines[i]
	line.Quantity += quantity
	line.Subtotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
	d.total = d.total.Add(item.Price.Mul(decimal.NewFromInt(int64(quantity))))
	return *line, nil
}

// Finalize writes the total and commits. A draft without lines is rolled back instead and
// ErrEmptyOrder is returned.
func (d *OrderDraft) Finalize(ctx context.Context) (*models.OrderDetail, error) {
	if d.done {
		return nil, ErrDraftClosed
	}
	if len(d.lines) == 0 {
		if err := d.rollback(); err != nil {
			return nil, err
		}
		return nil, ErrEmptyOrder
	}

	err := d.conn.ExecUpdate(ctx, `UPDATE foodorder SET totalprice = ? WHERE orderid = ?`, d.total, d.order.OrderID)
	if err != nil {
		d.rollback()
		return nil, fmt.Errorf("update foodorder total: %w", err)
	}
	d.done = true
	if err := d.tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	d.order.TotalPrice = d.total
	return &models.OrderDetail{Order: d.order, Lines: d.Lines(), ComputedTotal: d.total}, nil
}

// Abort rolls the draft back. It is safe to call after Finalize.
func (d *OrderDraft) Abort() error {
	if d.done {
		return nil
	}
	return d.rollback()
}
