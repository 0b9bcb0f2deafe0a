package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents all possible states of a food order
type OrderStatus string

const (
	StatusIncomplete OrderStatus = "incomplete"
	StatusComplete   OrderStatus = "complete"
)

type FoodOrder struct {
	OrderID        int64           `json:"order_id" gorm:"column:orderid;primaryKey;autoIncrement"`
	Login          string          `json:"login" gorm:"column:login;not null;index"`
	StoreID        int             `json:"store_id" gorm:"column:storeid;not null"`
	OrderTimestamp time.Time       `json:"order_timestamp" gorm:"column:ordertimestamp;not null"`
	TotalPrice     decimal.Decimal `json:"total_price" gorm:"column:totalprice;type:numeric(10,2);not null"`
	OrderStatus    OrderStatus     `json:"order_status" gorm:"column:orderstatus;not null;default:'incomplete'"`
}

func (FoodOrder) TableName() string { return "foodorder" }

// ItemsInOrder is one line item of an order. The pair (OrderID, ItemName) is unique;
// re-adding an item merges into the existing row.
type ItemsInOrder struct {
	OrderID  int64  `json:"order_id" gorm:"column:orderid;primaryKey;autoIncrement:false"`
	ItemName string `json:"item_name" gorm:"column:itemname;primaryKey"`
	Quantity int    `json:"quantity" gorm:"column:quantity;not null"`
}

func (ItemsInOrder) TableName() string { return "itemsinorder" }

// OrderLine is a joined view of a line item with its unit price snapshot
type OrderLine struct {
	ItemName  string          `json:"item_name" gorm:"column:itemname"`
	Quantity  int             `json:"quantity" gorm:"column:quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"column:price"`
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"-"`
}

// OrderDetail is a single order with its lines and a recomputed total
type OrderDetail struct {
	Order         FoodOrder       `json:"order"`
	Lines         []OrderLine     `json:"lines"`
	ComputedTotal decimal.Decimal `json:"computed_total"`
}

// AllModels lists every table the client touches, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Store{},
		&Item{},
		&FoodOrder{},
		&ItemsInOrder{},
	}
}
