package models

import "github.com/shopspring/decimal"

type Store struct {
	StoreID     int             `json:"store_id" gorm:"column:storeid;primaryKey;autoIncrement:false"`
	Address     string          `json:"address" gorm:"column:address"`
	City        string          `json:"city" gorm:"column:city"`
	State       string          `json:"state" gorm:"column:state"`
	IsOpen      bool            `json:"is_open" gorm:"column:isopen"`
	ReviewScore decimal.Decimal `json:"review_score" gorm:"column:reviewscore;type:numeric(4,2)"`
}

func (Store) TableName() string { return "store" }

type Item struct {
	ItemName    string          `json:"item_name" gorm:"column:itemname;primaryKey"`
	Ingredients string          `json:"ingredients" gorm:"column:ingredients"`
	TypeOfItem  string          `json:"type_of_item" gorm:"column:typeofitem"`
	Price       decimal.Decimal `json:"price" gorm:"column:price;type:numeric(10,2);not null"`
	Description *string         `json:"description" gorm:"column:description"`
}

func (Item) TableName() string { return "items" }

// DescriptionOr returns the item description, or fallback when it is unset or blank.
func (i Item) DescriptionOr(fallback string) string {
	if i.Description == nil || *i.Description == "" {
		return fallback
	}
	return *i.Description
}
