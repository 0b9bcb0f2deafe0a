package repository

import (
	"pizza-store/models"
)

func (s *RepositorySuite) TestPlaceOrderTotalsExactly() {
	d, err := s.repo.BeginOrder(s.ctx, customer("alice"), 1)
	s.Require().NoError(err)
	s.NotZero(d.OrderID())

	_, err = d.AddItem(s.ctx, "Pepperoni", 2)
	s.Require().NoError(err)
	_, err = d.AddItem(s.ctx, "Coke", 1)
	s.Require().NoError(err)

	detail, err := d.Finalize(s.ctx)
	s.Require().NoError(err)

	want := price("12.99").Mul(price("2")).Add(price("1.99"))
	s.True(detail.Order.TotalPrice.Equal(want), "got %s", detail.Order.TotalPrice)
	s.Equal(2, s.countRows("itemsinorder", "orderid = ?", d.OrderID()))

	var stored models.FoodOrder
	s.Require().NoError(s.db.Where("orderid = ?", d.OrderID()).First(&stored).Error)
	s.True(stored.TotalPrice.Equal(want), "stored %s", stored.TotalPrice)
	s.Equal(models.StatusIncomplete, stored.OrderStatus)
	s.Equal("alice", stored.Login)
}

func (s *RepositorySuite) TestEmptyOrderNeverPersists() {
	d, err := s.repo.BeginOrder(s.ctx, customer("alice"), 3)
	s.Require().NoError(err)
	id := d.OrderID()

	_, err = d.Finalize(s.ctx)
	s.ErrorIs(err, ErrEmptyOrder)
	s.Zero(s.countRows("foodorder", "orderid = ?", id))
	s.Zero(s.countRows("foodorder", "1 = 1"))
}

func (s *RepositorySuite) TestUnknownItemHasNoSideEffect() {
	d, err := s.repo.BeginOrder(s.ctx, customer("bob"), 1)
	s.Require().NoError(err)

	_, err = d.AddItem(s.ctx, "Calzone", 3)
	s.ErrorIs(err, ErrUnknownItem)
	s.True(d.Total().IsZero())
	s.Empty(d.Lines())

	_, err = d.AddItem(s.ctx, "Fries", 1)
	s.Require().NoError(err)
	_, err = d.AddItem(s.ctx, "Nope", 1)
	s.ErrorIs(err, ErrUnknownItem)
	s.True(d.Total().Equal(price("3.25")))

	_, err = d.Finalize(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, s.countRows("itemsinorder", "orderid = ?", d.OrderID()))
}

func (s *RepositorySuite) TestRepeatedItemMergesQuantity() {
	d, err := s.repo.BeginOrder(s.ctx, customer("bob"), 1)
	s.Require().NoError(err)

	_, err = d.AddItem(s.ctx, "Cheese", 1)
	s.Require().NoError(err)
	line, err := d.AddItem(s.ctx, "Cheese", 2)
	s.Require().NoError(err)
	s.Equal(3, line.Quantity)
	s.True(line.Subtotal.Equal(price("31.50")))

	_, err = d.Finalize(s.ctx)
	s.Require().NoError(err)

	var rows []models.ItemsInOrder
	s.Require().NoError(s.db.Where("orderid = ?", d.OrderID()).Find(&rows).Error)
	s.Require().Len(rows, 1)
	s.Equal(3, rows[0].Quantity)
}

func (s *RepositorySuite) TestInvalidQuantityRejected() {
	d, err := s.repo.BeginOrder(s.ctx, customer("bob"), 1)
	s.Require().NoError(err)
	defer d.Abort()

	_, err = d.AddItem(s.ctx, "Coke", 0)
	s.ErrorIs(err, ErrInvalidQuantity)
	_, err = d.AddItem(s.ctx, "Coke", -2)
	s.ErrorIs(err, ErrInvalidQuantity)
	s.Empty(d.Lines())
}

func (s *RepositorySuite) TestAbortRollsBackLines() {
	d, err := s.repo.BeginOrder(s.ctx, customer("alice"), 1)
	s.Require().NoError(err)
	_, err = d.AddItem(s.ctx, "Coke", 4)
	s.Require().NoError(err)

	s.Require().NoError(d.Abort())
	s.Zero(s.countRows("foodorder", "orderid = ?", d.OrderID()))
	s.Zero(s.countRows("itemsinorder", "orderid = ?", d.OrderID()))

	_, err = d.AddItem(s.ctx, "Coke", 1)
	s.ErrorIs(err, ErrDraftClosed)
	_, err = d.Finalize(s.ctx)
	s.ErrorIs(err, ErrDraftClosed)
	s.NoError(d.Abort())
}

func (s *RepositorySuite) TestDraftCatalog() {
	d, err := s.repo.BeginOrder(s.ctx, customer("alice"), 1)
	s.Require().NoError(err)
	groups, err := d.Catalog(s.ctx)
	s.Require().NoError(err)
	s.Len(groups, 3)
	s.Require().NoError(d.Abort())

	_, err = d.Catalog(s.ctx)
	s.ErrorIs(err, ErrDraftClosed)
}

func (s *RepositorySuite) TestBeginOrderRequiresOpenStoreAndLogin() {
	_, err := s.repo.BeginOrder(s.ctx, customer("alice"), 2)
	s.ErrorIs(err, ErrStoreNotOpen)
	_, err = s.repo.BeginOrder(s.ctx, nil, 1)
	s.ErrorIs(err, ErrNotLoggedIn)
	s.Zero(s.countRows("foodorder", "1 = 1"))
}

func (s *RepositorySuite) TestOrderIDsAreDatabaseGenerated() {
	first := s.insertOrder("alice", s.now(), "1.00")

	d, err := s.repo.BeginOrder(s.ctx, customer("bob"), 1)
	s.Require().NoError(err)
	_, err = d.AddItem(s.ctx, "Coke", 1)
	s.Require().NoError(err)
	_, err = d.Finalize(s.ctx)
	s.Require().NoError(err)

	s.Greater(d.OrderID(), first)
}
