package repository

import (
	"time"

	"pizza-store/models"
	"pizza-store/session"
)

func (s *RepositorySuite) TestHistoryCustomerSeesOnlyOwnOrders() {
	base := s.now()
	s.insertOrder("alice", base, "10.00")
	s.insertOrder("bob", base.Add(time.Minute), "20.00")
	s.insertOrder("alice", base.Add(2*time.Minute), "30.00")

	table, err := s.repo.OrderHistory(s.ctx, customer("alice"), 0)
	s.Require().NoError(err)
	s.Equal([]string{"orderid", "ordertimestamp", "totalprice", "orderstatus"}, table.Columns)
	s.Require().Equal(2, table.Len())

	for _, row := range table.Rows {
		id := row[0]
		s.Equal(1, s.countRows("foodorder", "orderid = ? AND login = ?", id, "alice"))
	}
}

func (s *RepositorySuite) TestHistoryManagerSeesAllWithOwner() {
	base := s.now()
	s.insertOrder("alice", base, "10.00")
	s.insertOrder("bob", base.Add(time.Minute), "20.00")

	table, err := s.repo.OrderHistory(s.ctx, session.New("mia", models.RoleManager), 0)
	s.Require().NoError(err)
	s.Equal([]string{"orderid", "login", "ordertimestamp", "totalprice", "orderstatus"}, table.Columns)
	s.Require().Equal(2, table.Len())
	s.Equal("bob", table.Rows[0][1])
	s.Equal("alice", table.Rows[1][1])

	table, err = s.repo.OrderHistory(s.ctx, session.New("dan", models.RoleDriver), 0)
	s.Require().NoError(err)
	s.Equal(2, table.Len())
}

func (s *RepositorySuite) TestRecentOrdersNewestFirstCappedAtFive() {
	base := s.now()
	var ids []int64
	for i := 0; i < 7; i++ {
		ids = append(ids, s.insertOrder("alice", base.Add(time.Duration(i)*time.Hour), "5.00"))
	}

	table, err := s.repo.RecentOrders(s.ctx, customer("alice"))
	s.Require().NoError(err)
	s.Require().Equal(RecentOrderLimit, table.Len())

	var got []int64
	for _, row := range table.Rows {
		var o models.FoodOrder
		s.Require().NoError(s.db.Where("orderid = ?", row[0]).First(&o).Error)
		got = append(got, o.OrderID)
	}
	s.Equal([]int64{ids[6], ids[5], ids[4], ids[3], ids[2]}, got)
}

func (s *RepositorySuite) TestHistoryRequiresLogin() {
	_, err := s.repo.OrderHistory(s.ctx, &session.Session{}, 0)
	s.ErrorIs(err, ErrNotLoggedIn)
}

func (s *RepositorySuite) TestOrderDetail() {
	d, err := s.repo.BeginOrder(s.ctx, customer("alice"), 1)
	s.Require().NoError(err)
	_, err = d.AddItem(s.ctx, "Pepperoni", 2)
	s.Require().NoError(err)
	_, err = d.AddItem(s.ctx, "Coke", 3)
	s.Require().NoError(err)
	_, err = d.Finalize(s.ctx)
	s.Require().NoError(err)

	detail, err := s.repo.OrderDetail(s.ctx, customer("alice"), d.OrderID())
	s.Require().NoError(err)
	s.Require().Len(detail.Lines, 2)
	s.Equal("Coke", detail.Lines[0].ItemName)
	s.True(detail.Lines[0].Subtotal.Equal(price("5.97")))
	s.True(detail.ComputedTotal.Equal(detail.Order.TotalPrice))
	s.True(detail.ComputedTotal.Equal(price("31.95")))
}

func (s *RepositorySuite) TestOrderDetailPermissions() {
	id := s.insertOrder("alice", s.now(), "1.00")

	_, err := s.repo.OrderDetail(s.ctx, customer("bob"), id)
	s.ErrorIs(err, ErrForbidden)

	_, err = s.repo.OrderDetail(s.ctx, customer("alice"), id+100)
	s.ErrorIs(err, ErrOrderNotFound)

	detail, err := s.repo.OrderDetail(s.ctx, session.New("dan", models.RoleDriver), id)
	s.Require().NoError(err)
	s.Empty(detail.Lines)
	s.True(detail.ComputedTotal.IsZero())
}

func (s *RepositorySuite) TestHistoryTrimsPaddedLoginAndStatus() {
	s.Require().NoError(s.db.Create(&models.FoodOrder{
		Login:          "alice   ",
		StoreID:        1,
		OrderTimestamp: s.now(),
		TotalPrice:     price("4.00"),
		OrderStatus:    models.StatusComplete + "  ",
	}).Error)

	table, err := s.repo.OrderHistory(s.ctx, session.New("mia", models.RoleManager), 0)
	s.Require().NoError(err)
	s.Require().Equal(1, table.Len())
	s.Equal("alice", table.Rows[0][1])
	s.Equal("complete", table.Rows[0][4])

	table, err = s.repo.OrderHistory(s.ctx, customer("alice"), 0)
	s.Require().NoError(err)
	s.Require().Equal(1, table.Len())
	s.Equal("complete", table.Rows[0][3])
}
