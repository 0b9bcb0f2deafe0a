package repository

import (
	"pizza-store/models"
	"pizza-store/session"
)

func (s *RepositorySuite) TestUpdateOrderStatus() {
	id := s.insertOrder("alice", s.now(), "1.00")
	driver := session.New("dan", models.RoleDriver)
	manager := session.New("mia", models.RoleManager)

	from, err := s.repo.UpdateOrderStatus(s.ctx, driver, id, models.StatusComplete)
	s.Require().NoError(err)
	s.Equal(models.StatusIncomplete, from)

	status, err := s.repo.GetOrderStatus(s.ctx, driver, id)
	s.Require().NoError(err)
	s.Equal(models.StatusComplete, status)

	_, err = s.repo.UpdateOrderStatus(s.ctx, driver, id, models.StatusIncomplete)
	s.ErrorIs(err, ErrInvalidTransition)

	_, err = s.repo.UpdateOrderStatus(s.ctx, manager, id, models.StatusIncomplete)
	s.NoError(err)
}

func (s *RepositorySuite) TestUpdateOrderStatusRejections() {
	id := s.insertOrder("alice", s.now(), "1.00")

	_, err := s.repo.UpdateOrderStatus(s.ctx, customer("alice"), id, models.StatusComplete)
	s.ErrorIs(err, ErrForbidden)

	_, err = s.repo.UpdateOrderStatus(s.ctx, session.New("dan", models.RoleDriver), id+1, models.StatusComplete)
	s.ErrorIs(err, ErrOrderNotFound)
}
