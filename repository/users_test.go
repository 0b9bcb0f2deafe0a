package repository

import (
	"strings"

	"pizza-store/models"
	"pizza-store/repository/repotest"
)

func (s *RepositorySuite) TestCreateUser() {
	u, err := s.repo.CreateUser(s.ctx, NewUser{Login: "  carol ", Password: " pw ", PhoneNum: "555-0009"})
	s.Require().NoError(err)
	s.Equal("carol", u.Login)
	s.Equal(models.RoleCustomer, u.Role)
	s.Nil(u.FavoriteItems)
	s.True(strings.HasPrefix(u.Password, "$2"), "password should be stored hashed")

	stored, err := s.repo.GetUser(s.ctx, "carol")
	s.Require().NoError(err)
	s.Equal("555-0009", stored.PhoneNum)
}

func (s *RepositorySuite) TestCreateUserRejectsDuplicateAndBlank() {
	_, err := s.repo.CreateUser(s.ctx, NewUser{Login: "alice", Password: "x"})
	s.ErrorIs(err, ErrLoginTaken)

	_, err = s.repo.CreateUser(s.ctx, NewUser{Login: "   ", Password: "x"})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.repo.CreateUser(s.ctx, NewUser{Login: "zed", Password: ""})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *RepositorySuite) TestAuthenticateTrimsInput() {
	u, err := s.repo.Authenticate(s.ctx, "  alice  ", " secret\t")
	s.Require().NoError(err)
	s.Equal("alice", u.Login)
	s.Equal(models.RoleCustomer, u.Role)

	_, err = s.repo.Authenticate(s.ctx, "alice", "Secret")
	s.ErrorIs(err, ErrInvalidCredentials)

	_, err = s.repo.Authenticate(s.ctx, "nobody", repotest.Password)
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *RepositorySuite) TestAuthenticateLegacyPlaintext() {
	u, err := s.repo.Authenticate(s.ctx, "mia", " "+repotest.LegacyPassword+" ")
	s.Require().NoError(err)
	s.Equal(models.RoleManager, u.Role)

	_, err = s.repo.Authenticate(s.ctx, "mia", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *RepositorySuite) TestUpdateUserFields() {
	s.Require().NoError(s.repo.UpdateUserField(s.ctx, "bob", UserPassword, "newpass"))
	_, err := s.repo.Authenticate(s.ctx, "bob", "newpass")
	s.NoError(err)
	_, err = s.repo.Authenticate(s.ctx, "bob", repotest.Password)
	s.ErrorIs(err, ErrInvalidCredentials)

	s.Require().NoError(s.repo.UpdateUserField(s.ctx, "bob", UserFavorites, "Pepperoni, Coke"))
	s.Require().NoError(s.repo.UpdateUserField(s.ctx, "bob", UserPhone, "555-7777"))
	s.Require().NoError(s.repo.UpdateUserField(s.ctx, "bob", UserRole, "driver"))

	u, err := s.repo.GetUser(s.ctx, "bob")
	s.Require().NoError(err)
	s.Require().NotNil(u.FavoriteItems)
	s.Equal("Pepperoni, Coke", *u.FavoriteItems)
	s.Equal("555-7777", u.PhoneNum)
	s.Equal(models.RoleDriver, u.Role)

	s.Require().NoError(s.repo.UpdateUserField(s.ctx, "bob", UserFavorites, ""))
	u, err = s.repo.GetUser(s.ctx, "bob")
	s.Require().NoError(err)
	s.Nil(u.FavoriteItems)
}

func (s *RepositorySuite) TestUpdateUserFieldRejections() {
	s.ErrorIs(s.repo.UpdateUserField(s.ctx, "bob", UserRole, "chef"), ErrInvalidRole)
	s.ErrorIs(s.repo.UpdateUserField(s.ctx, "bob", UserPassword, "  "), ErrInvalidInput)
	s.ErrorIs(s.repo.UpdateUserField(s.ctx, "ghost", UserPhone, "1"), ErrUserNotFound)
	s.ErrorIs(s.repo.UpdateUserField(s.ctx, "bob", UserField("login"), "x"), ErrInvalidInput)
}

func (s *RepositorySuite) TestUserExists() {
	ok, err := s.repo.UserExists(s.ctx, "dan")
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.repo.UserExists(s.ctx, "dan' OR '1'='1")
	s.Require().NoError(err)
	s.False(ok)

	_, err = s.repo.GetUser(s.ctx, "ghost")
	s.ErrorIs(err, ErrUserNotFound)
}
