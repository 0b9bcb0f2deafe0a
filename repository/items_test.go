package repository


func (s *RepositorySuite) browse(f MenuFilter) []string {
	items, err := s.repo.BrowseMenu(s.ctx, f)
	s.Require().NoError(err)
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.ItemName
	}
	return names
}

func (s *RepositorySuite) TestBrowseMenuFilters() {
	s.Equal([]string{"Cheese", "Coke", "Fries", "Pepperoni"}, s.browse(MenuFilter{}))
	s.Equal([]string{"Cheese", "Pepperoni"}, s.browse(MenuFilter{Type: " entree "}))

	limit := price("10.50")
	s.Equal([]string{"Cheese", "Coke", "Fries"}, s.browse(MenuFilter{MaxPrice: &limit}))
	s.Equal([]string{"Cheese"}, s.browse(MenuFilter{Type: "entree", MaxPrice: &limit}))

	s.Equal([]string{"Coke", "Fries", "Cheese", "Pepperoni"}, s.browse(MenuFilter{Sort: SortAsc}))
	s.Equal([]string{"Pepperoni", "Cheese", "Fries", "Coke"}, s.browse(MenuFilter{Sort: SortDesc}))

	s.Empty(s.browse(MenuFilter{Type: "dessert"}))
}

func (s *RepositorySuite) TestMenuFilterReset() {
	limit := price("1")
	f := MenuFilter{Type: "drinks", MaxPrice: &limit, Sort: SortDesc}
	f.Reset()
	s.Equal(MenuFilter{}, f)
}

func (s *RepositorySuite) TestParsers() {
	p, err := ParsePrice(" $7.25 ")
	s.Require().NoError(err)
	s.True(p.Equal(price("7.25")))

	_, err = ParsePrice("cheap")
	s.ErrorIs(err, ErrInvalidPrice)
	_, err = ParsePrice("-1")
	s.ErrorIs(err, ErrInvalidPrice)

	s.Equal(SortAsc, ParseSortOrder("asc"))
	s.Equal(SortDesc, ParseSortOrder(" DESC "))
	s.Equal(SortNone, ParseSortOrder("sideways"))
}

func (s *RepositorySuite) TestCatalogGroupsByType() {
	groups, err := s.repo.Catalog(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(groups, 3)
	s.Equal("drinks", groups[0].Type)
	s.Equal("entree", groups[1].Type)
	s.Len(groups[1].Items, 2)
	s.Equal("sides", groups[2].Type)
}

func (s *RepositorySuite) TestCreateItem() {
	item, err := s.repo.CreateItem(s.ctx, NewItem{
		ItemName: "Garlic Knots", Ingredients: "dough, garlic", TypeOfItem: "sides", Price: "4.75",
	})
	s.Require().NoError(err)
	s.Nil(item.Description)

	got, err := s.repo.GetItem(s.ctx, "Garlic Knots")
	s.Require().NoError(err)
	s.True(got.Price.Equal(price("4.75")))
	s.Equal("No description available.", got.DescriptionOr("No description available."))
}

func (s *RepositorySuite) TestCreateItemExistingNameLeavesRowAlone() {
	_, err := s.repo.CreateItem(s.ctx, NewItem{
		ItemName: "Pepperoni", Ingredients: "none", TypeOfItem: "drinks", Price: "99",
	})
	s.ErrorIs(err, ErrItemExists)

	s.Equal(1, s.countRows("items", "itemname = ?", "Pepperoni"))
	got, err := s.repo.GetItem(s.ctx, "Pepperoni")
	s.Require().NoError(err)
	s.Equal("entree", got.TypeOfItem)
	s.True(got.Price.Equal(price("12.99")))
}

func (s *RepositorySuite) TestCreateItemRejectsBadPrice() {
	_, err := s.repo.CreateItem(s.ctx, NewItem{ItemName: "Salad", TypeOfItem: "sides", Price: "ten"})
	s.ErrorIs(err, ErrInvalidPrice)
	_, err = s.repo.GetItem(s.ctx, "Salad")
	s.ErrorIs(err, ErrItemNotFound)
}

func (s *RepositorySuite) TestUpdateItemField() {
	s.Require().NoError(s.repo.UpdateItemField(s.ctx, "Coke", ItemPrice, "2.49"))
	s.Require().NoError(s.repo.UpdateItemField(s.ctx, "Coke", ItemDescription, "cold"))
	s.Require().NoError(s.repo.UpdateItemField(s.ctx, "Coke", ItemIngredients, "sugar"))
	s.Require().NoError(s.repo.UpdateItemField(s.ctx, "Coke", ItemType, "beverages"))

	got, err := s.repo.GetItem(s.ctx, "Coke")
	s.Require().NoError(err)
	s.True(got.Price.Equal(price("2.49")))
	s.Equal("cold", got.DescriptionOr(""))
	s.Equal("sugar", got.Ingredients)
	s.Equal("beverages", got.TypeOfItem)

	s.ErrorIs(s.repo.UpdateItemField(s.ctx, "Coke", ItemPrice, "free"), ErrInvalidPrice)
	s.ErrorIs(s.repo.UpdateItemField(s.ctx, "Calzone", ItemIngredients, "x"), ErrItemNotFound)
	s.ErrorIs(s.repo.UpdateItemField(s.ctx, "Coke", ItemType, ""), ErrInvalidInput)
}

func (s *RepositorySuite) TestStores() {
	stores, err := s.repo.ListStores(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(stores, 3)
	s.Equal([]int{1, 3, 2}, []int{stores[0].StoreID, stores[1].StoreID, stores[2].StoreID})

	_, err = s.repo.OpenStore(s.ctx, 2)
	s.ErrorIs(err, ErrStoreNotOpen)
	_, err = s.repo.OpenStore(s.ctx, 42)
	s.ErrorIs(err, ErrStoreNotOpen)
	st, err := s.repo.OpenStore(s.ctx, 3)
	s.Require().NoError(err)
	s.Equal("Corona", st.City)
}
