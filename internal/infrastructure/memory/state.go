package memory

import (
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
)

// state datos publicados o en staging. Los productos se guardan por valor (el stock muta);
// clientes, órdenes y logs son de solo inserción y se comparten entre copias.
type state struct {
	products   map[string]entity.Product
	customers  map[string]*entity.Customer
	orders     map[string]*entity.Order
	items      map[string][]*entity.OrderItem
	logs       []*entity.InventoryLog
	users      map[string]*entity.User
	categories map[string]*entity.Category
}

func newState() *state {
	return &state{
		products:   map[string]entity.Product{},
		customers:  map[string]*entity.Customer{},
		orders:     map[string]*entity.Order{},
		items:      map[string][]*entity.OrderItem{},
		users:      map[string]*entity.User{},
		categories: map[string]*entity.Category{},
	}
}

func (st *state) clone() *state {
	out := newState()
	for k, v := range st.products {
		out.products[k] = v
	}
	for k, v := range st.customers {
		out.customers[k] = v
	}
	for k, v := range st.orders {
		out.orders[k] = v
	}
	for k, v := range st.items {
		out.items[k] = append([]*entity.OrderItem(nil), v...)
	}
	out.logs = append([]*entity.InventoryLog(nil), st.logs...)
	for k, v := range st.users {
		out.users[k] = v
	}
	for k, v := range st.categories {
		out.categories[k] = v
	}
	return out
}
