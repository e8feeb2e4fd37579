package cart

import "github.com/Saccor/sauda-website-sub000/internal/commerce"

type ActionType string

const (
	ActionAddItem        ActionType = "ADD_ITEM"
	ActionRemoveItem     ActionType = "REMOVE_ITEM"
	ActionUpdateQuantity ActionType = "UPDATE_QUANTITY"
	ActionClearCart      ActionType = "CLEAR_CART"
	ActionSetItems       ActionType = "SET_ITEMS"
	ActionSetIsOpen      ActionType = "SET_IS_OPEN"
	ActionSetIsLoading   ActionType = "SET_IS_LOADING"
)

type Action struct {
	Type      ActionType
	Product   commerce.Product
	ProductID string
	Quantity  int
	Items     []Item
	Flag      bool
}

func AddItem(p commerce.Product) Action {
	return Action{Type: ActionAddItem, Product: p}
}

func RemoveItem(productID string) Action {
	return Action{Type: ActionRemoveItem, ProductID: productID}
}

func UpdateQuantity(productID string, quantity int) Action {
	return Action{Type: ActionUpdateQuantity, ProductID: productID, Quantity: quantity}
}

func ClearCart() Action {
	return Action{Type: ActionClearCart}
}

func SetItems(items []Item) Action {
	return Action{Type: ActionSetItems, Items: items}
}

func SetIsOpen(open bool) Action {
	return Action{Type: ActionSetIsOpen, Flag: open}
}

func SetIsLoading(loading bool) Action {
	return Action{Type: ActionSetIsLoading, Flag: loading}
}

// Reduce returns the state that results from applying a to s. It never mutates s.
// Quantities are not clamped: UPDATE_QUANTITY stores whatever it is given.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionAddItem:
		items := cloneItems(s.Items)
		for i := range items {
			if items[i].Product.ID == a.Product.ID {
				items[i].Quantity++
				s.Items = items
				return s
			}
		}
		s.Items = append(items, Item{Product: a.Product, Quantity: 1})

	case ActionRemoveItem:
		items := make([]Item, 0, len(s.Items))
		for _, item := range s.Items {
			if item.Product.ID != a.ProductID {
				items = append(items, item)
			}
		}
		s.Items = items

	case ActionUpdateQuantity:
		items := cloneItems(s.Items)
		for i := range items {
			if items[i].Product.ID == a.ProductID {
				items[i].Quantity = a.Quantity
			}
		}
		s.Items = items

	case ActionClearCart:
		s.Items = []Item{}

	case ActionSetItems:
		s.Items = cloneItems(a.Items)

	case ActionSetIsOpen:
		s.IsOpen = a.Flag

	case ActionSetIsLoading:
		s.IsLoading = a.Flag
	}

	return s
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items), len(items)+1)
	copy(out, items)
	return out
}
