package domain

// Wishlist notification messages.
const (
	MsgWishlistDuplicate = "Already in wishlist!"
	MsgWishlistAdded     = "Added to wishlist!"
	MsgWishlistRemoved   = "Removed from wishlist"
)

// WishlistAction is one of AddToWishlist, RemoveFromWishlist, ClearWishlist
// or LoadWishlist.
type WishlistAction interface {
	wishlistAction()
}

// AddToWishlist saves a product snapshot.
type AddToWishlist struct {
	Product Product
}

// RemoveFromWishlist drops the entry for ProductID.
type RemoveFromWishlist struct {
	ProductID int
}

// ClearWishlist empties the wishlist.
type ClearWishlist struct{}

// LoadWishlist replaces the wishlist with persisted items at startup.
type LoadWishlist struct {
	Items []Product
}

func (AddToWishlist) wishlistAction()      {}
func (RemoveFromWishlist) wishlistAction() {}
func (ClearWishlist) wishlistAction()      {}
func (LoadWishlist) wishlistAction()       {}

// WishlistEffects describes what a transition asks of its caller.
type WishlistEffects struct {
	// Notice is the notification to emit, if any.
	Notice *Notice
	// Persist is set when the collection changed through a user action.
	Persist bool
}

// ReduceWishlist is the pure wishlist transition function. The input state
// is never modified.
func ReduceWishlist(state []Product, action WishlistAction) ([]Product, WishlistEffects) {
	switch a := action.(type) {
	case AddToWishlist:
		if indexOf(state, a.Product.ID) >= 0 {
			return state, WishlistEffects{Notice: &Notice{Kind: NoticeError, Message: MsgWishlistDuplicate}}
		}
		next := make([]Product, 0, len(state)+1)
		next = append(next, state...)
		next = append(next, a.Product.Clone())
		return next, WishlistEffects{
			Notice:  &Notice{Kind: NoticeSuccess, Message: MsgWishlistAdded},
			Persist: true,
		}

	case RemoveFromWishlist:
		next := make([]Product, 0, len(state))
		for _, p := range state {
			if p.ID != a.ProductID {
				next = append(next, p)
			}
		}
		// The removed notice fires even when nothing matched.
		return next, WishlistEffects{
			Notice:  &Notice{Kind: NoticeSuccess, Message: MsgWishlistRemoved},
			Persist: len(next) != len(state),
		}

	case ClearWishlist:
		return []Product{}, WishlistEffects{Persist: len(state) > 0}

	case LoadWishlist:
		next := make([]Product, 0, len(a.Items))
		for _, p := range a.Items {
			if indexOf(next, p.ID) < 0 {
				next = append(next, p.Clone())
			}
		}
		return next, WishlistEffects{}
	}
	return state, WishlistEffects{}
}

// WishlistContains reports whether state holds productID.
func WishlistContains(state []Product, productID int) bool {
	return indexOf(state, productID) >= 0
}

func indexOf(products []Product, id int) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}
