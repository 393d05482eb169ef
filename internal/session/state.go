package session

import (
	"strings"
	"time"

	"github.com/dreshoplabs/dreshop-backend/internal/catalog"
	"github.com/shopspring/decimal"
)

// Caps on the bounded collections. Inserts beyond a cap either trim the
// oldest entry (recently viewed, search history) or are rejected
// (comparison list).
const (
	MaxComparisonItems = 4
	MaxRecentlyViewed  = 8
	MaxSearchHistory   = 10
)

// CartItem pairs a product with the quantity in the cart.
type CartItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// SearchEntry is one remembered search term.
type SearchEntry struct {
	Term       string    `json:"term"`
	SearchedAt time.Time `json:"searched_at"`
}

// Preferences holds the shopper-facing settings.
type Preferences struct {
	Theme         string `json:"theme"`
	Currency      string `json:"currency"`
	Language      string `json:"language"`
	Notifications bool   `json:"notifications"`
}

// PreferencesPatch is a partial update; nil fields are left unchanged.
type PreferencesPatch struct {
	Theme         *string `json:"theme,omitempty"`
	Currency      *string `json:"currency,omitempty"`
	Language      *string `json:"language,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
}

// DefaultPreferences returns the settings a fresh session starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         "system",
		Currency:      "USD",
		Language:      "en",
		Notifications: true,
	}
}

// State is the full client state for one session. Mutation methods are plain
// in-memory operations; persistence is layered on top by the service.
type State struct {
	Cart           []CartItem        `json:"cart"`
	Wishlist       []catalog.Product `json:"wishlist"`
	ComparisonList []catalog.Product `json:"comparison_list"`
	RecentlyViewed []catalog.Product `json:"recently_viewed"`
	SearchHistory  []SearchEntry     `json:"search_history"`
	Preferences    Preferences       `json:"preferences"`
	SidebarOpen    bool              `json:"sidebar_open"`
}

// NewState returns an empty state with default preferences.
func NewState() *State {
	return &State{
		Cart:           []CartItem{},
		Wishlist:       []catalog.Product{},
		ComparisonList: []catalog.Product{},
		RecentlyViewed: []catalog.Product{},
		SearchHistory:  []SearchEntry{},
		Preferences:    DefaultPreferences(),
	}
}

// AddToCart adds quantity units of the product, merging with an existing line
// for the same product. Quantities below one are treated as one.
func (s *State) AddToCart(p catalog.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range s.Cart {
		if s.Cart[i].Product.ID == p.ID {
			s.Cart[i].Quantity += quantity
			return
		}
	}
	s.Cart = append(s.Cart, CartItem{Product: p, Quantity: quantity})
}

// RemoveFromCart drops the line for the product id if present.
func (s *State) RemoveFromCart(productID int64) {
	out := s.Cart[:0]
	for _, item := range s.Cart {
		if item.Product.ID != productID {
			out = append(out, item)
		}
	}
	s.Cart = out
}

// UpdateQuantity sets the quantity for a cart line. A quantity of zero or
// less removes the line. Unknown product ids are ignored.
func (s *State) UpdateQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(productID)
		return
	}
	for i := range s.Cart {
		if s.Cart[i].Product.ID == productID {
			s.Cart[i].Quantity = quantity
			return
		}
	}
}

// ClearCart empties the cart.
func (s *State) ClearCart() {
	s.Cart = []CartItem{}
}

// CartSubtotal returns the cart total as a decimal dollar amount.
func (s *State) CartSubtotal() decimal.Decimal {
	return decimal.NewFromInt(s.CartSubtotalCents()).Shift(-2)
}

// CartSubtotalCents sums price times quantity over every cart line.
func (s *State) CartSubtotalCents() int64 {
	var total int64
	for _, item := range s.Cart {
		total += item.Product.PriceCents * int64(item.Quantity)
	}
	return total
}

// CartItemCount sums the quantities over every cart line.
func (s *State) CartItemCount() int {
	var count int
	for _, item := range s.Cart {
		count += item.Quantity
	}
	return count
}

// AddToWishlist adds the product if it is not already saved. Returns whether
// the list changed.
func (s *State) AddToWishlist(p catalog.Product) bool {
	if s.InWishlist(p.ID) {
		return false
	}
	s.Wishlist = append(s.Wishlist, p)
	return true
}

// RemoveFromWishlist drops the product id if present.
func (s *State) RemoveFromWishlist(productID int64) {
	out := s.Wishlist[:0]
	for _, p := range s.Wishlist {
		if p.ID != productID {
			out = append(out, p)
		}
	}
	s.Wishlist = out
}

// InWishlist reports whether the product id is saved.
func (s *State) InWishlist(productID int64) bool {
	for _, p := range s.Wishlist {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// AddToComparison adds the product unless it is already listed or the list is
// full. Returns whether the product was added.
func (s *State) AddToComparison(p catalog.Product) bool {
	if len(s.ComparisonList) >= MaxComparisonItems {
		return false
	}
	if s.InComparison(p.ID) {
		return false
	}
	s.ComparisonList = append(s.ComparisonList, p)
	return true
}

// InComparison reports whether the product id is being compared.
func (s *State) InComparison(productID int64) bool {
	for _, p := range s.ComparisonList {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// RemoveFromComparison drops the product id if present.
func (s *State) RemoveFromComparison(productID int64) {
	out := s.ComparisonList[:0]
	for _, p := range s.ComparisonList {
		if p.ID != productID {
			out = append(out, p)
		}
	}
	s.ComparisonList = out
}

// ClearComparison empties the comparison list.
func (s *State) ClearComparison() {
	s.ComparisonList = []catalog.Product{}
}

// RecordView moves the product to the front of the recently-viewed list,
// trimming the oldest entry past the cap.
func (s *State) RecordView(p catalog.Product) {
	s.RecentlyViewed = pushRecent(s.RecentlyViewed, p,
		func(p catalog.Product) int64 { return p.ID }, MaxRecentlyViewed)
}

// ClearRecentlyViewed forgets every recently viewed product.
func (s *State) ClearRecentlyViewed() {
	s.RecentlyViewed = []catalog.Product{}
}

// RecordSearch remembers a search term with its timestamp. Blank terms are
// ignored; repeating the exact same term moves it to the front with a fresh
// timestamp, while terms differing only in case are separate entries.
func (s *State) RecordSearch(term string, at time.Time) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	entry := SearchEntry{Term: term, SearchedAt: at}
	s.SearchHistory = pushRecent(s.SearchHistory, entry,
		func(e SearchEntry) string { return e.Term }, MaxSearchHistory)
}

// ClearSearchHistory forgets every remembered term.
func (s *State) ClearSearchHistory() {
	s.SearchHistory = []SearchEntry{}
}

// UpdatePreferences applies a partial update; nil fields keep their value.
func (s *State) UpdatePreferences(patch PreferencesPatch) {
	if patch.Theme != nil {
		s.Preferences.Theme = *patch.Theme
	}
	if patch.Currency != nil {
		s.Preferences.Currency = *patch.Currency
	}
	if patch.Language != nil {
		s.Preferences.Language = *patch.Language
	}
	if patch.Notifications != nil {
		s.Preferences.Notifications = *patch.Notifications
	}
}

// ToggleSidebar flips the transient sidebar flag.
func (s *State) ToggleSidebar() {
	s.SidebarOpen = !s.SidebarOpen
}

// SetSidebar sets the transient sidebar flag.
func (s *State) SetSidebar(open bool) {
	s.SidebarOpen = open
}
