package session

import "github.com/dreshoplabs/dreshop-backend/internal/catalog"

// Snapshot is the persisted subset of a session's state. Transient UI flags
// such as the sidebar are deliberately excluded.
type Snapshot struct {
	Cart           []CartItem        `json:"cart"`
	Wishlist       []catalog.Product `json:"wishlist"`
	Preferences    Preferences       `json:"preferences"`
	SearchHistory  []SearchEntry     `json:"search_history"`
	RecentlyViewed []catalog.Product `json:"recently_viewed"`
	ComparisonList []catalog.Product `json:"comparison_list"`
}

// snapshotOf captures the persisted fields of a state.
func snapshotOf(s *State) Snapshot {
	return Snapshot{
		Cart:           s.Cart,
		Wishlist:       s.Wishlist,
		Preferences:    s.Preferences,
		SearchHistory:  s.SearchHistory,
		RecentlyViewed: s.RecentlyViewed,
		ComparisonList: s.ComparisonList,
	}
}

// restore rebuilds a state from a snapshot, normalizing anything an older or
// hand-edited snapshot may have broken: nil slices, zero preferences, and
// collections past their caps.
func (snap Snapshot) restore() *State {
	s := NewState()

	for _, item := range snap.Cart {
		if item.Quantity < 1 {
			continue
		}
		s.Cart = append(s.Cart, item)
	}
	s.Wishlist = append(s.Wishlist, snap.Wishlist...)

	if snap.Preferences != (Preferences{}) {
		s.Preferences = snap.Preferences
	}

	for i := len(snap.RecentlyViewed) - 1; i >= 0; i-- {
		s.RecordView(snap.RecentlyViewed[i])
	}
	for i := len(snap.SearchHistory) - 1; i >= 0; i-- {
		entry := snap.SearchHistory[i]
		s.RecordSearch(entry.Term, entry.SearchedAt)
	}
	for _, p := range snap.ComparisonList {
		s.AddToComparison(p)
	}
	return s
}
