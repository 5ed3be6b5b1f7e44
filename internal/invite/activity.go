package invite

import "github.com/samber/lo"

// OtherID is the synthetic activity that stands for free-text suggestions.
const OtherID = "other"

// Activity is one selectable date activity.
type Activity struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Catalog lists the activities offered on the activity step, in display order.
var Catalog = []Activity{
	{ID: "bowling", Label: "Bowling 🎳"},
	{ID: "cinema", Label: "Cinema 🎬"},
	{ID: "coffee", Label: "Coffee ☕"},
	{ID: "dinner", Label: "Dinner 🍝"},
	{ID: "iceSkating", Label: "Ice skating ⛸️"},
	{ID: "walk", Label: "Evening walk 🌆"},
	{ID: "museum", Label: "Museum 🖼️"},
	{ID: "concert", Label: "Live music 🎶"},
	{ID: "boardGames", Label: "Board games 🎲"},
	{ID: "picnic", Label: "Picnic in park 🌳"},
	{ID: OtherID, Label: "Other ❤️"},
}

var labels = lo.Associate(Catalog, func(a Activity) (string, string) {
	return a.ID, a.Label
})

// Label returns the human-readable label for an activity id, or the id
// itself when it is not in the catalog.
func Label(id string) string {
	if l, ok := labels[id]; ok {
		return l
	}
	return id
}

// Known reports whether id is in the catalog.
func Known(id string) bool {
	_, ok := labels[id]
	return ok
}
