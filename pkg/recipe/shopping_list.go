package recipe

import (
	"fmt"
	"strings"

	"github.com/Temni23/foodgram-backend/domain"
)

// ShoppingListFilename is the attachment name the download endpoint
// suggests. The historical spelling is kept for client compatibility.
const ShoppingListFilename = "shoping-list.txt"

// RenderShoppingList turns an aggregated list into the plain-text document
// served by the download endpoint. Items arrive sorted by ingredient name,
// so the same cart always renders the same bytes apart from the date.
func RenderShoppingList(list domain.ShoppingList) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "Shopping list for %s.\n", list.Username)
	fmt.Fprintf(&b, "Recipes: %s\n\n", strings.Join(list.RecipeNames, ", "))

	for _, item := range list.Items {
		fmt.Fprintf(&b, "%s %d %s\n", item.Name, item.Total, item.MeasurementUnit)
	}

	fmt.Fprintf(&b, "\nGenerated %s\n", list.GeneratedAt.Format("02.01.2006"))
	return []byte(b.String())
}
