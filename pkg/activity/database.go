package activity

import (
	"time"

	"github.com/rs/zerolog"

	"supermarket-checkout/pkg/db"
)

const DefaultActivityTimeout = time.Second

var database db.BasketDatabase = db.NewInMemoryBasketDatabase(zerolog.Nop())

// UseDatabase selects the database backing the activities. Call it from the
// worker before registering activities.
func UseDatabase(d db.BasketDatabase) {
	database = d
}
