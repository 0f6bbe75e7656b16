// internal/game/locations.go
package game

// Locations is the immutable catalog a round's secret location is drawn from.
// Every player receives the whole list during play; only non-spies also learn
// which entry was selected.
var Locations = []string{
	"Airplane",
	"Amusement Park",
	"Bank",
	"Beach",
	"Casino",
	"Cathedral",
	"Circus Tent",
	"Corporate Party",
	"Day Spa",
	"Embassy",
	"Hospital",
	"Hotel",
	"Military Base",
	"Movie Studio",
	"Ocean Liner",
	"Passenger Train",
	"Pirate Ship",
	"Polar Station",
	"Police Station",
	"Restaurant",
	"School",
	"Service Station",
	"Space Station",
	"Submarine",
	"Supermarket",
	"Theater",
	"University",
}
