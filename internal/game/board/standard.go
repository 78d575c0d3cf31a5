package board

import "github.com/monopolybot/backend/internal/game/models"

// Standard returns the classic 40-square US board. Rents are the base
// (unimproved) values; houses and color-group bonuses are not modeled.
func Standard() (*Board, error) {
	return New(standardSquares())
}

func standardSquares() []models.Square {
	type sq struct {
		kind  models.SquareKind
		name  string
		price int
		rent  int
		tax   int
	}

	defs := []sq{
		{kind: models.SquareGo, name: "Go"},
		{kind: models.SquareProperty, name: "Mediterranean Avenue", price: 60, rent: 2},
		{kind: models.SquareCommunityChest, name: "Community Chest"},
		{kind: models.SquareProperty, name: "Baltic Avenue", price: 60, rent: 4},
		{kind: models.SquareTax, name: "Income Tax", tax: 200},
		{kind: models.SquareRailroad, name: "Reading Railroad", price: 200, rent: 25},
		{kind: models.SquareProperty, name: "Oriental Avenue", price: 100, rent: 6},
		{kind: models.SquareChance, name: "Chance"},
		{kind: models.SquareProperty, name: "Vermont Avenue", price: 100, rent: 6},
		{kind: models.SquareProperty, name: "Connecticut Avenue", price: 120, rent: 8},
		{kind: models.SquareJail, name: "Jail"},
		{kind: models.SquareProperty, name: "St. Charles Place", price: 140, rent: 10},
		{kind: models.SquareUtility, name: "Electric Company", price: 150, rent: 20},
		{kind: models.SquareProperty, name: "States Avenue", price: 140, rent: 10},
		{kind: models.SquareProperty, name: "Virginia Avenue", price: 160, rent: 12},
		{kind: models.SquareRailroad, name: "Pennsylvania Railroad", price: 200, rent: 25},
		{kind: models.SquareProperty, name: "St. James Place", price: 180, rent: 14},
		{kind: models.SquareCommunityChest, name: "Community Chest II"},
		{kind: models.SquareProperty, name: "Tennessee Avenue", price: 180, rent: 14},
		{kind: models.SquareProperty, name: "New York Avenue", price: 200, rent: 16},
		{kind: models.SquareFreeParking, name: "Free Parking"},
		{kind: models.SquareProperty, name: "Kentucky Avenue", price: 220, rent: 18},
		{kind: models.SquareChance, name: "Chance II"},
		{kind: models.SquareProperty, name: "Indiana Avenue", price: 220, rent: 18},
		{kind: models.SquareProperty, name: "Illinois Avenue", price: 240, rent: 20},
		{kind: models.SquareRailroad, name: "B&O Railroad", price: 200, rent: 25},
		{kind: models.SquareProperty, name: "Atlantic Avenue", price: 260, rent: 22},
		{kind: models.SquareProperty, name: "Ventnor Avenue", price: 260, rent: 22},
		{kind: models.SquareUtility, name: "Water Works", price: 150, rent: 20},
		{kind: models.SquareProperty, name: "Marvin Gardens", price: 280, rent: 24},
		{kind: models.SquareGoToJail, name: "Go To Jail"},
		{kind: models.SquareProperty, name: "Pacific Avenue", price: 300, rent: 26},
		{kind: models.SquareProperty, name: "North Carolina Avenue", price: 300, rent: 26},
		{kind: models.SquareCommunityChest, name: "Community Chest III"},
		{kind: models.SquareProperty, name: "Pennsylvania Avenue", price: 320, rent: 28},
		{kind: models.SquareRailroad, name: "Short Line", price: 200, rent: 25},
		{kind: models.SquareChance, name: "Chance III"},
		{kind: models.SquareProperty, name: "Park Place", price: 350, rent: 35},
		{kind: models.SquareTax, name: "Luxury Tax", tax: 100},
		{kind: models.SquareProperty, name: "Boardwalk", price: 400, rent: 50},
	}

	squares := make([]models.Square, len(defs))
	for i, d := range defs {
		squares[i] = models.Square{
			Index: i,
			Kind:  d.kind,
			Name:  d.name,
			Price: d.price,
			Rent:  d.rent,
			Tax:   d.tax,
		}
	}
	return squares
}
