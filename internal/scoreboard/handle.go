package scoreboard

import (
	"fmt"
	"math/rand"
)

var (
	handleColors  = []string{"Red", "Blue", "Green", "Black", "White", "Silver", "Golden", "Crimson", "Shadow", "Neon"}
	handleAnimals = []string{"Tiger", "Wolf", "Falcon", "Shark", "Panther", "Eagle", "Viper", "Rhino", "Dragon", "Cobra"}
)

// RandomHandle returns a player handle like "NeonFalcon427": a color, an
// animal and a number from 100 to 999.
func RandomHandle(rng *rand.Rand) string {
	color := handleColors[rng.Intn(len(handleColors))]
	animal := handleAnimals[rng.Intn(len(handleAnimals))]
	return fmt.Sprintf("%s%s%d", color, animal, 100+rng.Intn(900))
}
