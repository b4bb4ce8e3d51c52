package factories

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/jaswdr/faker"
	"github.com/schollz/progressbar/v3"

	"github.com/chrisdamba/takeaway/internal/models"
)

// RestaurantFactory generates plausible catalog entries. Names are unique
// per factory.
type RestaurantFactory struct {
	fake      faker.Faker
	rng       *rand.Rand
	nameCache map[string]int
}

func NewRestaurantFactory(seed int64) *RestaurantFactory {
	return &RestaurantFactory{
		fake:      faker.NewWithSeed(rand.NewSource(seed)),
		rng:       rand.New(rand.NewSource(seed)),
		nameCache: make(map[string]int),
	}
}

func (rf *RestaurantFactory) CreateRestaurant() models.Restaurant {
	fake := rf.fake
	return models.Restaurant{
		Name:   rf.createUniqueName(fake.Company().Name()),
		Status: rf.randomStatus(),
		SortingValues: models.SortingValues{
			BestMatch:           float64(fake.IntBetween(0, 100)),
			Newest:              float64(fake.IntBetween(0, 300)),
			RatingAverage:       float64(fake.IntBetween(2, 10)) / 2,
			Distance:            fake.IntBetween(200, 5000),
			Popularity:          float64(fake.IntBetween(0, 150)),
			AverageProductPrice: fake.IntBetween(700, 2500),
			DeliveryCosts:       50 * fake.IntBetween(0, 10),
			MinCost:             100 * fake.IntBetween(0, 30),
		},
	}
}

// CreateCatalog builds n restaurants, drawing a progress bar on progress
// when it is not nil.
func (rf *RestaurantFactory) CreateCatalog(n int, progress io.Writer) []models.Restaurant {
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(n,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("generating"),
		progressbar.OptionShowCount(),
	)

	restaurants := make([]models.Restaurant, n)
	for i := range restaurants {
		restaurants[i] = rf.CreateRestaurant()
		bar.Add(1)
	}
	bar.Finish()
	return restaurants
}

func (rf *RestaurantFactory) createUniqueName(base string) string {
	count := rf.nameCache[base]
	rf.nameCache[base] = count + 1
	if count == 0 {
		return base
	}

	for {
		count++
		name := fmt.Sprintf("%s %d", base, count)
		if _, taken := rf.nameCache[name]; !taken {
			rf.nameCache[name] = 1
			return name
		}
	}
}

func (rf *RestaurantFactory) randomStatus() models.Status {
	switch p := rf.rng.Float64(); {
	case p < 0.45:
		return models.StatusOpen
	case p < 0.65:
		return models.StatusOrderAhead
	case p < 0.90:
		return models.StatusClosed
	default:
		return models.StatusUnknown
	}
}
