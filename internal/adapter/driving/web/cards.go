package web

import vm "github.com/ericfisherdev/hotelhub/internal/adapter/driving/web/viewmodel"

var featureCardSources = []struct {
	title string
	body  string
}{
	{"Welcome to HotelHub", "Enjoy seamless **user management**."},
	{"Reservations Made Easy", "Streamline your hotel bookings."},
	{"Explore More", "Discover features to *enhance* your experience."},
}

// featureCards renders the dashboard's welcome cards once.
func featureCards() []vm.FeatureCardViewModel {
	cards := make([]vm.FeatureCardViewModel, 0, len(featureCardSources))
	for _, c := range featureCardSources {
		cards = append(cards, vm.FeatureCardViewModel{Title: c.title, BodyHTML: RenderMarkdown(c.body)})
	}
	return cards
}
