package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/posawiki/posawiki/store"
)

// Cross-reference entities around the video catalog: people, dogs,
// trips and posaisms. Plain CRUD; the tag authority engine does not
// touch these tables.

type PersonPayload struct {
	UID           string   `json:"uid"`
	CanonicalName string   `json:"canonicalName"`
	YoutubeHandle string   `json:"youtubeHandle,omitempty"`
	YoutubeURL    string   `json:"youtubeUrl,omitempty"`
	Aliases       []string `json:"aliases"`
	Bio           string   `json:"bio,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

type DogPayload struct {
	UID            string `json:"uid"`
	Name           string `json:"name"`
	BirthDate      string `json:"birthDate,omitempty"`
	BreedPrimary   string `json:"breedPrimary,omitempty"`
	BreedSecondary string `json:"breedSecondary,omitempty"`
	Color          string `json:"color,omitempty"`
	Description    string `json:"description,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

type TripPayload struct {
	UID         string             `json:"uid"`
	TripName    string             `json:"tripName"`
	Description string             `json:"description,omitempty"`
	StartDate   string             `json:"startDate,omitempty"`
	EndDate     string             `json:"endDate,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	Parts       []*TripPartPayload `json:"parts,omitempty"`
}

type TripPartPayload struct {
	VideoUID   string `json:"videoUid"`
	Title      string `json:"title"`
	PartNumber int32  `json:"partNumber"`
}

type PosaismPayload struct {
	UID             string `json:"uid"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	ExampleVideoUID string `json:"exampleVideoUid,omitempty"`
}

func (s *APIV1Service) ListPeople(c echo.Context) error {
	people, err := s.Store.ListPeople(c.Request().Context(), &store.FindPerson{})
	if err != nil {
		return mapServiceError(err)
	}
	payload := make([]*PersonPayload, 0, len(people))
	for _, person := range people {
		payload = append(payload, convertPerson(person))
	}
	return c.JSON(http.StatusOK, payload)
}

func (s *APIV1Service) CreatePerson(c echo.Context) error {
	request := &PersonPayload{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if request.CanonicalName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "canonicalName is required")
	}
	person, err := s.Store.CreatePerson(c.Request().Context(), &store.Person{
		UID:           shortuuid.New(),
		CanonicalName: request.CanonicalName,
		YoutubeHandle: request.YoutubeHandle,
		YoutubeURL:    request.YoutubeURL,
		Aliases:       request.Aliases,
		Bio:           request.Bio,
		Notes:         request.Notes,
	})
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusCreated, convertPerson(person))
}

func (s *APIV1Service) ListDogs(c echo.Context) error {
	dogs, err := s.Store.ListDogs(c.Request().Context(), &store.FindDog{})
	if err != nil {
		return mapServiceError(err)
	}
	payload := make([]*DogPayload, 0, len(dogs))
	for _, dog := range dogs {
		payload = append(payload, convertDog(dog))
	}
	return c.JSON(http.StatusOK, payload)
}

func (s *APIV1Service) CreateDog(c echo.Context) error {
	request := &DogPayload{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if request.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	dog, err := s.Store.CreateDog(c.Request().Context(), &store.Dog{
		UID:            shortuuid.New(),
		Name:           request.Name,
		BirthDate:      request.BirthDate,
		BreedPrimary:   request.BreedPrimary,
		BreedSecondary: request.BreedSecondary,
		Color:          request.Color,
		Description:    request.Description,
		Notes:          request.Notes,
	})
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusCreated, convertDog(dog))
}

func (s *APIV1Service) ListTrips(c echo.Context) error {
	trips, err := s.Store.ListTrips(c.Request().Context(), &store.FindTrip{})
	if err != nil {
		return mapServiceError(err)
	}
	payload := make([]*TripPayload, 0, len(trips))
	for _, trip := range trips {
		payload = append(payload, convertTrip(trip, nil))
	}
	return c.JSON(http.StatusOK, payload)
}

// GetTrip returns one trip with its ordered video parts.
func (s *APIV1Service) GetTrip(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	trips, err := s.Store.ListTrips(ctx, &store.FindTrip{UID: &uid})
	if err != nil {
		return mapServiceError(err)
	}
	if len(trips) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "trip not found")
	}
	trip := trips[0]

	tripVideos, err := s.Store.ListTripVideos(ctx, trip.ID)
	if err != nil {
		return mapServiceError(err)
	}
	parts := make([]*TripPartPayload, 0, len(tripVideos))
	for _, tripVideo := range tripVideos {
		video, err := s.Store.GetVideo(ctx, &store.FindVideo{ID: &tripVideo.VideoID})
		if err != nil {
			return mapServiceError(err)
		}
		if video == nil {
			continue
		}
		parts = append(parts, &TripPartPayload{
			VideoUID:   video.UID,
			Title:      video.Title,
			PartNumber: tripVideo.PartNumber,
		})
	}
	return c.JSON(http.StatusOK, convertTrip(trip, parts))
}

func (s *APIV1Service) CreateTrip(c echo.Context) error {
	request := &TripPayload{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if request.TripName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tripName is required")
	}
	trip, err := s.Store.CreateTrip(c.Request().Context(), &store.Trip{
		UID:         shortuuid.New(),
		TripName:    request.TripName,
		Description: request.Description,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
		Notes:       request.Notes,
	})
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusCreated, convertTrip(trip, nil))
}

type AddTripVideoRequest struct {
	VideoUID   string `json:"videoUid"`
	PartNumber int32  `json:"partNumber"`
}

// AddTripVideo links a video into a trip; re-linking updates the part
// number.
func (s *APIV1Service) AddTripVideo(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	request := &AddTripVideoRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	trips, err := s.Store.ListTrips(ctx, &store.FindTrip{UID: &uid})
	if err != nil {
		return mapServiceError(err)
	}
	if len(trips) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "trip not found")
	}
	video, err := s.Store.GetVideo(ctx, &store.FindVideo{UID: &request.VideoUID})
	if err != nil {
		return mapServiceError(err)
	}
	if video == nil {
		return echo.NewHTTPError(http.StatusNotFound, "video not found")
	}

	if err := s.Store.AddTripVideo(ctx, &store.TripVideo{
		TripID:     trips[0].ID,
		VideoID:    video.ID,
		PartNumber: request.PartNumber,
	}); err != nil {
		return mapServiceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) ListPosaisms(c echo.Context) error {
	posaisms, err := s.Store.ListPosaisms(c.Request().Context(), &store.FindPosaism{})
	if err != nil {
		return mapServiceError(err)
	}
	payload := make([]*PosaismPayload, 0, len(posaisms))
	for _, posaism := range posaisms {
		payload = append(payload, convertPosaism(posaism))
	}
	return c.JSON(http.StatusOK, payload)
}

func (s *APIV1Service) CreatePosaism(c echo.Context) error {
	request := &PosaismPayload{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if request.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	posaism, err := s.Store.CreatePosaism(c.Request().Context(), &store.Posaism{
		UID:             shortuuid.New(),
		Name:            request.Name,
		Description:     request.Description,
		ExampleVideoUID: request.ExampleVideoUID,
	})
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusCreated, convertPosaism(posaism))
}

func (s *APIV1Service) DeletePerson(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	people, err := s.Store.ListPeople(ctx, &store.FindPerson{UID: &uid})
	if err != nil {
		return mapServiceError(err)
	}
	if len(people) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "person not found")
	}
	if err := s.Store.DeletePerson(ctx, &store.DeletePerson{ID: people[0].ID}); err != nil {
		return mapServiceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) DeleteDog(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	dogs, err := s.Store.ListDogs(ctx, &store.FindDog{UID: &uid})
	if err != nil {
		return mapServiceError(err)
	}
	if len(dogs) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "dog not found")
	}
	if err := s.Store.DeleteDog(ctx, &store.DeleteDog{ID: dogs[0].ID}); err != nil {
		return mapServiceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) DeletePosaism(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	posaisms, err := s.Store.ListPosaisms(ctx, &store.FindPosaism{UID: &uid})
	if err != nil {
		return mapServiceError(err)
	}
	if len(posaisms) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "posaism not found")
	}
	if err := s.Store.DeletePosaism(ctx, &store.DeletePosaism{ID: posaisms[0].ID}); err != nil {
		return mapServiceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func convertPerson(person *store.Person) *PersonPayload {
	aliases := person.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	return &PersonPayload{
		UID:           person.UID,
		CanonicalName: person.CanonicalName,
		YoutubeHandle: person.YoutubeHandle,
		YoutubeURL:    person.YoutubeURL,
		Aliases:       aliases,
		Bio:           person.Bio,
		Notes:         person.Notes,
	}
}

func convertDog(dog *store.Dog) *DogPayload {
	return &DogPayload{
		UID:            dog.UID,
		Name:           dog.Name,
		BirthDate:      dog.BirthDate,
		BreedPrimary:   dog.BreedPrimary,
		BreedSecondary: dog.BreedSecondary,
		Color:          dog.Color,
		Description:    dog.Description,
		Notes:          dog.Notes,
	}
}

func convertTrip(trip *store.Trip, parts []*TripPartPayload) *TripPayload {
	return &TripPayload{
		UID:         trip.UID,
		TripName:    trip.TripName,
		Description: trip.Description,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		Notes:       trip.Notes,
		Parts:       parts,
	}
}

func convertPosaism(posaism *store.Posaism) *PosaismPayload {
	return &PosaismPayload{
		UID:             posaism.UID,
		Name:            posaism.Name,
		Description:     posaism.Description,
		ExampleVideoUID: posaism.ExampleVideoUID,
	}
}
